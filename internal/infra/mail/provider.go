// Package mail delivers outbound email through the configured provider.
package mail

import (
	"log/slog"

	"inventory/config"
	"inventory/internal/domain/service"
	"inventory/internal/errors"

	"go.uber.org/fx"
)

// Params holds dependencies for the Mailer, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMailer picks the provider named by mail.provider.
func NewMailer(params Params) (service.Mailer, error) {
	cfg := params.Config.Mail
	if cfg == nil {
		return NewLogMailer(params.Logger), nil
	}

	switch cfg.Provider {
	case config.MailProviderLog, "":
		params.Logger.Info("Using log mailer, emails will not be delivered")

		return NewLogMailer(params.Logger), nil
	case config.MailProviderHTTP:
		if cfg.APIKey == "" {
			return nil, errors.New("mail.apiKey is required for http provider")
		}
		if cfg.From == "" {
			return nil, errors.New("mail.from is required for http provider")
		}
		params.Logger.Info("Using HTTP mailer", slog.String("endpoint", cfg.Endpoint))

		return NewHTTPMailer(cfg, params.Logger), nil
	default:
		return nil, errors.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}
