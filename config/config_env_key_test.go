package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"events": map[string]any{
			"topicId": "",
			"kafka": map[string]any{
				"brokers": []any{},
			},
		},
		"secretKey": map[string]any{
			"token": "",
		},
		"mail": map[string]any{
			"resetUrl": "",
			"apiKey":   "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "EVENTS_TOPICID", want: "events.topicId"},
		{envKey: "EVENTS_KAFKA_BROKERS", want: "events.kafka.brokers"},
		{envKey: "SECRETKEY_TOKEN", want: "secretKey.token"},
		{envKey: "MAIL_RESETURL", want: "mail.resetUrl"},
		{envKey: "MAIL_APIKEY", want: "mail.apiKey"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, splitList(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Empty(t, splitList(""))
}

func TestLoadWithEnv_OverridesYAMLWithEnv(t *testing.T) {
	dir := t.TempDir()
	yamlBody := []byte(`
http:
  port: 8080
secretKey:
  token: ""
auth:
  sessionTTL: 1h
mail:
  resetUrl: http://localhost/reset
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), yamlBody, 0o600))

	t.Chdir(dir)
	t.Setenv("SECRETKEY_TOKEN", "from-env")
	t.Setenv("AUTH_SESSIONTTL", "30m")
	t.Setenv("MAIL_RESETURL", "https://shop.example.com/reset-password")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "from-env", cfg.SecretKey.Token)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	require.NotNil(t, cfg.Mail)
	assert.Equal(t, "https://shop.example.com/reset-password", cfg.Mail.ResetURL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

func TestApplyDefaultsAndValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.Auth.ResetTTL)
	assert.Equal(t, MailProviderLog, cfg.Mail.Provider)
	assert.Equal(t, defaultQRCodeLevel, cfg.QRCode.ErrorCorrectionLevel)
	assert.False(t, cfg.Catalog.SharedEditing)

	// postgres driver without postgres section
	require.Error(t, cfg.validate())

	cfg.Database.Driver = DriverSQLite
	cfg.Database.SQLitePath = ":memory:"
	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secretKey.token")

	cfg.SecretKey.Token = "secret"
	require.NoError(t, cfg.validate())

	cfg.Database.Driver = "mysql"
	require.Error(t, cfg.validate())
}
