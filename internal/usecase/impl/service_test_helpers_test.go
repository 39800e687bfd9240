package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"inventory/config"
	"inventory/internal/domain/repository"
	mockRepo "inventory/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Catalog: &config.CatalogConfig{
			BulkBatchSize: 2,
			MaxBulkItems:  3,
		},
		Mail: &config.MailConfig{
			ResetURL: "https://shop.example.com/reset-password",
		},
	}
}

// runInTx makes the mocked transaction manager invoke its callback with factory.
func runInTx(t *testing.T, txManager *mockRepo.MockTransactionManager, factory repository.RepositoryFactory) {
	t.Helper()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}
