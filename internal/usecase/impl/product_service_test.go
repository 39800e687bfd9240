package impl

import (
	"context"
	"testing"

	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	mockRepo "inventory/internal/mocks/repository"
	mockSvc "inventory/internal/mocks/service"
	"inventory/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productServiceFixtures struct {
	service     usecase.ProductUsecase
	txManager   *mockRepo.MockTransactionManager
	productRepo *mockRepo.MockProductRepository
	publisher   *mockSvc.MockEventPublisher
	labels      *mockSvc.MockQRCodeService
}

func createTestProductService(t *testing.T, sharedEditing bool) productServiceFixtures {
	cfg := newTestConfig()
	cfg.Catalog.SharedEditing = sharedEditing

	f := productServiceFixtures{
		txManager:   mockRepo.NewMockTransactionManager(t),
		productRepo: mockRepo.NewMockProductRepository(t),
		publisher:   mockSvc.NewMockEventPublisher(t),
		labels:      mockSvc.NewMockQRCodeService(t),
	}

	f.service = NewProductService(ProductServiceParams{
		TxManager:   f.txManager,
		ProductRepo: f.productRepo,
		Publisher:   f.publisher,
		Labels:      f.labels,
		Config:      cfg,
		Logger:      newDiscardLogger(),
	})

	return f
}

func productInput(handle string) *usecase.ProductInput {
	return &usecase.ProductInput{
		Handle:       handle,
		Title:        "Mug",
		Description:  "Stoneware mug",
		SKU:          "MUG-1",
		Grams:        decimal.RequireFromString("350"),
		Stock:        4,
		Price:        decimal.RequireFromString("12.50"),
		ComparePrice: decimal.RequireFromString("15.00"),
		Barcode:      "4006381333931",
	}
}

func storedProduct(owner uuid.UUID) *entity.Product {
	return &entity.Product{
		ID:     uuid.New(),
		Handle: "mug",
		Title:  "Mug",
		Stock:  4,
		State:  entity.ProductStateActive,
		UserID: owner,
	}
}

func eventOfType(eventType service.ProductEventType) any {
	return mock.MatchedBy(func(e *service.ProductEvent) bool { return e.Type == eventType })
}

func TestProductService_Create(t *testing.T) {
	f := createTestProductService(t, false)
	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")
	actor := testUser()

	f.productRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	f.publisher.EXPECT().
		PublishProductEvent(mock.Anything, mock.MatchedBy(func(e *service.ProductEvent) bool {
			return e.Type == service.ProductCreated && e.RequestID == "req-42" && e.OwnerID == actor.ID.String()
		})).
		Return(nil)

	got, err := f.service.Create(ctx, actor, productInput("mug"))

	require.NoError(t, err)
	assert.Equal(t, "ana", got.User)
	assert.Equal(t, actor.ID, got.UserID)
	assert.Equal(t, entity.ProductStateActive, got.State)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.5")))
}

func TestProductService_Create_PublishFailureIgnored(t *testing.T) {
	f := createTestProductService(t, false)
	ctx := context.Background()

	f.productRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	f.publisher.EXPECT().PublishProductEvent(mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := f.service.Create(ctx, testUser(), productInput("mug"))

	require.NoError(t, err)
}

func TestProductService_CreateBulk(t *testing.T) {
	f := createTestProductService(t, false)
	ctx := context.Background()
	actor := testUser()

	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().ProductRepo().Return(txProductRepo)
	runInTx(t, f.txManager, factory)

	txProductRepo.EXPECT().
		CreateBatch(ctx, mock.MatchedBy(func(products []*entity.Product) bool { return len(products) == 3 }), 2).
		Return(nil)
	f.publisher.EXPECT().
		PublishProductEvents(mock.Anything, mock.MatchedBy(func(events []*service.ProductEvent) bool {
			if len(events) != 3 {
				return false
			}
			for _, e := range events {
				if e.Type != service.ProductCreated {
					return false
				}
			}

			return events[0].Handle == "a" && events[2].Handle == "c"
		})).
		Return(nil).Once()

	got, err := f.service.CreateBulk(ctx, actor, []*usecase.ProductInput{productInput("a"), productInput("b"), productInput("c")})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Handle)
	assert.Equal(t, "ana", got[2].User)
}

func TestProductService_CreateBulk_Limits(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		f := createTestProductService(t, false)

		_, err := f.service.CreateBulk(ctx, testUser(), nil)
		assert.ErrorIs(t, err, domainerrors.ErrEmptyBatch)
	})

	t.Run("too large", func(t *testing.T) {
		f := createTestProductService(t, false)
		inputs := []*usecase.ProductInput{productInput("a"), productInput("b"), productInput("c"), productInput("d")}

		_, err := f.service.CreateBulk(ctx, testUser(), inputs)
		assert.ErrorIs(t, err, domainerrors.ErrBatchTooLarge)
	})
}

func TestProductService_CreateBulk_FailurePublishesNothing(t *testing.T) {
	f := createTestProductService(t, false)
	ctx := context.Background()

	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().ProductRepo().Return(txProductRepo)
	runInTx(t, f.txManager, factory)

	txProductRepo.EXPECT().CreateBatch(ctx, mock.Anything, 2).
		Return(domainerrors.NewDatabaseExecuteError(errors.New("duplicate key"), "failed to create products"))

	_, err := f.service.CreateBulk(ctx, testUser(), []*usecase.ProductInput{productInput("a")})

	require.Error(t, err)
	f.publisher.AssertNotCalled(t, "PublishProductEvents", mock.Anything, mock.Anything)
}

func TestProductService_CreateBulk_PublishesAfterClientGone(t *testing.T) {
	f := createTestProductService(t, false)
	ctx, cancel := context.WithCancel(deliverycontext.WithRequestID(context.Background(), "req-7"))

	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().ProductRepo().Return(txProductRepo)
	runInTx(t, f.txManager, factory)

	// The client disconnects while the batch is being written.
	txProductRepo.EXPECT().CreateBatch(ctx, mock.Anything, 2).
		RunAndReturn(func(context.Context, []*entity.Product, int) error {
			cancel()

			return nil
		})
	f.publisher.EXPECT().
		PublishProductEvents(mock.Anything, mock.Anything).
		RunAndReturn(func(publishCtx context.Context, events []*service.ProductEvent) error {
			assert.NoError(t, publishCtx.Err())
			assert.Equal(t, "req-7", deliverycontext.GetRequestIDFromContext(publishCtx))
			require.Len(t, events, 2)
			assert.Equal(t, "req-7", events[0].RequestID)

			return nil
		}).Once()

	got, err := f.service.CreateBulk(ctx, testUser(), []*usecase.ProductInput{productInput("a"), productInput("b")})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProductService_CreateBulk_PublishFailureIgnored(t *testing.T) {
	f := createTestProductService(t, false)
	ctx := context.Background()

	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().ProductRepo().Return(txProductRepo)
	runInTx(t, f.txManager, factory)

	txProductRepo.EXPECT().CreateBatch(ctx, mock.Anything, 2).Return(nil)
	f.publisher.EXPECT().PublishProductEvents(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	got, err := f.service.CreateBulk(ctx, testUser(), []*usecase.ProductInput{productInput("a")})

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestProductService_SearchAndGet(t *testing.T) {
	f := createTestProductService(t, false)
	ctx := context.Background()
	product := storedProduct(uuid.New())

	f.productRepo.EXPECT().Search(ctx, "Mug").Return([]*entity.Product{product}, nil)
	f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	missing := uuid.New()
	f.productRepo.EXPECT().FindByID(ctx, missing).Return(nil, repository.ErrProductNotFound)

	found, err := f.service.Search(ctx, "Mug")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	got, err := f.service.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product, got)

	_, err = f.service.Get(ctx, missing)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_Update(t *testing.T) {
	f := createTestProductService(t, false)
	ctx := context.Background()
	actor := testUser()
	product := storedProduct(actor.ID)
	product.Deactivate(product.UpdatedAt)

	f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	f.productRepo.EXPECT().Update(ctx, product).Return(nil)
	f.publisher.EXPECT().PublishProductEvent(mock.Anything, eventOfType(service.ProductUpdated)).Return(nil)

	input := productInput("renamed")
	input.Stock = 0
	got, err := f.service.Update(ctx, product.ID, actor, input)

	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Handle)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, entity.ProductStateInactive, got.State, "update must not touch state")
	assert.Equal(t, "ana", got.User)
}

func TestProductService_Update_Ownership(t *testing.T) {
	ctx := context.Background()
	actor := testUser()

	t.Run("forbidden for non-owner", func(t *testing.T) {
		f := createTestProductService(t, false)
		product := storedProduct(uuid.New())
		f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

		_, err := f.service.Update(ctx, product.ID, actor, productInput("x"))
		assert.ErrorIs(t, err, domainerrors.ErrProductOwnership)
	})

	t.Run("allowed with shared editing", func(t *testing.T) {
		f := createTestProductService(t, true)
		product := storedProduct(uuid.New())
		f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
		f.productRepo.EXPECT().Update(ctx, product).Return(nil)
		f.publisher.EXPECT().PublishProductEvent(mock.Anything, mock.Anything).Return(nil)

		got, err := f.service.Update(ctx, product.ID, actor, productInput("x"))
		require.NoError(t, err)
		assert.Equal(t, "ana", got.User)
	})

	t.Run("not found", func(t *testing.T) {
		f := createTestProductService(t, false)
		id := uuid.New()
		f.productRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrProductNotFound)

		_, err := f.service.Update(ctx, id, actor, productInput("x"))
		assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	})
}

func TestProductService_SoftDelete(t *testing.T) {
	f := createTestProductService(t, false)
	ctx := context.Background()
	actor := testUser()
	product := storedProduct(actor.ID)

	f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil).Times(2)
	f.productRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(p *entity.Product) bool { return p.State == entity.ProductStateInactive })).
		Return(nil).Once()
	f.publisher.EXPECT().PublishProductEvent(mock.Anything, eventOfType(service.ProductDeactivated)).Return(nil).Once()

	got, err := f.service.SoftDelete(ctx, product.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStateInactive, got.State)

	// Second call is a no-op on an already inactive product.
	again, err := f.service.SoftDelete(ctx, product.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStateInactive, again.State)
}

func TestProductService_SoftDelete_Forbidden(t *testing.T) {
	f := createTestProductService(t, false)
	ctx := context.Background()
	product := storedProduct(uuid.New())

	f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	_, err := f.service.SoftDelete(ctx, product.ID, testUser())

	assert.ErrorIs(t, err, domainerrors.ErrProductOwnership)
}

func TestProductService_Label(t *testing.T) {
	ctx := context.Background()
	product := storedProduct(uuid.New())

	t.Run("renders", func(t *testing.T) {
		f := createTestProductService(t, false)
		f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
		f.labels.EXPECT().GenerateProductLabel(product).Return([]byte{0x89, 'P', 'N', 'G'}, nil)

		png, err := f.service.Label(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png)
	})

	t.Run("renderer failure", func(t *testing.T) {
		f := createTestProductService(t, false)
		f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
		f.labels.EXPECT().GenerateProductLabel(product).Return(nil, errors.New("too much data"))

		_, err := f.service.Label(ctx, product.ID)
		assert.ErrorIs(t, err, domainerrors.ErrLabelGenerationFailed)
	})
}
