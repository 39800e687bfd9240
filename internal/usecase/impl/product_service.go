package impl

import (
	"context"
	"log/slog"
	"time"

	"inventory/config"
	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	"inventory/internal/errors"
	"inventory/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager     repository.TransactionManager
	productRepo   repository.ProductRepository
	publisher     service.EventPublisher
	labels        service.QRCodeService
	sharedEditing bool
	bulkBatchSize int
	maxBulkItems  int
	now           func() time.Time
	logger        *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Publisher   service.EventPublisher
	Labels      service.QRCodeService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	srv := &productService{
		txManager:     params.TxManager,
		productRepo:   params.ProductRepo,
		publisher:     params.Publisher,
		labels:        params.Labels,
		bulkBatchSize: 100,
		maxBulkItems:  1000,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        params.Logger,
	}
	if params.Config != nil && params.Config.Catalog != nil {
		srv.sharedEditing = params.Config.Catalog.SharedEditing
		srv.bulkBatchSize = params.Config.Catalog.BulkBatchSize
		srv.maxBulkItems = params.Config.Catalog.MaxBulkItems
	}

	return srv
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) Create(ctx context.Context, actor *entity.User, input *usecase.ProductInput) (*usecase.ProductView, error) {
	product := srv.newProduct(actor, input)

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.String("productID", product.ID.String()), slog.String("userID", actor.ID.String()))
	srv.publish(ctx, service.ProductCreated, product)

	return view(product, actor), nil
}

// CreateBulk writes the whole batch in one transaction; nothing is stored if any row fails.
func (srv *productService) CreateBulk(ctx context.Context, actor *entity.User, inputs []*usecase.ProductInput) ([]*usecase.ProductView, error) {
	if len(inputs) == 0 {
		return nil, errors.WithStack(domainerrors.ErrEmptyBatch)
	}
	if srv.maxBulkItems > 0 && len(inputs) > srv.maxBulkItems {
		return nil, errors.WithStack(domainerrors.ErrBatchTooLarge.WithDetails(map[string]int{
			"max":      srv.maxBulkItems,
			"received": len(inputs),
		}))
	}

	products := make([]*entity.Product, 0, len(inputs))
	for _, input := range inputs {
		products = append(products, srv.newProduct(actor, input))
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProductRepo().CreateBatch(ctx, products, srv.bulkBatchSize)
	})
	if err != nil {
		srv.log(ctx).Error("Bulk create failed", slog.Int("count", len(products)), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create products")
	}

	srv.log(ctx).Info("Products created", slog.Int("count", len(products)), slog.String("userID", actor.ID.String()))

	srv.publishBatch(ctx, service.ProductCreated, products)

	views := make([]*usecase.ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, view(product, actor))
	}

	return views, nil
}

func (srv *productService) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	products, err := srv.productRepo.Search(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return products, nil
}

func (srv *productService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, id.String())
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// Update replaces every client-settable field. State is left as it is.
func (srv *productService) Update(ctx context.Context, id uuid.UUID, actor *entity.User, input *usecase.ProductInput) (*usecase.ProductView, error) {
	product, err := srv.loadForWrite(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	applyInput(product, input)
	product.UpdatedAt = srv.now()

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, srv.mapUpdateError(err, id)
	}

	srv.log(ctx).Info("Product updated", slog.String("productID", id.String()), slog.String("userID", actor.ID.String()))
	srv.publish(ctx, service.ProductUpdated, product)

	return view(product, actor), nil
}

// SoftDelete marks the product inactive. Repeating it is harmless.
func (srv *productService) SoftDelete(ctx context.Context, id uuid.UUID, actor *entity.User) (*usecase.ProductView, error) {
	product, err := srv.loadForWrite(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if !product.IsActive() {
		return view(product, actor), nil
	}

	product.Deactivate(srv.now())
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, srv.mapUpdateError(err, id)
	}

	srv.log(ctx).Info("Product deactivated", slog.String("productID", id.String()), slog.String("userID", actor.ID.String()))
	srv.publish(ctx, service.ProductDeactivated, product)

	return view(product, actor), nil
}

func (srv *productService) Label(ctx context.Context, id uuid.UUID) ([]byte, error) {
	product, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.labels.GenerateProductLabel(product)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrLabelGenerationFailed, err.Error())
	}

	return png, nil
}

// loadForWrite fetches the product and enforces ownership unless shared editing is on.
func (srv *productService) loadForWrite(ctx context.Context, id uuid.UUID, actor *entity.User) (*entity.Product, error) {
	product, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !srv.sharedEditing && !product.IsOwnedBy(actor.ID) {
		srv.log(ctx).Warn("Product ownership violation",
			slog.String("productID", id.String()),
			slog.String("userID", actor.ID.String()),
		)

		return nil, errors.WithStack(domainerrors.ErrProductOwnership)
	}

	return product, nil
}

func (srv *productService) mapUpdateError(err error, id uuid.UUID) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return errors.Wrap(domainerrors.ErrProductNotFound, id.String())
	}

	return errors.Wrap(err, "failed to update product")
}

func (srv *productService) newProduct(actor *entity.User, input *usecase.ProductInput) *entity.Product {
	now := srv.now()
	product := &entity.Product{
		ID:        uuid.New(),
		State:     entity.ProductStateActive,
		UserID:    actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(product, input)

	return product
}

func applyInput(product *entity.Product, input *usecase.ProductInput) {
	product.Handle = input.Handle
	product.Title = input.Title
	product.Description = input.Description
	product.SKU = input.SKU
	product.Grams = input.Grams
	product.Stock = input.Stock
	product.Price = input.Price
	product.ComparePrice = input.ComparePrice
	product.Barcode = input.Barcode
}

// publish sends the event after the write is committed. Failures are logged only.
func (srv *productService) publish(ctx context.Context, eventType service.ProductEventType, product *entity.Product) {
	event := srv.newEvent(ctx, eventType, product)

	if err := srv.publisher.PublishProductEvent(context.WithoutCancel(ctx), event); err != nil {
		srv.log(ctx).Error("Failed to publish product event",
			slog.String("type", string(eventType)),
			slog.String("productID", event.ProductID),
			slog.Any("error", err),
		)
	}
}

// publishBatch hands every event of a committed batch to the publisher in one call.
func (srv *productService) publishBatch(ctx context.Context, eventType service.ProductEventType, products []*entity.Product) {
	events := make([]*service.ProductEvent, 0, len(products))
	for _, product := range products {
		events = append(events, srv.newEvent(ctx, eventType, product))
	}

	if err := srv.publisher.PublishProductEvents(context.WithoutCancel(ctx), events); err != nil {
		srv.log(ctx).Error("Failed to publish product events",
			slog.String("type", string(eventType)),
			slog.Int("count", len(events)),
			slog.Any("error", err),
		)
	}
}

// newEvent stamps the request ID carried by ctx. Callers publish on a context
// without the request's cancellation: the write is already committed.
func (srv *productService) newEvent(ctx context.Context, eventType service.ProductEventType, product *entity.Product) *service.ProductEvent {
	return &service.ProductEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		ProductID:  product.ID.String(),
		OwnerID:    product.UserID.String(),
		Handle:     product.Handle,
		State:      string(product.State),
		OccurredAt: srv.now(),
	}
}

func view(product *entity.Product, actor *entity.User) *usecase.ProductView {
	return &usecase.ProductView{Product: product, User: actor.Username}
}
