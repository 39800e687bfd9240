package postgres

import (
	"context"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/errors"
	"inventory/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultBatchSize = 100

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// Create persists a single product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return mapProductWriteError(err, "failed to create product")
	}

	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// CreateBatch inserts products in multi-row statements of batchSize rows.
func (repo *productRepository) CreateBatch(ctx context.Context, products []*entity.Product, batchSize int) error {
	if len(products) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	productModels := make([]*model.ProductModel, 0, len(products))
	for _, product := range products {
		productModels = append(productModels, fromProductDomain(product))
	}

	if err := repo.db.WithContext(ctx).CreateInBatches(productModels, batchSize).Error; err != nil {
		return mapProductWriteError(err, "failed to create products")
	}

	for i, productM := range productModels {
		products[i].CreatedAt = productM.CreatedAt
		products[i].UpdatedAt = productM.UpdatedAt
	}

	return nil
}

// FindByID retrieves a product regardless of its state.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// Search returns active products, newest handle first. A non-empty query must
// equal one of title, description, handle or barcode, or the id itself.
func (repo *productRepository) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	tx := repo.db.WithContext(ctx).
		Where("state = ?", string(entity.ProductStateActive))

	if query != "" {
		match := repo.db.
			Where("title = ?", query).
			Or("description = ?", query).
			Or("handle = ?", query).
			Or("barcode = ?", query)
		if id, err := uuid.Parse(query); err == nil {
			match = match.Or("id = ?", id)
		}
		tx = tx.Where(match)
	}

	if err := tx.Order("handle DESC").Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// Update overwrites every mutable column, state included.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select("handle", "title", "description", "sku", "grams", "stock",
			"price", "compare_price", "barcode", "state", "updated_at").
		Updates(productM)

	if result.Error != nil {
		return mapProductWriteError(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func mapProductWriteError(err error, details string) error {
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrUserNotFound.WrapMessage("product owner does not exist")
	}
	if isCheckConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WrapMessage("product violates a storage constraint")
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:           data.ID,
		Handle:       data.Handle,
		Title:        data.Title,
		Description:  data.Description,
		SKU:          data.SKU,
		Grams:        data.Grams,
		Stock:        data.Stock,
		Price:        data.Price,
		ComparePrice: data.ComparePrice,
		Barcode:      data.Barcode,
		State:        entity.ProductState(data.State),
		UserID:       data.UserID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:           data.ID,
		Handle:       data.Handle,
		Title:        data.Title,
		Description:  data.Description,
		SKU:          data.SKU,
		Grams:        data.Grams,
		Stock:        data.Stock,
		Price:        data.Price,
		ComparePrice: data.ComparePrice,
		Barcode:      data.Barcode,
		State:        string(data.State),
		UserID:       data.UserID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
