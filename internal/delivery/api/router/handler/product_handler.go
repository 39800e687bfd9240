package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"inventory/internal/delivery/api/response"
	deliverycontext "inventory/internal/delivery/context"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/entity"
	"inventory/internal/errors"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// productRequest is the body of create, bulk create and update.
// Every field is required on update too. Stock is capped at the range of the
// INTEGER column.
type productRequest struct {
	Handle       string           `json:"handle" validate:"required,max=255"`
	Title        string           `json:"title" validate:"required,max=255"`
	Description  string           `json:"description" validate:"required"`
	SKU          string           `json:"sku" validate:"required,max=100"`
	Grams        *decimal.Decimal `json:"grams" validate:"required,gte=0"`
	Stock        *int             `json:"stock" validate:"required,gte=0,lte=2147483647"`
	Price        *decimal.Decimal `json:"price" validate:"required,gte=0"`
	ComparePrice *decimal.Decimal `json:"comparePrice" validate:"required,gte=0"`
	Barcode      string           `json:"barcode" validate:"required,max=100"`
}

func (r *productRequest) toInput() *usecase.ProductInput {
	return &usecase.ProductInput{
		Handle:       r.Handle,
		Title:        r.Title,
		Description:  r.Description,
		SKU:          r.SKU,
		Grams:        *r.Grams,
		Stock:        *r.Stock,
		Price:        *r.Price,
		ComparePrice: *r.ComparePrice,
		Barcode:      r.Barcode,
	}
}

// ProductHandler serves the catalog endpoints. All routes sit behind
// AuthMiddleware.Authenticate.
type ProductHandler struct {
	uc usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List returns every active product.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.uc.Search(c.Request().Context(), "")
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products)
}

// Search returns active products matching the search term exactly.
func (h *ProductHandler) Search(c echo.Context) error {
	if entity.ProductState(c.Param("state")) != entity.ProductStateActive {
		return domainerrors.ErrInvalidState
	}

	search, err := searchParam(c)
	if err != nil {
		return err
	}

	products, err := h.uc.Search(c.Request().Context(), search)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products)
}

// searchParam decodes the search segment. Echo routes on the raw path when the
// request carries escapes such as %2F, leaving the param still encoded.
func searchParam(c echo.Context) (string, error) {
	search := c.Param("search")
	if c.Request().URL.RawPath == "" {
		return search, nil
	}

	decoded, err := url.PathUnescape(search)
	if err != nil {
		return "", domainerrors.ErrInvalidInput.WrapMessage(err.Error())
	}

	return decoded, nil
}

// Get returns one product in any state.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product)
}

// Create adds one product owned by the caller.
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.uc.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// CreateBulk adds a JSON array of products in one transaction.
func (h *ProductHandler) CreateBulk(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var reqs []*productRequest
	if err := c.Bind(&reqs); err != nil {
		return domainerrors.ErrInvalidInput.WrapMessage(err.Error())
	}

	inputs := make([]*usecase.ProductInput, 0, len(reqs))
	var fields []domainerrors.FieldError
	for i, req := range reqs {
		if req == nil {
			fields = append(fields, domainerrors.FieldError{
				Field:   fmt.Sprintf("[%d]", i),
				Rule:    "required",
				Message: "product is required",
			})

			continue
		}

		if err := c.Validate(req); err != nil {
			itemFields, ok := indexedFieldErrors(err, i)
			if !ok {
				return errors.WithStack(err)
			}
			fields = append(fields, itemFields...)

			continue
		}
		inputs = append(inputs, req.toInput())
	}
	if len(fields) > 0 {
		return domainerrors.NewValidationError(fields)
	}

	views, err := h.uc.CreateBulk(c.Request().Context(), actor, inputs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views)
}

// Update replaces every mutable field of a product.
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.uc.Update(c.Request().Context(), id, actor, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// Delete deactivates a product. Rows are never removed.
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	view, err := h.uc.SoftDelete(c.Request().Context(), id, actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

// Label renders the product's QR label as PNG.
func (h *ProductHandler) Label(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	png, err := h.uc.Label(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.PNG(c, png)
}

func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := deliverycontext.GetUser(c)
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	return user, nil
}

// indexedFieldErrors re-reads a failed item validation so the field names
// carry the item's position in the array.
func indexedFieldErrors(err error, index int) ([]domainerrors.FieldError, bool) {
	appErr, ok := errors.AsType[*domainerrors.BaseError](err)
	if !ok {
		return nil, false
	}

	fields, ok := appErr.Details().([]domainerrors.FieldError)
	if !ok {
		return nil, false
	}

	prefixed := make([]domainerrors.FieldError, len(fields))
	for i, field := range fields {
		field.Field = fmt.Sprintf("[%d].%s", index, field.Field)
		prefixed[i] = field
	}

	return prefixed, true
}
