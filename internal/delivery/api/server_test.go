package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"inventory/config"
	apimiddleware "inventory/internal/delivery/api/middleware"
	"inventory/internal/delivery/api/router"
	"inventory/internal/delivery/api/router/handler"
	"inventory/internal/domain/service"
	"inventory/internal/infra/auth"
	"inventory/internal/infra/persistence/postgres"
	"inventory/internal/infra/persistence/sqlite"
	"inventory/internal/infra/qrcode"
	mockservice "inventory/internal/mocks/service"
	"inventory/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const resetURL = "https://shop.example.com/reset-password"

type captureMailer struct {
	mu   sync.Mutex
	sent []*service.MailMessage
}

func (m *captureMailer) Send(_ context.Context, msg *service.MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)

	return nil
}

func (m *captureMailer) last(t *testing.T) *service.MailMessage {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)

	return m.sent[len(m.sent)-1]
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testAPI struct {
	t      *testing.T
	echo   *echo.Echo
	mailer *captureMailer
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "inventory-test"
	cfg.HTTP.MaxRequestBodySize = "1MB"
	cfg.SecretKey.Token = "test-secret"
	cfg.Catalog = &config.CatalogConfig{BulkBatchSize: 2, MaxBulkItems: 3}
	cfg.Mail = &config.MailConfig{ResetURL: resetURL}

	return cfg
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	cfg := newTestConfig()

	db, err := sqlite.Open(sqlite.MemoryPath, logger, false)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	publisher := mockservice.NewMockEventPublisher(t)
	publisher.EXPECT().PublishProductEvent(mock.Anything, mock.Anything).Return(nil).Maybe()
	publisher.EXPECT().PublishProductEvents(mock.Anything, mock.Anything).Return(nil).Maybe()

	mailer := &captureMailer{}
	txManager := postgres.NewTransactionManager(db)
	userRepo := postgres.NewUserRepository(db)

	authUsecase := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokens,
		Mailer:       mailer,
		Config:       cfg,
		Logger:       logger,
	})
	productUsecase := impl.NewProductService(impl.ProductServiceParams{
		TxManager:   txManager,
		ProductRepo: postgres.NewProductRepository(db),
		Publisher:   publisher,
		Labels:      qrcode.NewQRCodeService(cfg),
		Config:      cfg,
		Logger:      logger,
	})

	e := newEcho(cfg, logger, router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(authUsecase),
		ProductHandler: handler.NewProductHandler(productUsecase),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(authUsecase),
	})

	return &testAPI{t: t, echo: e, mailer: mailer}
}

func (a *testAPI) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func (a *testAPI) register(username, email, password string) map[string]any {
	a.t.Helper()

	rec, env := a.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var user map[string]any
	require.NoError(a.t, json.Unmarshal(env.Data, &user))

	return user
}

func (a *testAPI) login(username, password string) string {
	a.t.Helper()

	rec, env := a.do(http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expiresIn"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(a.t, out.Token)
	assert.Equal(a.t, int64(3600), out.ExpiresIn)

	return out.Token
}

func productBody(handle string) map[string]any {
	return map[string]any{
		"handle":       handle,
		"title":        "Title " + handle,
		"description":  "Description " + handle,
		"sku":          "SKU-" + handle,
		"grams":        "120.5",
		"stock":        10,
		"price":        "19.99",
		"comparePrice": "24.99",
		"barcode":      "BAR-" + handle,
	}
}

func decodeProducts(t *testing.T, env envelope) []map[string]any {
	t.Helper()

	var products []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &products))

	return products
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
	assert.NotEmpty(t, env.Meta.RequestID)
	assert.Equal(t, env.Meta.RequestID, rec.Header().Get("X-Request-Id"))
}

func TestRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	user := api.register("alice", "alice@example.com", "s3cret")
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "PasswordHash")

	t.Run("duplicate username", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/auth/register", "", map[string]string{
			"username": "alice", "email": "other@example.com", "password": "x",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "USERNAME_TAKEN", env.Error.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/auth/register", "", map[string]string{
			"username": "alice2", "email": "alice@example.com", "password": "x",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "EMAIL_TAKEN", env.Error.Code)
	})

	t.Run("validation details", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/auth/register", "", map[string]string{
			"username": "bob", "email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Contains(t, string(env.Error.Details), `"field":"email"`)
		assert.Contains(t, string(env.Error.Details), `"field":"password"`)
	})

	t.Run("login success", func(t *testing.T) {
		api.login("alice", "s3cret")
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		wrongRec, wrongEnv := api.do(http.MethodPost, "/auth/login", "", map[string]string{
			"username": "alice", "password": "nope",
		})
		unknownRec, unknownEnv := api.do(http.MethodPost, "/auth/login", "", map[string]string{
			"username": "nobody", "password": "nope",
		})

		assert.Equal(t, http.StatusNotFound, wrongRec.Code)
		assert.Equal(t, wrongRec.Code, unknownRec.Code)
		assert.Equal(t, wrongEnv.Error.Code, unknownEnv.Error.Code)
		assert.Equal(t, wrongEnv.Error.Message, unknownEnv.Error.Message)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	api := newTestAPI(t)
	user := api.register("carol", "carol@example.com", "old-pass")

	rec, env := api.do(http.MethodPost, "/auth/reset-password", "", map[string]string{"email": "carol@example.com"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Email sent"}`, string(env.Data))

	msg := api.mailer.last(t)
	assert.Equal(t, "carol@example.com", msg.To)

	var link string
	for line := range strings.SplitSeq(msg.Text, "\n") {
		if strings.HasPrefix(line, resetURL) {
			link = line
		}
	}
	require.NotEmpty(t, link)
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	resetToken := parsed.Query().Get("token")
	require.NotEmpty(t, resetToken)
	assert.Equal(t, user["id"], parsed.Query().Get("id"))

	body := map[string]string{"password": "new-pass", "id": user["id"].(string)}

	t.Run("reset token is not a session token", func(t *testing.T) {
		rec, _ := api.do(http.MethodGet, "/product", resetToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/auth/change-password", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "RESET_TOKEN_MISSING", env.Error.Code)
	})

	rec, env = api.do(http.MethodPost, "/auth/change-password", resetToken, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Password updated"}`, string(env.Data))

	api.login("carol", "new-pass")

	t.Run("used token cannot be replayed", func(t *testing.T) {
		replay := map[string]string{"password": "third-pass", "id": user["id"].(string)}
		rec, env := api.do(http.MethodPost, "/auth/change-password", resetToken, replay)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_RESET_TOKEN", env.Error.Code)
	})

	t.Run("session token is not a reset token", func(t *testing.T) {
		session := api.login("carol", "new-pass")
		rec, env := api.do(http.MethodPost, "/auth/change-password", session, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_RESET_TOKEN", env.Error.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/auth/reset-password", "", map[string]string{"email": "ghost@example.com"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)
	})
}

func TestProductRoutesRequireSession(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodGet, "/product", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_MISSING", env.Error.Code)

	rec, env = api.do(http.MethodGet, "/product", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	req := httptest.NewRequest(http.MethodGet, "/labels/x", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic abc")
	raw := httptest.NewRecorder()
	api.echo.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusUnauthorized, raw.Code)
}

func TestProductLifecycle(t *testing.T) {
	api := newTestAPI(t)
	api.register("dave", "dave@example.com", "pw")
	token := api.login("dave", "pw")

	rec, env := api.do(http.MethodPost, "/product", token, productBody("alpha"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "alpha", created["handle"])
	assert.Equal(t, "active", created["state"])
	assert.Equal(t, "dave", created["user"])
	id := created["id"].(string)

	rec, _ = api.do(http.MethodPost, "/product", token, productBody("beta"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	t.Run("list is ordered by handle descending", func(t *testing.T) {
		rec, env := api.do(http.MethodGet, "/product", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		products := decodeProducts(t, env)
		require.Len(t, products, 2)
		assert.Equal(t, "beta", products[0]["handle"])
		assert.Equal(t, "alpha", products[1]["handle"])
	})

	t.Run("search matches exactly", func(t *testing.T) {
		rec, env := api.do(http.MethodGet, "/product/active/alpha", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		products := decodeProducts(t, env)
		require.Len(t, products, 1)
		assert.Equal(t, id, products[0]["id"])

		rec, env = api.do(http.MethodGet, "/product/active/alp", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeProducts(t, env))
	})

	t.Run("search decodes escaped terms", func(t *testing.T) {
		body := productBody("shirt")
		body["title"] = "Shirt 50/50 cotton"
		rec, _ := api.do(http.MethodPost, "/product", token, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec, env := api.do(http.MethodGet, "/product/active/"+url.PathEscape("Shirt 50/50 cotton"), token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		products := decodeProducts(t, env)
		require.Len(t, products, 1)
		assert.Equal(t, "Shirt 50/50 cotton", products[0]["title"])

		rec, env = api.do(http.MethodGet, "/product/active/"+url.PathEscape("100% cotton"), token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Empty(t, decodeProducts(t, env))

		rec, _ = api.do(http.MethodDelete, "/product/"+products[0]["id"].(string), token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("search rejects other states", func(t *testing.T) {
		rec, env := api.do(http.MethodGet, "/product/inactive/alpha", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})

	t.Run("update", func(t *testing.T) {
		body := productBody("alpha")
		body["title"] = "Renamed"
		body["stock"] = 3
		rec, env := api.do(http.MethodPatch, "/product/"+id, token, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, "Renamed", updated["title"])
		assert.EqualValues(t, 3, updated["stock"])
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		body := productBody("alpha")
		body["stock"] = -1
		rec, env := api.do(http.MethodPatch, "/product/"+id, token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Contains(t, string(env.Error.Details), `"field":"stock"`)
	})

	t.Run("stock above integer column range is rejected", func(t *testing.T) {
		body := productBody("alpha")
		body["stock"] = int64(2147483648)
		rec, env := api.do(http.MethodPatch, "/product/"+id, token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Contains(t, string(env.Error.Details), `"field":"stock"`)
		assert.Contains(t, string(env.Error.Details), `"rule":"lte"`)
	})

	t.Run("decimals keep their scale", func(t *testing.T) {
		body := productBody("alpha")
		body["price"] = "9.999"
		body["grams"] = "0.0005"
		rec, _ := api.do(http.MethodPatch, "/product/"+id, token, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec, env := api.do(http.MethodGet, "/product/"+id, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var fetched map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &fetched))
		assert.Equal(t, "9.999", fetched["price"])
		assert.Equal(t, "0.0005", fetched["grams"])
	})

	t.Run("label", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/labels/"+id, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		api.echo.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
	})

	t.Run("soft delete keeps the row", func(t *testing.T) {
		rec, env := api.do(http.MethodDelete, "/product/"+id, token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var deleted map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &deleted))
		assert.Equal(t, "inactive", deleted["state"])

		rec, env = api.do(http.MethodGet, "/product", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		products := decodeProducts(t, env)
		require.Len(t, products, 1)
		assert.Equal(t, "beta", products[0]["handle"])

		rec, env = api.do(http.MethodGet, "/product/"+id, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var fetched map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &fetched))
		assert.Equal(t, "inactive", fetched["state"])
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		rec, env := api.do(http.MethodDelete, "/product/00000000-0000-0000-0000-000000000001", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "PRODUCT_NOT_FOUND", env.Error.Code)

		rec, env = api.do(http.MethodDelete, "/product/not-a-uuid", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ID", env.Error.Code)
	})
}

func TestProductOwnership(t *testing.T) {
	api := newTestAPI(t)
	api.register("erin", "erin@example.com", "pw")
	api.register("frank", "frank@example.com", "pw")
	owner := api.login("erin", "pw")
	other := api.login("frank", "pw")

	rec, env := api.do(http.MethodPost, "/product", owner, productBody("owned"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	id := created["id"].(string)

	rec, env = api.do(http.MethodPatch, "/product/"+id, other, productBody("owned"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "PRODUCT_OWNERSHIP_VIOLATION", env.Error.Code)
	assert.Empty(t, env.Error.Details)

	rec, _ = api.do(http.MethodDelete, "/product/"+id, other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBulkCreate(t *testing.T) {
	api := newTestAPI(t)
	api.register("gina", "gina@example.com", "pw")
	token := api.login("gina", "pw")

	t.Run("one invalid item persists nothing", func(t *testing.T) {
		bad := productBody("b2")
		delete(bad, "price")
		rec, env := api.do(http.MethodPost, "/product/bulk", token, []any{productBody("b1"), bad})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Contains(t, string(env.Error.Details), `"field":"[1].price"`)

		rec, env = api.do(http.MethodGet, "/product", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeProducts(t, env))
	})

	t.Run("empty batch", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/product/bulk", token, []any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "EMPTY_BATCH", env.Error.Code)
	})

	t.Run("too many items", func(t *testing.T) {
		items := []any{productBody("t1"), productBody("t2"), productBody("t3"), productBody("t4")}
		rec, env := api.do(http.MethodPost, "/product/bulk", token, items)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "BATCH_TOO_LARGE", env.Error.Code)
	})

	t.Run("all valid", func(t *testing.T) {
		items := []any{productBody("c1"), productBody("c2"), productBody("c3")}
		rec, env := api.do(http.MethodPost, "/product/bulk", token, items)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		created := decodeProducts(t, env)
		assert.Len(t, created, 3)
		for _, p := range created {
			assert.Equal(t, "gina", p["user"])
		}

		rec, env = api.do(http.MethodGet, "/product", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeProducts(t, env), 3)
	})
}
