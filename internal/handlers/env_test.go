package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkravtsov/storefront/internal/db"
	"github.com/mkravtsov/storefront/internal/handlers"
	"github.com/mkravtsov/storefront/internal/hash"
	authmw "github.com/mkravtsov/storefront/internal/middleware/auth"
	"github.com/mkravtsov/storefront/internal/models"
	"github.com/mkravtsov/storefront/internal/mykafka"
	"github.com/mkravtsov/storefront/internal/repo"
	"github.com/mkravtsov/storefront/internal/service"
	httpserver "github.com/mkravtsov/storefront/internal/transport/http"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func initTestDB(t *testing.T) *gorm.DB {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return gormDB
}

func newTestEnv(t *testing.T) *testEnv {
	gormDB := initTestDB(t)

	store := repo.NewGormRepo(gormDB)
	producer := &mykafka.Producer{}
	tokens := &authmw.TokenService{
		Repo:          store,
		JWTSecret:     []byte("test_jwt_secret"),
		RefreshSecret: []byte("test_refresh_secret"),
	}

	cartSvc := &service.CartService{Repo: store}

	deps := httpserver.Deps{
		Tokens: tokens,
		AuthHandler: &handlers.AuthHandler{
			Svc:      &service.AuthService{Repo: store},
			Tokens:   tokens,
			Producer: producer,
		},
		CatalogHandler: &handlers.CatalogHandler{
			Svc:  &service.CatalogService{Repo: store},
			Cart: cartSvc,
		},
		CartHandler: &handlers.CartHandler{
			Svc:      cartSvc,
			Producer: producer,
		},
		OrderHandler: &handlers.OrderHandler{
			Svc:      &service.OrderService{Repo: store},
			Producer: producer,
		},
		AdminHandler: &handlers.AdminHandler{
			Svc:      &service.AdminService{Repo: store},
			Producer: producer,
		},
		SearchHandler: &handlers.SearchHandler{Index: "products"},
	}

	e := echo.New()
	httpserver.Register(e, &deps)

	return &testEnv{T: t, E: e, DB: gormDB}
}

// doJSON runs the request through the full router, so the auth middleware
// sees the cookies the same way it would in production.
func (env *testEnv) doJSON(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func sessionCookies(t *testing.T, rec *httptest.ResponseRecorder) []*http.Cookie {
	t.Helper()

	var out []*http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if (ck.Name == authmw.AccessCookie || ck.Name == authmw.RefreshCookie) && ck.Value != "" {
			out = append(out, ck)
		}
	}
	require.Len(t, out, 2, "expected access and refresh cookies")
	return out
}

func register(t *testing.T, env *testEnv, email string) []*http.Cookie {
	t.Helper()

	payload := map[string]string{
		"email":    email,
		"password": "password",
		"name":     "Test User",
	}
	rec := env.doJSON(http.MethodPost, "/auth/register", payload)
	require.Equal(t, http.StatusFound, rec.Code)
	return sessionCookies(t, rec)
}

func loginAdmin(t *testing.T, env *testEnv) []*http.Cookie {
	t.Helper()

	passwordHash, err := hash.HashPassword("admin_password")
	require.NoError(t, err)
	env.DB.Create(&models.User{
		Email:        "admin@test.local",
		PasswordHash: passwordHash,
		Name:         "Admin",
		Role:         models.RoleAdmin,
	})

	rec := env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"email":    "admin@test.local",
		"password": "admin_password",
	})
	require.Equal(t, http.StatusFound, rec.Code)
	return sessionCookies(t, rec)
}

func createProduct(t *testing.T, env *testEnv, name string, price float64, stock uint) *models.Product {
	t.Helper()

	product := models.Product{Name: name, Description: name + " description", Price: price, Stock: stock}
	require.NoError(t, env.DB.Create(&product).Error)
	return &product
}

func errBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["error"]
}
