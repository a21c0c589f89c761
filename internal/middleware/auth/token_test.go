package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkravtsov/storefront/internal/models"
)

type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeTokenRepo) SaveRefreshToken(_ context.Context, token *models.RefreshToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenRepo) GetRefreshToken(_ context.Context, raw string) (*models.RefreshToken, error) {
	if t, ok := f.tokens[raw]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTokenRepo) RevokeRefreshToken(_ context.Context, raw string) error {
	if t, ok := f.tokens[raw]; ok {
		t.Revoked = true
	}
	return nil
}

func newTokenService() (*TokenService, *fakeTokenRepo) {
	repo := newFakeTokenRepo()
	return &TokenService{
		Repo:          repo,
		JWTSecret:     []byte("jwt_secret"),
		RefreshSecret: []byte("refresh_secret"),
	}, repo
}

func testContext(cookies ...*http.Cookie) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

var testUser = models.SessionUser{ID: 7, Email: "user@test.local", Name: "User", Role: models.RoleUser}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc, _ := newTokenService()

	raw, err := svc.SignAccessToken(testUser)
	require.NoError(t, err)

	c := testContext(&http.Cookie{Name: AccessCookie, Value: raw})
	user, err := svc.resolveSession(c)
	require.NoError(t, err)
	require.Equal(t, testUser, user)
}

func TestResolveSessionRejectsWrongSecret(t *testing.T) {
	svc, _ := newTokenService()
	other := &TokenService{JWTSecret: []byte("other_secret"), RefreshSecret: []byte("other_refresh")}

	raw, err := other.SignAccessToken(testUser)
	require.NoError(t, err)

	c := testContext(&http.Cookie{Name: AccessCookie, Value: raw})
	_, err = svc.resolveSession(c)
	require.Error(t, err)
}

func TestResolveSessionRotatesThroughRefresh(t *testing.T) {
	svc, repo := newTokenService()

	refresh, err := svc.SignRefreshToken(testUser)
	require.NoError(t, err)
	require.NoError(t, repo.SaveRefreshToken(context.Background(), &models.RefreshToken{
		Token:     refresh,
		UserID:    testUser.ID,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}))

	rec := httptest.NewRecorder()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: refresh})
	c := e.NewContext(req, rec)

	user, err := svc.resolveSession(c)
	require.NoError(t, err)
	require.Equal(t, testUser, user)

	// A fresh access cookie must be set after rotation.
	var found bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == AccessCookie && ck.Value != "" {
			found = true
		}
	}
	require.True(t, found)
}

func TestResolveSessionRejectsRevokedRefresh(t *testing.T) {
	svc, repo := newTokenService()

	refresh, err := svc.SignRefreshToken(testUser)
	require.NoError(t, err)
	require.NoError(t, repo.SaveRefreshToken(context.Background(), &models.RefreshToken{
		Token:     refresh,
		UserID:    testUser.ID,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}))
	require.NoError(t, repo.RevokeRefreshToken(context.Background(), refresh))

	c := testContext(&http.Cookie{Name: RefreshCookie, Value: refresh})
	_, err = svc.resolveSession(c)
	require.Error(t, err)
}

func TestResolveSessionRejectsAccessTokenAsRefresh(t *testing.T) {
	svc, repo := newTokenService()

	// An access token signed with the refresh secret but without the
	// refresh type claim must not pass.
	claims := sessionClaims(testUser, time.Now().Add(time.Hour))
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, repo.SaveRefreshToken(context.Background(), &models.RefreshToken{
		Token:     raw,
		UserID:    testUser.ID,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}))

	c := testContext(&http.Cookie{Name: RefreshCookie, Value: raw})
	_, err = svc.resolveSession(c)
	require.Error(t, err)
}

func TestUserFromClaimsRejectsUnknownRole(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  float64(1),
		"role": "superadmin",
	}
	_, err := userFromClaims(claims)
	require.Error(t, err)
}
