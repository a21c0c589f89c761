package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/storefront/internal/models"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"

	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type TokenRepo interface {
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	GetRefreshToken(ctx context.Context, raw string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, raw string) error
}

// TokenService issues and validates the cookie pair carrying the session
// identity (id, email, name, role).
type TokenService struct {
	Repo          TokenRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func sessionClaims(user models.SessionUser, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   float64(user.ID),
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"exp":   exp.Unix(),
	}
}

func (t *TokenService) SignAccessToken(user models.SessionUser) (string, error) {
	claims := sessionClaims(user, time.Now().Add(accessTTL))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.JWTSecret)
}

func (t *TokenService) SignRefreshToken(user models.SessionUser) (string, error) {
	claims := sessionClaims(user, time.Now().Add(refreshTTL))
	claims["typ"] = "refresh"
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.RefreshSecret)
}

// IssueSession signs both tokens, persists the refresh token and sets the
// cookies. Called on register and login.
func (t *TokenService) IssueSession(c echo.Context, user models.SessionUser) error {
	access, err := t.SignAccessToken(user)
	if err != nil {
		return err
	}
	refresh, err := t.SignRefreshToken(user)
	if err != nil {
		return err
	}

	stored := models.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(refreshTTL).Unix(),
	}
	if err := t.Repo.SaveRefreshToken(c.Request().Context(), &stored); err != nil {
		return err
	}

	c.SetCookie(CreateCookie(AccessCookie, access, "/", time.Now().Add(accessTTL)))
	c.SetCookie(CreateCookie(RefreshCookie, refresh, "/", time.Now().Add(refreshTTL)))
	return nil
}

func (t *TokenService) ClearSession(c echo.Context) {
	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(AccessCookie, "", "/", expired))
	c.SetCookie(CreateCookie(RefreshCookie, "", "/", expired))
}

func (t *TokenService) parse(raw string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func userFromClaims(claims jwt.MapClaims) (models.SessionUser, error) {
	sub, ok := claims["sub"].(float64)
	if !ok {
		return models.SessionUser{}, errors.New("invalid subject claim")
	}
	role := models.Role(fmt.Sprint(claims["role"]))
	if !role.Valid() {
		return models.SessionUser{}, errors.New("invalid role claim")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return models.SessionUser{
		ID:    uint(sub),
		Email: email,
		Name:  name,
		Role:  role,
	}, nil
}

// validateRefresh checks the signature, the refresh type and the stored
// record (revocation and expiry).
func (t *TokenService) validateRefresh(ctx context.Context, raw string) (models.SessionUser, error) {
	claims, err := t.parse(raw, t.RefreshSecret)
	if err != nil {
		return models.SessionUser{}, fmt.Errorf("invalid refresh token: %w", err)
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return models.SessionUser{}, errors.New("not a refresh token")
	}

	stored, err := t.Repo.GetRefreshToken(ctx, raw)
	if err != nil {
		return models.SessionUser{}, fmt.Errorf("refresh token lookup: %w", err)
	}
	if stored.Revoked {
		return models.SessionUser{}, errors.New("refresh token revoked")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return models.SessionUser{}, errors.New("refresh token expired")
	}

	return userFromClaims(claims)
}

// resolveSession returns the session user from the access cookie, rotating
// through the refresh token when the access token is missing or expired.
func (t *TokenService) resolveSession(c echo.Context) (models.SessionUser, error) {
	if cookie, err := c.Cookie(AccessCookie); err == nil && cookie.Value != "" {
		claims, err := t.parse(cookie.Value, t.JWTSecret)
		if err == nil {
			return userFromClaims(claims)
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			return models.SessionUser{}, err
		}
	}

	cookie, err := c.Cookie(RefreshCookie)
	if err != nil || cookie.Value == "" {
		return models.SessionUser{}, errors.New("no session")
	}

	user, err := t.validateRefresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return models.SessionUser{}, err
	}

	access, err := t.SignAccessToken(user)
	if err != nil {
		return models.SessionUser{}, err
	}
	c.SetCookie(CreateCookie(AccessCookie, access, "/", time.Now().Add(accessTTL)))
	return user, nil
}
