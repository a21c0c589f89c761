package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/storefront/internal/models"
)

const userContextKey = "session_user"

func setUserContext(c echo.Context, user models.SessionUser) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the session identity attached by one of the
// middlewares below.
func CurrentUser(c echo.Context) (models.SessionUser, bool) {
	user, ok := c.Get(userContextKey).(models.SessionUser)
	return user, ok
}

// RequireLogin redirects anonymous callers to the login page, matching the
// browser-facing flows.
func (t *TokenService) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := t.resolveSession(c)
		if err != nil {
			return c.Redirect(http.StatusFound, "/auth/login")
		}
		setUserContext(c, user)
		return next(c)
	}
}

// AdminOnly rejects anyone without the admin role.
func (t *TokenService) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := t.resolveSession(c)
		if err != nil || !user.Role.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}
		setUserContext(c, user)
		return next(c)
	}
}

// OptionalUser attaches the session identity when one exists and lets the
// request through either way. Used where anonymous access is fine but the
// response is user-aware (cart counts, home page).
func (t *TokenService) OptionalUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user, err := t.resolveSession(c); err == nil {
			setUserContext(c, user)
		}
		return next(c)
	}
}
