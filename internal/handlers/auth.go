package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/storefront/internal/logging"
	authmw "github.com/mkravtsov/storefront/internal/middleware/auth"
	"github.com/mkravtsov/storefront/internal/models"
	"github.com/mkravtsov/storefront/internal/mykafka"
	"github.com/mkravtsov/storefront/internal/service"
)

type AuthHandler struct {
	Svc      *service.AuthService
	Tokens   *authmw.TokenService
	Producer *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// LoginForm backs the page the login redirect lands on.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"error": nil})
}

func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"error": nil})
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
		Name     string `json:"name" form:"name"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, err := h.Svc.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return httpError(c, l, "register_error", err)
	}

	session := models.SessionUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
	if err := h.Tokens.IssueSession(c, session); err != nil {
		return httpError(c, l, "register_error", err)
	}

	h.publish(c, map[string]interface{}{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("user registered", "user_id", user.ID)
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(c, l, "login_error", err)
	}

	session := models.SessionUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
	if err := h.Tokens.IssueSession(c, session); err != nil {
		return httpError(c, l, "login_error", err)
	}

	h.publish(c, map[string]interface{}{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("user logged in", "user_id", user.ID)
	return c.Redirect(http.StatusFound, "/")
}

// Logout revokes the refresh token and expires the cookies. A failed
// revocation is logged, never surfaced: the caller is redirected home
// regardless.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie(authmw.RefreshCookie); err == nil && cookie.Value != "" {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			l.Error("logout revocation failed", "error", err)
		}
	}

	h.Tokens.ClearSession(c)
	return c.Redirect(http.StatusFound, "/")
}
