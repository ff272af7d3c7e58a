package stubauth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/enterprisehub/portal/internal/core/domain"
)

// NewRouter exposes the service over the same wire shape as the platform
// backend: {access_token, token_type, user} envelopes and {"detail": …}
// error bodies.
func NewRouter(svc *Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())

	h := &httpHandler{svc: svc}
	e.POST("/api/auth/login", h.login)
	e.POST("/api/auth/register", h.register)
	e.GET("/api/auth/me", h.me)
	return e
}

type httpHandler struct {
	svc *Service
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	User        *domain.Identity `json:"user"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func (h *httpHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid payload"})
	}

	token, identity, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, detailResponse{Detail: domain.DisplayReason(err)})
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: identity})
}

func (h *httpHandler) register(c echo.Context) error {
	var req domain.Registration
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid payload"})
	}

	token, identity, err := h.svc.Register(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: domain.DisplayReason(err)})
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: identity})
}

func (h *httpHandler) me(c echo.Context) error {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return c.JSON(http.StatusUnauthorized, detailResponse{Detail: "Not authenticated"})
	}

	identity, err := h.svc.Identity(parts[1])
	if err != nil {
		return c.JSON(http.StatusUnauthorized, detailResponse{Detail: domain.DisplayReason(err)})
	}
	return c.JSON(http.StatusOK, identity)
}
