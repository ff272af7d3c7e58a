package api

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/enterprisehub/portal/internal/api/handler"
	"github.com/enterprisehub/portal/internal/api/middleware"
	"github.com/enterprisehub/portal/internal/api/render"
	"github.com/enterprisehub/portal/internal/core/navigation"
	"github.com/enterprisehub/portal/internal/core/ports"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Session     ports.Session
	Manifest    navigation.Manifest
	AuthBaseURL string
	CSRFKey     []byte
	Production  bool
	Redis       *redis.Client // nil unless the Redis token store is in use
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = render.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(echo.WrapMiddleware(csrf.Protect(
		deps.CSRFKey,
		csrf.Path("/"),
		csrf.Secure(deps.Production),
	)))

	// --- Auth flow ---
	authHandler := handler.NewAuthHandler(deps.Session, deps.Log)
	e.GET(navigation.PathLogin, authHandler.ShowLogin)
	e.POST(navigation.PathLogin, authHandler.SubmitLogin)
	e.GET(navigation.PathRegister, authHandler.ShowRegister)
	e.POST(navigation.PathRegister, authHandler.SubmitRegister)
	e.POST("/logout", authHandler.Logout)

	// --- Authenticated pages ---
	pages := handler.NewPagesHandler(deps.Session, deps.Manifest, deps.Log)
	authed := e.Group("", middleware.RequireSession(deps.Session))
	for _, entry := range deps.Manifest.Main {
		authed.GET(entry.Path, pages.Page)
	}
	for _, entry := range deps.Manifest.Features {
		authed.GET(entry.Path, pages.Page)
	}
	for _, entry := range deps.Manifest.Gamification {
		authed.GET(entry.Path, pages.Page)
	}

	// Admin routes sit behind the elevated-role gate as well.
	elevated := e.Group("", middleware.RequireSession(deps.Session), middleware.RequireElevated())
	for _, entry := range deps.Manifest.Admin {
		elevated.GET(entry.Path, pages.Page)
	}

	// --- Menu interaction state ---
	authed.POST("/nav/dropdown", pages.ToggleDropdown)
	authed.POST("/nav/mobile", pages.ToggleMobile)
	authed.POST("/nav/layout", pages.SetLayout)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, navigation.PathDashboard)
	})
	e.StaticFS("/static", render.Static())

	// --- Health probes and metrics (no auth required) ---
	e.GET("/healthz", NewHealthHandler().Liveness)
	e.GET("/healthz/ready", NewReadinessHandler(deps.AuthBaseURL, deps.Redis).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
