package handler

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/enterprisehub/portal/internal/core/domain"
	"github.com/enterprisehub/portal/internal/core/navigation"
	"github.com/enterprisehub/portal/internal/core/ports"
)

// PagesHandler renders the authenticated pages and owns the transient menu
// interaction state. The navigation view itself is recomputed from the
// session on every request; only the open/closed menu slots live here.
type PagesHandler struct {
	session  ports.Session
	manifest navigation.Manifest
	log      zerolog.Logger

	mu       sync.Mutex
	menu     *navigation.MenuState
	lastPath string
}

func NewPagesHandler(session ports.Session, manifest navigation.Manifest, log zerolog.Logger) *PagesHandler {
	return &PagesHandler{
		session:  session,
		manifest: manifest,
		log:      log,
		menu:     navigation.NewMenuState(),
	}
}

type navData struct {
	View             navigation.View
	User             domain.Identity
	FeaturesOpen     bool
	GamificationOpen bool
	ProfileOpen      bool
	MobileExpanded   bool
	CSRFField        template.HTML
}

type pageData struct {
	Title string
	Nav   navData
}

// Page renders a generic content page for any manifest entry path.
func (h *PagesHandler) Page(c echo.Context) error {
	identity, ok := h.session.Current()
	if !ok {
		return c.Redirect(http.StatusSeeOther, navigation.PathLogin)
	}

	path := c.Request().URL.Path

	h.mu.Lock()
	if path != h.lastPath {
		h.menu.RouteChanged()
		h.lastPath = path
	}
	nav := navData{
		View:             h.manifest.Resolve(&identity, path),
		User:             identity,
		FeaturesOpen:     h.menu.IsOpen(navigation.DropdownFeatures),
		GamificationOpen: h.menu.IsOpen(navigation.DropdownGamification),
		ProfileOpen:      h.menu.IsOpen(navigation.DropdownProfile),
		MobileExpanded:   h.menu.MobileExpanded(),
		CSRFField:        csrf.TemplateField(c.Request()),
	}
	h.mu.Unlock()

	return c.Render(http.StatusOK, "page", pageData{Title: h.pageTitle(path), Nav: nav})
}

// ToggleDropdown flips one desktop dropdown and returns to the page the
// request came from. Dropdowns are independent; toggling one never touches
// another.
func (h *PagesHandler) ToggleDropdown(c echo.Context) error {
	d := parseDropdown(c.FormValue("name"))

	h.mu.Lock()
	h.menu.Toggle(d)
	h.mu.Unlock()

	return c.Redirect(http.StatusSeeOther, h.backTo(c))
}

// ToggleMobile flips the whole-menu expand/collapse slot.
func (h *PagesHandler) ToggleMobile(c echo.Context) error {
	h.mu.Lock()
	h.menu.ToggleMobile()
	h.mu.Unlock()

	return c.Redirect(http.StatusSeeOther, h.backTo(c))
}

// SetLayout records a desktop/mobile viewport switch, which collapses every
// open menu surface.
func (h *PagesHandler) SetLayout(c echo.Context) error {
	layout := navigation.LayoutDesktop
	if c.FormValue("mode") == "mobile" {
		layout = navigation.LayoutMobile
	}

	h.mu.Lock()
	h.menu.SetLayout(layout)
	h.mu.Unlock()

	return c.Redirect(http.StatusSeeOther, h.backTo(c))
}

func (h *PagesHandler) backTo(c echo.Context) string {
	if ref := c.Request().Header.Get("Referer"); ref != "" {
		return ref
	}
	return navigation.PathDashboard
}

func (h *PagesHandler) pageTitle(path string) string {
	groups := [][]navigation.Entry{
		h.manifest.Main,
		h.manifest.Features,
		h.manifest.Gamification,
		h.manifest.Admin,
	}
	for _, entries := range groups {
		for _, e := range entries {
			if e.Path == path {
				return e.Label
			}
		}
	}
	return "Enterprise Hub"
}

func parseDropdown(name string) navigation.Dropdown {
	switch name {
	case "features":
		return navigation.DropdownFeatures
	case "gamification":
		return navigation.DropdownGamification
	case "profile":
		return navigation.DropdownProfile
	default:
		return navigation.DropdownNone
	}
}
