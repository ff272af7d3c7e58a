package navigation

// Dropdown enumerates the desktop dropdown surfaces. Modeling the open
// state on a closed enumeration makes the independence of the dropdowns an
// explicit choice rather than an accident of loose boolean flags.
type Dropdown int

const (
	DropdownNone Dropdown = iota
	DropdownFeatures
	DropdownGamification
	DropdownProfile
)

// Layout is the presentation mode the menu is rendered in.
type Layout int

const (
	LayoutDesktop Layout = iota
	LayoutMobile
)

// MenuState is the transient per-navbar interaction state: which dropdowns
// are open and whether the mobile menu is expanded. It is never persisted
// and resets on route change. Dropdowns are independent of each other and
// of the mobile slot; opening one never closes another.
type MenuState struct {
	open           map[Dropdown]bool
	mobileExpanded bool
	layout         Layout
}

func NewMenuState() *MenuState {
	return &MenuState{open: make(map[Dropdown]bool), layout: LayoutDesktop}
}

// Toggle flips the open state of one dropdown. DropdownNone is a no-op.
func (s *MenuState) Toggle(d Dropdown) {
	if d == DropdownNone {
		return
	}
	s.open[d] = !s.open[d]
}

// IsOpen reports whether the given dropdown is currently open.
func (s *MenuState) IsOpen(d Dropdown) bool {
	return s.open[d]
}

// ToggleMobile flips the whole-menu expand/collapse slot. It shares no
// state with the desktop dropdowns.
func (s *MenuState) ToggleMobile() {
	s.mobileExpanded = !s.mobileExpanded
}

// MobileExpanded reports whether the mobile menu is expanded.
func (s *MenuState) MobileExpanded() bool {
	return s.mobileExpanded
}

// Layout returns the current presentation mode.
func (s *MenuState) CurrentLayout() Layout {
	return s.layout
}

// SetLayout records a viewport switch between desktop and mobile. Changing
// mode collapses every open surface.
func (s *MenuState) SetLayout(l Layout) {
	if l == s.layout {
		return
	}
	s.layout = l
	s.reset()
}

// ActivateEntry records that a menu item inside the given dropdown was
// activated, which collapses that dropdown (and the mobile menu, since
// activation navigates away).
func (s *MenuState) ActivateEntry(d Dropdown) {
	if d != DropdownNone {
		s.open[d] = false
	}
	s.mobileExpanded = false
}

// RouteChanged resets all interaction state after navigation.
func (s *MenuState) RouteChanged() {
	s.reset()
}

func (s *MenuState) reset() {
	s.open = make(map[Dropdown]bool)
	s.mobileExpanded = false
}
