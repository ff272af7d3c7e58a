package navigation

import "github.com/enterprisehub/portal/internal/core/domain"

// EntryView is an Entry resolved against the current route.
type EntryView struct {
	Entry
	Active bool
}

// View is the fully resolved navigation model for one render pass. It is a
// pure function of (manifest, identity, current path) and never caches a
// stale identity snapshot.
type View struct {
	Main         []EntryView
	Features     []EntryView
	Gamification []EntryView

	// Admin is empty and ShowAdmin false unless the identity is present and
	// its role is elevated. Unknown roles fail closed.
	Admin     []EntryView
	ShowAdmin bool

	// AdminShortcutActive marks the admin shortcut when the current path is
	// any of the admin group's target paths (group-level activation).
	AdminShortcutActive bool
}

// Resolve computes the navigation view for the given identity and route.
// A nil identity means unauthenticated: the admin group never renders,
// regardless of any stale role data elsewhere.
func (m Manifest) Resolve(identity *domain.Identity, currentPath string) View {
	v := View{
		Main:         resolveEntries(m.Main, currentPath),
		Features:     resolveEntries(m.Features, currentPath),
		Gamification: resolveEntries(m.Gamification, currentPath),
	}

	if identity == nil || !identity.Role.Elevated() {
		return v
	}

	v.ShowAdmin = true
	v.Admin = resolveEntries(m.Admin, currentPath)
	for _, e := range v.Admin {
		if e.Active {
			v.AdminShortcutActive = true
			break
		}
	}
	return v
}

func resolveEntries(entries []Entry, currentPath string) []EntryView {
	out := make([]EntryView, len(entries))
	for i, e := range entries {
		out[i] = EntryView{Entry: e, Active: e.Path == currentPath}
	}
	return out
}
