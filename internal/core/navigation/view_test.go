package navigation

import (
	"testing"

	"github.com/enterprisehub/portal/internal/core/domain"
)

func identityWithRole(role domain.Role) *domain.Identity {
	return &domain.Identity{ID: "u-1", Username: "user", Role: role}
}

func TestResolve_AdminGroupRoleGating(t *testing.T) {
	m := Default()

	elevated := []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleDepartmentHead}
	for _, role := range elevated {
		v := m.Resolve(identityWithRole(role), "/dashboard")
		if !v.ShowAdmin {
			t.Errorf("role %q: admin group must be present", role)
		}
		if len(v.Admin) != len(m.Admin) {
			t.Errorf("role %q: expected %d admin entries, got %d", role, len(m.Admin), len(v.Admin))
		}
	}

	hidden := []domain.Role{domain.RoleEmployee, domain.RoleTeamLead, "", "superuser", "root"}
	for _, role := range hidden {
		v := m.Resolve(identityWithRole(role), "/dashboard")
		if v.ShowAdmin || len(v.Admin) != 0 {
			t.Errorf("role %q: admin group must be absent", role)
		}
	}
}

func TestResolve_NoIdentityNeverShowsAdmin(t *testing.T) {
	v := Default().Resolve(nil, "/admin")
	if v.ShowAdmin || len(v.Admin) != 0 || v.AdminShortcutActive {
		t.Fatalf("absent identity must never render admin entries")
	}
}

func TestResolve_MainAlwaysRendered(t *testing.T) {
	m := Default()
	for _, identity := range []*domain.Identity{nil, identityWithRole(domain.RoleEmployee)} {
		v := m.Resolve(identity, "/dashboard")
		if len(v.Main) != len(m.Main) {
			t.Fatalf("main group must always render")
		}
		if len(v.Features) != len(m.Features) || len(v.Gamification) != len(m.Gamification) {
			t.Fatalf("features and gamification groups must always render")
		}
	}
}

func TestResolve_ActivePathExactMatch(t *testing.T) {
	v := Default().Resolve(identityWithRole(domain.RoleEmployee), "/chat")

	for _, e := range v.Features {
		if e.Path == "/chat" && !e.Active {
			t.Fatalf("/chat entry must be active on /chat")
		}
		if e.Path != "/chat" && e.Active {
			t.Fatalf("entry %s must not be active on /chat", e.Path)
		}
	}
	for _, e := range v.Main {
		if e.Active {
			t.Fatalf("main entry %s must not be active on /chat", e.Path)
		}
	}
}

func TestResolve_AdminShortcutGroupActivation(t *testing.T) {
	m := Default()

	for _, path := range []string{"/admin", "/approvals", "/invitations"} {
		v := m.Resolve(identityWithRole(domain.RoleAdmin), path)
		if !v.AdminShortcutActive {
			t.Errorf("admin shortcut must be active on %s", path)
		}
	}

	v := m.Resolve(identityWithRole(domain.RoleAdmin), "/dashboard")
	if v.AdminShortcutActive {
		t.Fatalf("admin shortcut must not be active on /dashboard")
	}
}
