package modules

import (
	"testing"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

var _ Backend = (*taskmate.Client)(nil)

func TestDefaultModulesComposeEveryArea(t *testing.T) {
	t.Parallel()

	public := DefaultPublicModules(Dependencies{}, module.Dependencies{})
	protected := DefaultProtectedModules(Dependencies{}, module.Dependencies{})

	wantPublic := []string{"public", "passwordreset"}
	if len(public) != len(wantPublic) {
		t.Fatalf("public module count = %d, want %d", len(public), len(wantPublic))
	}
	for i, id := range wantPublic {
		if got := public[i].ID(); got != id {
			t.Fatalf("public module[%d] id = %q, want %q", i, got, id)
		}
	}

	wantProtected := []string{"dashboard", "teams", "profile"}
	if len(protected) != len(wantProtected) {
		t.Fatalf("protected module count = %d, want %d", len(protected), len(wantProtected))
	}
	for i, id := range wantProtected {
		if got := protected[i].ID(); got != id {
			t.Fatalf("protected module[%d] id = %q, want %q", i, got, id)
		}
	}
}

func TestModulesHaveUniquePrefixes(t *testing.T) {
	t.Parallel()

	all := append(DefaultPublicModules(Dependencies{}, module.Dependencies{}), DefaultProtectedModules(Dependencies{}, module.Dependencies{})...)
	seen := map[string]struct{}{}
	for _, m := range all {
		mount, err := m.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", m.ID(), err)
		}
		if mount.Prefix == "" {
			t.Fatalf("module %q prefix is empty", m.ID())
		}
		if _, ok := seen[mount.Prefix]; ok {
			t.Fatalf("duplicate mount prefix %q", mount.Prefix)
		}
		seen[mount.Prefix] = struct{}{}
	}
}

func TestProtectedModulesMountUnderAppPrefix(t *testing.T) {
	t.Parallel()

	for _, m := range DefaultProtectedModules(Dependencies{}, module.Dependencies{}) {
		mount, err := m.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", m.ID(), err)
		}
		if len(mount.Prefix) <= len(routepath.AppPrefix) || mount.Prefix[:len(routepath.AppPrefix)] != routepath.AppPrefix {
			t.Fatalf("module %q prefix = %q, want under %q", m.ID(), mount.Prefix, routepath.AppPrefix)
		}
	}
}
