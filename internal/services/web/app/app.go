// Package app assembles the web root handler from public and protected
// module groups.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/requestmeta"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	PublicModules    []module.Module
	ProtectedModules []module.Module
	SchemePolicy     requestmeta.SchemePolicy
}

// BuildRootHandler mounts every module on one mux. Public modules may not
// claim /app/ prefixes and protected modules must. authenticated reports
// whether a request carries a live session.
func BuildRootHandler(cfg Config, authenticated func(*http.Request) bool) (http.Handler, error) {
	if authenticated == nil {
		authenticated = func(*http.Request) bool { return false }
	}
	rt := router{mux: http.NewServeMux(), owners: make(map[string]string)}
	for _, m := range cfg.PublicModules {
		if err := rt.mount(m, false, nil); err != nil {
			return nil, err
		}
	}
	guard := protectedGuard{authenticated: authenticated, policy: cfg.SchemePolicy}
	for _, m := range cfg.ProtectedModules {
		if err := rt.mount(m, true, guard.wrap); err != nil {
			return nil, err
		}
	}
	return rt.mux, nil
}

// router records which module owns each prefix.
type router struct {
	mux    *http.ServeMux
	owners map[string]string
}

func (rt router) mount(m module.Module, protected bool, wrap func(http.Handler) http.Handler) error {
	if m == nil {
		if protected {
			return fmt.Errorf("protected module is nil")
		}
		return fmt.Errorf("public module is nil")
	}
	mount, err := m.Mount()
	if err != nil {
		return fmt.Errorf("mount module %q: %w", m.ID(), err)
	}
	if err := checkPrefix(mount.Prefix); err != nil {
		return fmt.Errorf("module %q has invalid prefix %q: %w", m.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return fmt.Errorf("mount module %q: handler is required", m.ID())
	}
	underApp := strings.HasPrefix(mount.Prefix, routepath.AppPrefix)
	switch {
	case protected && !underApp:
		return fmt.Errorf("module %q must mount under %s, got %q", m.ID(), routepath.AppPrefix, mount.Prefix)
	case !protected && underApp:
		return fmt.Errorf("module %q has protected prefix %q in public group", m.ID(), mount.Prefix)
	}

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	patterns := []string{mount.Prefix}
	// /app/teams must not fall through to the public catch-all.
	if protected && mount.Prefix != routepath.AppPrefix {
		patterns = append(patterns, strings.TrimSuffix(mount.Prefix, "/"))
	}
	for _, pattern := range patterns {
		if owner, taken := rt.owners[pattern]; taken {
			return fmt.Errorf("module %q duplicates prefix %q owned by module %q", m.ID(), pattern, owner)
		}
		rt.owners[pattern] = m.ID()
		rt.mux.Handle(pattern, handler)
	}
	return nil
}

func checkPrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("prefix is required")
	case strings.TrimSpace(prefix) != prefix:
		return fmt.Errorf("prefix must not include surrounding whitespace")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("prefix must begin with /")
	case !strings.HasSuffix(prefix, "/"):
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}
