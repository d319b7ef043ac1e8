// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/taskmate/taskmate-web/internal/services/web/platform/cookies"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
)

// Viewer contains user-facing chrome data for the current request.
type Viewer struct {
	SignedIn    bool
	UserID      string
	DisplayName string
	Email       string
	Initials    string
	AvatarURL   string
}

// ResolveViewer resolves chrome viewer state for a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveSession resolves the live browser session for a request.
type ResolveSession func(*http.Request) (webstorage.Session, bool)

// EndSession destroys the request's browser session and clears its cookie.
type EndSession func(http.ResponseWriter, *http.Request)

// Dependencies carries the request resolvers shared by every module.
type Dependencies struct {
	ResolveViewer  ResolveViewer
	ResolveSession ResolveSession
	EndSession     EndSession
	Cookies        cookies.Jar
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}
