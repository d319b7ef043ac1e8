package public

import (
	"context"
	"net/http"

	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

var errUnavailable = apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable_body", "auth backend is not configured")

type unavailableGateway struct{}

func (unavailableGateway) Login(context.Context, string, string) (*taskmate.Response, error) {
	return nil, errUnavailable
}

func (unavailableGateway) Signup(context.Context, taskmate.SignupInput) (*taskmate.Response, error) {
	return nil, errUnavailable
}

func (unavailableGateway) Logout(context.Context, taskmate.Credentials) (*taskmate.Response, error) {
	return nil, errUnavailable
}

func (unavailableGateway) GetProfile(context.Context, taskmate.Credentials) (*taskmate.Response, error) {
	return nil, errUnavailable
}

type unavailableSessions struct{}

func (unavailableSessions) Create(context.Context, taskmate.User, []*http.Cookie) (webstorage.Session, error) {
	return webstorage.Session{}, errUnavailable
}

func (unavailableSessions) Destroy(context.Context, string) error {
	return nil
}
