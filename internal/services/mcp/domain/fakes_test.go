package domain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskmate/taskmate-web/internal/taskmate"
	"github.com/taskmate/taskmate-web/internal/testkit/fakebackend"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "Secret#123"
)

// newBackend starts an in-memory backend with one seeded account.
func newBackend(t *testing.T) (*fakebackend.Server, *taskmate.Client) {
	t.Helper()

	fb := fakebackend.New(fakebackend.Config{})
	if _, err := fb.SeedUser("Ada Lovelace", testEmail, testPassword, "Engineer"); err != nil {
		t.Fatalf("SeedUser() error = %v", err)
	}
	srv := httptest.NewServer(fb.Handler())
	t.Cleanup(srv.Close)
	client, err := taskmate.New(srv.URL)
	if err != nil {
		t.Fatalf("taskmate.New() error = %v", err)
	}
	return fb, client
}

// scriptedBackend answers Login with a fixed cookie and ListAdminTeams from
// a queue of statuses. Other methods panic through the nil embedded interface.
type scriptedBackend struct {
	Backend

	logins      int
	adminCalls  int
	adminStatus []int
}

func (b *scriptedBackend) Login(context.Context, string, string) (*taskmate.Response, error) {
	b.logins++
	return &taskmate.Response{
		OK:       true,
		Status:   http.StatusOK,
		Envelope: &taskmate.Envelope{Status: "success"},
		Cookies:  []*http.Cookie{{Name: "token", Value: "opaque"}},
	}, nil
}

func (b *scriptedBackend) ListAdminTeams(context.Context, taskmate.Credentials) (*taskmate.Response, error) {
	status := http.StatusOK
	if b.adminCalls < len(b.adminStatus) {
		status = b.adminStatus[b.adminCalls]
	}
	b.adminCalls++
	return &taskmate.Response{
		OK:       status < http.StatusBadRequest,
		Status:   status,
		Envelope: &taskmate.Envelope{Status: "success", Data: []byte("[]")},
	}, nil
}
