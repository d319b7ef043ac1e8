package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

type fakeGateway struct {
	profileResp *taskmate.Response
	profileErr  error
	updateResp  *taskmate.Response
	updateErr   error
	resetResp   *taskmate.Response
	resetErr    error

	updated   taskmate.ProfileInput
	passwords [2]string
	creds     taskmate.Credentials
}

func (f *fakeGateway) GetProfile(_ context.Context, creds taskmate.Credentials) (*taskmate.Response, error) {
	f.creds = creds
	return f.profileResp, f.profileErr
}

func (f *fakeGateway) UpdateProfile(_ context.Context, creds taskmate.Credentials, in taskmate.ProfileInput) (*taskmate.Response, error) {
	f.creds = creds
	f.updated = in
	return f.updateResp, f.updateErr
}

func (f *fakeGateway) ResetPassword(_ context.Context, creds taskmate.Credentials, oldPassword, newPassword string) (*taskmate.Response, error) {
	f.creds = creds
	f.passwords = [2]string{oldPassword, newPassword}
	return f.resetResp, f.resetErr
}

type fakeSessions struct {
	mu      sync.Mutex
	updated []taskmate.User
}

func (f *fakeSessions) UpdateUser(_ context.Context, session webstorage.Session, user taskmate.User) (webstorage.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, user)
	session.User = user
	return session, nil
}

type memoryAvatars struct {
	mu      sync.Mutex
	avatars map[string]webstorage.Avatar
}

func newMemoryAvatars() *memoryAvatars {
	return &memoryAvatars{avatars: map[string]webstorage.Avatar{}}
}

func (m *memoryAvatars) PutAvatar(_ context.Context, avatar webstorage.Avatar) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.avatars[avatar.UserID] = avatar
	return nil
}

func (m *memoryAvatars) GetAvatar(_ context.Context, userID string) (webstorage.Avatar, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	avatar, ok := m.avatars[userID]
	return avatar, ok, nil
}

func reply(status int, envelopeStatus, message string, data any) *taskmate.Response {
	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	return &taskmate.Response{
		OK:       status >= 200 && status < 300,
		Status:   status,
		Envelope: &taskmate.Envelope{Status: envelopeStatus, Message: message, Data: raw},
	}
}

func okReply(data any) *taskmate.Response {
	return reply(http.StatusOK, "Success", "", data)
}

func testSession() webstorage.Session {
	return webstorage.Session{
		ID:          "s1",
		User:        taskmate.User{ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com", Designation: "Engineer"},
		Credentials: "token=abc",
	}
}
