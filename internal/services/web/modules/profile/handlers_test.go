package profile

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/taskmate/taskmate-web/internal/services/web/platform/modulehandler"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

func newTestMux(gateway *fakeGateway, sessions *fakeSessions, avatars webstorage.AvatarStore) *http.ServeMux {
	mux := http.NewServeMux()
	svc := newService(gateway, sessions, avatars, fixedNow)
	registerRoutes(mux, handlers{Base: modulehandler.NewTestBase(testSession()), service: svc})
	return mux
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func avatarRequest(t *testing.T, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("avatar", "me.png")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, routepath.ProfileAvatar, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestIndexRendersProfileCardAndSettings(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{profileResp: okReply(taskmate.User{ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com", Location: "London"})}
	rr := httptest.NewRecorder()
	newTestMux(gateway, &fakeSessions{}, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.ProfilePrefix, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"Ada Lovelace", "ada@example.com", "London", ">AL<", "Notifications", "Integrations"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestUpdateRedirectsAfterSave(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{updateResp: okReply(nil)}
	sessions := &fakeSessions{}
	rr := httptest.NewRecorder()
	newTestMux(gateway, sessions, nil).ServeHTTP(rr, postForm(routepath.ProfilePrefix, url.Values{
		"name":    {"Ada King"},
		"website": {"https://ada.example.com"},
	}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != routepath.ProfilePrefix {
		t.Fatalf("Location = %q, want %q", got, routepath.ProfilePrefix)
	}
	if len(sessions.updated) != 1 || sessions.updated[0].Name != "Ada King" {
		t.Fatalf("session updates = %+v", sessions.updated)
	}
}

func TestUpdateValidatesFields(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	rr := httptest.NewRecorder()
	newTestMux(gateway, &fakeSessions{}, nil).ServeHTTP(rr, postForm(routepath.ProfilePrefix, url.Values{"website": {"not a url"}}))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	body := rr.Body.String()
	for _, want := range []string{"This field is required.", "Enter a valid URL."} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if gateway.updated.Name != "" {
		t.Fatal("backend called despite invalid form")
	}
}

func TestAvatarUploadThenServe(t *testing.T) {
	t.Parallel()

	avatars := newMemoryAvatars()
	mux := newTestMux(&fakeGateway{updateResp: okReply(nil)}, &fakeSessions{}, avatars)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, avatarRequest(t, pngBytes))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("upload status = %d, want %d", rr.Code, http.StatusSeeOther)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.ProfileAvatar, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("serve status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("Content-Type = %q, want image/png", got)
	}
	if !bytes.Equal(rr.Body.Bytes(), pngBytes) {
		t.Fatal("served avatar differs from upload")
	}
	wantModified := fixedNow().Format(http.TimeFormat)
	if got := rr.Header().Get("Last-Modified"); got != wantModified {
		t.Fatalf("Last-Modified = %q, want %q", got, wantModified)
	}
}

func TestAvatarUploadRejectsText(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newTestMux(&fakeGateway{}, &fakeSessions{}, newMemoryAvatars()).ServeHTTP(rr, avatarRequest(t, []byte("plain text")))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rr.Body.String(), "Upload a PNG, JPEG, GIF or WebP image up to 2 MB.") {
		t.Fatalf("body missing avatar error: %q", rr.Body.String())
	}
}

func TestAvatarMissingIsNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newTestMux(&fakeGateway{}, &fakeSessions{}, newMemoryAvatars()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.ProfileAvatar, nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestPasswordChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		gateway    *fakeGateway
		values     url.Values
		wantStatus int
		wantBody   string
	}{
		{name: "success", gateway: &fakeGateway{resetResp: okReply(nil)}, values: url.Values{"oldPassword": {"Old1!pass"}, "newPassword": {"New1!pass"}}, wantStatus: http.StatusSeeOther},
		{name: "weak password", gateway: &fakeGateway{}, values: url.Values{"oldPassword": {"Old1!pass"}, "newPassword": {"weak"}}, wantStatus: http.StatusUnprocessableEntity, wantBody: "uppercase, lowercase, number, and special character"},
		{name: "server message", gateway: &fakeGateway{resetResp: reply(http.StatusBadRequest, "failed", "Old password is incorrect", nil)}, values: url.Values{"oldPassword": {"nope"}, "newPassword": {"New1!pass"}}, wantStatus: http.StatusUnprocessableEntity, wantBody: "Old password is incorrect"},
		{name: "fallback", gateway: &fakeGateway{resetResp: reply(http.StatusInternalServerError, "failed", "", nil)}, values: url.Values{"oldPassword": {"nope"}, "newPassword": {"New1!pass"}}, wantStatus: http.StatusUnprocessableEntity, wantBody: "Failed to update password"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			newTestMux(tc.gateway, &fakeSessions{}, nil).ServeHTTP(rr, postForm(routepath.ProfilePassword, tc.values))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if tc.wantBody != "" && !strings.Contains(rr.Body.String(), tc.wantBody) {
				t.Fatalf("body missing %q: %q", tc.wantBody, rr.Body.String())
			}
		})
	}
}
