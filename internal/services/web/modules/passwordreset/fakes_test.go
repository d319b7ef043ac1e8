package passwordreset

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskmate/taskmate-web/internal/taskmate"
)

// fakeGateway implements ResetGateway with canned replies and captured input.
type fakeGateway struct {
	sendResp   *taskmate.Response
	sendErr    error
	verifyResp *taskmate.Response
	verifyErr  error
	resetResp  *taskmate.Response
	resetErr   error

	sentTo    string
	verified  [2]string
	resetWith [2]string
	calls     int
}

func (f *fakeGateway) SendOTP(_ context.Context, email string) (*taskmate.Response, error) {
	f.calls++
	f.sentTo = email
	return f.sendResp, f.sendErr
}

func (f *fakeGateway) VerifyOTP(_ context.Context, email, otp string) (*taskmate.Response, error) {
	f.calls++
	f.verified = [2]string{email, otp}
	return f.verifyResp, f.verifyErr
}

func (f *fakeGateway) SetNewPassword(_ context.Context, token, password string) (*taskmate.Response, error) {
	f.calls++
	f.resetWith = [2]string{token, password}
	return f.resetResp, f.resetErr
}

func reply(status int, message string, data any) *taskmate.Response {
	raw, _ := json.Marshal(data)
	envelopeStatus := "success"
	if status >= http.StatusBadRequest {
		envelopeStatus = "failed"
	}
	return &taskmate.Response{
		OK:       status >= 200 && status < 300,
		Status:   status,
		Envelope: &taskmate.Envelope{Status: envelopeStatus, Message: message, Data: raw},
	}
}
