package passwordreset

import (
	"context"
	"strings"

	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

// ResetGateway is the slice of the backend client used by the wizard.
type ResetGateway interface {
	SendOTP(ctx context.Context, email string) (*taskmate.Response, error)
	VerifyOTP(ctx context.Context, email, otp string) (*taskmate.Response, error)
	SetNewPassword(ctx context.Context, token, newPassword string) (*taskmate.Response, error)
}

type service struct {
	gateway ResetGateway
}

func newService(gateway ResetGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) sendOTP(ctx context.Context, email string) error {
	resp, err := s.gateway.SendOTP(ctx, strings.TrimSpace(email))
	if err != nil {
		return networkError(err)
	}
	if resp == nil || !resp.OK {
		return apperrors.Rejected("auth.forgot.send_failed", resp.Message(""))
	}
	return nil
}

// verifyOTP returns the reset token. A reply is accepted when it is 2xx or
// carries a token regardless of status.
func (s service) verifyOTP(ctx context.Context, email, otp string) (string, error) {
	resp, err := s.gateway.VerifyOTP(ctx, strings.TrimSpace(email), strings.TrimSpace(otp))
	if err != nil {
		return "", networkError(err)
	}
	token := taskmate.ResetToken(resp)
	if (resp == nil || !resp.OK) && token == "" {
		return "", apperrors.Rejected("auth.forgot.invalid_otp", resp.Message(""))
	}
	return token, nil
}

func (s service) setNewPassword(ctx context.Context, token, password string) error {
	resp, err := s.gateway.SetNewPassword(ctx, strings.TrimSpace(token), password)
	if err != nil {
		return networkError(err)
	}
	if resp == nil || !resp.OK {
		return apperrors.Rejected("auth.forgot.reset_failed", resp.Message(""))
	}
	return nil
}

func networkError(err error) error {
	return apperrors.Wrap(apperrors.KindUnavailable, "core.error.network", err)
}

type unavailableGateway struct{}

var errUnavailable = apperrors.E(apperrors.KindUnavailable, "password reset backend is not configured")

func (unavailableGateway) SendOTP(context.Context, string) (*taskmate.Response, error) {
	return nil, errUnavailable
}

func (unavailableGateway) VerifyOTP(context.Context, string, string) (*taskmate.Response, error) {
	return nil, errUnavailable
}

func (unavailableGateway) SetNewPassword(context.Context, string, string) (*taskmate.Response, error) {
	return nil, errUnavailable
}
