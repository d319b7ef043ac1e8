package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/taskmate/taskmate-web/internal/platform/logging"
	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	websession "github.com/taskmate/taskmate-web/internal/services/web/session"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
	"go.uber.org/zap"
)

// MaxAvatarBytes bounds an uploaded avatar image.
const MaxAvatarBytes = 2 << 20

var avatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// errInvalidAvatar rejects uploads that are too large or not an image type
// the profile accepts.
var errInvalidAvatar = apperrors.EK(apperrors.KindInvalidInput, "app.profile.avatar_invalid", "invalid avatar upload")

// ProfileGateway is the slice of the backend client used by the profile page.
type ProfileGateway interface {
	GetProfile(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error)
	UpdateProfile(ctx context.Context, creds taskmate.Credentials, in taskmate.ProfileInput) (*taskmate.Response, error)
	ResetPassword(ctx context.Context, creds taskmate.Credentials, oldPassword, newPassword string) (*taskmate.Response, error)
}

// SessionUpdater refreshes the user snapshot of a browser session.
type SessionUpdater interface {
	UpdateUser(ctx context.Context, session webstorage.Session, user taskmate.User) (webstorage.Session, error)
}

type service struct {
	gateway  ProfileGateway
	sessions SessionUpdater
	avatars  webstorage.AvatarStore
	now      func() time.Time
}

func newService(gateway ProfileGateway, sessions SessionUpdater, avatars webstorage.AvatarStore, now func() time.Time) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if now == nil {
		now = time.Now
	}
	return service{gateway: gateway, sessions: sessions, avatars: avatars, now: now}
}

// loadUser fetches the current profile, falling back to the session snapshot
// when the backend cannot answer. An expired backend session is returned.
func (s service) loadUser(ctx context.Context, session webstorage.Session) (taskmate.User, error) {
	resp, err := s.gateway.GetProfile(ctx, websession.Credentials(session))
	if err != nil {
		logging.FromContext(ctx).Warn("load profile", zap.Error(err))
		return session.User, nil
	}
	if resp != nil && resp.Status == http.StatusUnauthorized {
		return taskmate.User{}, apperrors.E(apperrors.KindUnauthorized, "backend session expired")
	}
	user, ok := taskmate.ProfileUser(resp)
	if !ok {
		return session.User, nil
	}
	return user, nil
}

// updateProfile saves the editable fields and refreshes the session snapshot.
func (s service) updateProfile(ctx context.Context, session webstorage.Session, in taskmate.ProfileInput) (taskmate.User, error) {
	in = normalizeProfile(in)
	resp, err := s.gateway.UpdateProfile(ctx, websession.Credentials(session), in)
	if err := replyError(resp, err, "app.profile.update_failed"); err != nil {
		return taskmate.User{}, err
	}
	user, ok := taskmate.ProfileUser(resp)
	if !ok || strings.TrimSpace(user.ID) == "" {
		user = mergeProfile(session.User, in)
	}
	s.refreshSession(ctx, session, user)
	return user, nil
}

// uploadAvatar validates and stores an image, then points the backend profile
// at the served avatar route.
func (s service) uploadAvatar(ctx context.Context, session webstorage.Session, data []byte) error {
	if s.avatars == nil {
		return apperrors.E(apperrors.KindUnavailable, "avatar storage is not configured")
	}
	contentType, err := sniffAvatar(data)
	if err != nil {
		return err
	}
	if err := s.avatars.PutAvatar(ctx, webstorage.Avatar{
		UserID:      session.User.ID,
		ContentType: contentType,
		Data:        data,
		UpdatedAt:   s.now().UTC(),
	}); err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "app.profile.update_failed", err)
	}
	in := profileInput(session.User)
	in.Avatar = avatarURL(s.now())
	_, err = s.updateProfile(ctx, session, in)
	return err
}

// avatar returns the stored image of userID.
func (s service) avatar(ctx context.Context, userID string) (webstorage.Avatar, error) {
	if s.avatars == nil || strings.TrimSpace(userID) == "" {
		return webstorage.Avatar{}, apperrors.E(apperrors.KindNotFound, "avatar not found")
	}
	avatar, ok, err := s.avatars.GetAvatar(ctx, userID)
	if err != nil {
		return webstorage.Avatar{}, apperrors.Wrap(apperrors.KindUnavailable, "", err)
	}
	if !ok {
		return webstorage.Avatar{}, apperrors.E(apperrors.KindNotFound, "avatar not found")
	}
	return avatar, nil
}

func (s service) changePassword(ctx context.Context, session webstorage.Session, oldPassword, newPassword string) error {
	resp, err := s.gateway.ResetPassword(ctx, websession.Credentials(session), oldPassword, newPassword)
	return replyError(resp, err, "app.profile.password_failed")
}

func (s service) refreshSession(ctx context.Context, session webstorage.Session, user taskmate.User) {
	if s.sessions == nil || session.ID == "" {
		return
	}
	if _, err := s.sessions.UpdateUser(ctx, session, user); err != nil {
		logging.FromContext(ctx).Warn("refresh session user", zap.String("user_id", user.ID), zap.Error(err))
	}
}

func sniffAvatar(data []byte) (string, error) {
	if len(data) == 0 || len(data) > MaxAvatarBytes {
		return "", errInvalidAvatar
	}
	contentType := http.DetectContentType(data)
	if !avatarTypes[contentType] {
		return "", errInvalidAvatar
	}
	return contentType, nil
}

// avatarURL versions the avatar route so browsers drop stale copies.
func avatarURL(at time.Time) string {
	return routepath.ProfileAvatar + "?v=" + at.UTC().Format("20060102150405")
}

func replyError(resp *taskmate.Response, err error, failedKey string) error {
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "core.error.network", err)
	}
	if resp == nil {
		return apperrors.EK(apperrors.KindUnknown, failedKey, "empty backend reply")
	}
	if resp.Status == http.StatusUnauthorized {
		return apperrors.E(apperrors.KindUnauthorized, "backend session expired")
	}
	if !resp.OK {
		return apperrors.Rejected(failedKey, resp.Message(""))
	}
	return nil
}

func profileInput(user taskmate.User) taskmate.ProfileInput {
	return taskmate.ProfileInput{
		Name:        user.Name,
		Designation: user.Designation,
		Bio:         user.Bio,
		Location:    user.Location,
		Website:     user.Website,
		Avatar:      user.Avatar,
	}
}

func normalizeProfile(in taskmate.ProfileInput) taskmate.ProfileInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Designation = strings.TrimSpace(in.Designation)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Location = strings.TrimSpace(in.Location)
	in.Website = strings.TrimSpace(in.Website)
	in.Avatar = strings.TrimSpace(in.Avatar)
	return in
}

func mergeProfile(user taskmate.User, in taskmate.ProfileInput) taskmate.User {
	user.Name = in.Name
	user.Designation = in.Designation
	user.Bio = in.Bio
	user.Location = in.Location
	user.Website = in.Website
	user.Avatar = in.Avatar
	return user
}

type unavailableGateway struct{}

var errUnavailable = errors.New("profile backend is not configured")

func (unavailableGateway) GetProfile(context.Context, taskmate.Credentials) (*taskmate.Response, error) {
	return nil, errUnavailable
}

func (unavailableGateway) UpdateProfile(context.Context, taskmate.Credentials, taskmate.ProfileInput) (*taskmate.Response, error) {
	return nil, errUnavailable
}

func (unavailableGateway) ResetPassword(context.Context, taskmate.Credentials, string, string) (*taskmate.Response, error) {
	return nil, errUnavailable
}
