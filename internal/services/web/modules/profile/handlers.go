package profile

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	flashnotice "github.com/taskmate/taskmate-web/internal/services/web/platform/flash"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/forms"
	webi18n "github.com/taskmate/taskmate-web/internal/services/web/platform/i18n"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/modulehandler"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/pagerender"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	webtemplates "github.com/taskmate/taskmate-web/internal/services/web/templates"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

// multipartOverhead leaves room for multipart headers around the file part.
const multipartOverhead = 64 << 10

type profileForm struct {
	Name        string `form:"name" validate:"required,max=80"`
	Designation string `form:"designation" validate:"max=80"`
	Bio         string `form:"bio" validate:"max=500"`
	Location    string `form:"location" validate:"max=120"`
	Website     string `form:"website" validate:"omitempty,url,max=200"`
}

type passwordForm struct {
	OldPassword string `form:"oldPassword" validate:"required"`
	NewPassword string `form:"newPassword" validate:"required,password"`
}

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	s, _ := h.RequestSession(r)
	user, err := h.service.loadUser(r.Context(), s)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeProfile(w, r, mapProfileView(user), http.StatusOK)
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s, _ := h.RequestSession(r)
	form := profileForm{
		Name:        forms.Value(r, "name"),
		Designation: forms.Value(r, "designation"),
		Bio:         forms.Value(r, "bio"),
		Location:    forms.Value(r, "location"),
		Website:     forms.Value(r, "website"),
	}
	view := mapProfileView(s.User)
	view.Form = webtemplates.ProfileForm(form)
	if errs := forms.Validate(form); errs != nil {
		view.FieldErrors = webtemplates.FieldErrors(errs)
		h.writeProfile(w, r, view, http.StatusUnprocessableEntity)
		return
	}
	_, err := h.service.updateProfile(r.Context(), s, taskmate.ProfileInput{
		Name:        form.Name,
		Designation: form.Designation,
		Bio:         form.Bio,
		Location:    form.Location,
		Website:     form.Website,
		Avatar:      s.User.Avatar,
	})
	if err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		view.Error = webi18n.LocalizeError(loc, err, "app.profile.update_failed")
		h.writeProfile(w, r, view, formStatus(err))
		return
	}
	h.RedirectWithNotice(w, r, routepath.ProfilePrefix, flashnotice.Success("app.profile.updated"))
}

func (h handlers) handleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	s, _ := h.RequestSession(r)
	data, err := readAvatar(w, r)
	if err == nil {
		err = h.service.uploadAvatar(r.Context(), s, data)
	}
	if err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		view := mapProfileView(s.User)
		view.AvatarError = webi18n.LocalizeError(loc, err, "app.profile.update_failed")
		h.writeProfile(w, r, view, formStatus(err))
		return
	}
	h.RedirectWithNotice(w, r, routepath.ProfilePrefix, flashnotice.Success("app.profile.avatar_updated"))
}

func (h handlers) handleAvatar(w http.ResponseWriter, r *http.Request) {
	s, _ := h.RequestSession(r)
	avatar, err := h.service.avatar(r.Context(), s.User.ID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", avatar.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(avatar.Data)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if !avatar.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", avatar.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(avatar.Data)
	}
}

func (h handlers) handlePassword(w http.ResponseWriter, r *http.Request) {
	s, _ := h.RequestSession(r)
	form := passwordForm{OldPassword: forms.Secret(r, "oldPassword"), NewPassword: forms.Secret(r, "newPassword")}
	view := mapProfileView(s.User)
	if errs := forms.Validate(form); errs != nil {
		view.PasswordFieldErrors = webtemplates.FieldErrors(errs)
		h.writeProfile(w, r, view, http.StatusUnprocessableEntity)
		return
	}
	if err := h.service.changePassword(r.Context(), s, form.OldPassword, form.NewPassword); err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		view.PasswordError = webi18n.LocalizeError(loc, err, "app.profile.password_failed")
		h.writeProfile(w, r, view, formStatus(err))
		return
	}
	h.RedirectWithNotice(w, r, routepath.ProfilePrefix, flashnotice.Success("app.profile.password_updated"))
}

// readAvatar reads the "avatar" file part, rejecting parts larger than
// MaxAvatarBytes.
func readAvatar(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxAvatarBytes+multipartOverhead)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		return nil, errInvalidAvatar
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, MaxAvatarBytes+1))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errInvalidAvatar
		}
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "app.profile.avatar_invalid", err)
	}
	return data, nil
}

func (h handlers) redirectExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if apperrors.KindOf(err) != apperrors.KindUnauthorized {
		return false
	}
	h.WriteError(w, r, err)
	return true
}

func (h handlers) writeProfile(w http.ResponseWriter, r *http.Request, view webtemplates.ProfileView, status int) {
	loc, lang := h.PageLocalizer(w, r)
	h.WritePage(w, r, pagerender.Page{
		Title:      webtemplates.T(loc, "app.profile.title"),
		StatusCode: status,
		Fragment:   webtemplates.ProfilePage(loc, view),
		Localizer:  loc,
		Lang:       lang,
	})
}

// formStatus maps a failed submission to the status of the re-rendered form.
func formStatus(err error) int {
	if _, ok := apperrors.PublicMessage(err); ok {
		return http.StatusUnprocessableEntity
	}
	if status := apperrors.HTTPStatus(err); status != http.StatusBadRequest {
		return status
	}
	return http.StatusUnprocessableEntity
}
