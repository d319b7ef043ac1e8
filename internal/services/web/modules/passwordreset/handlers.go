package passwordreset

import (
	"net/http"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/forms"
	webi18n "github.com/taskmate/taskmate-web/internal/services/web/platform/i18n"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/pagerender"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/publichandler"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/ratelimit"
	webtemplates "github.com/taskmate/taskmate-web/internal/services/web/templates"
)

type emailForm struct {
	Email string `form:"email" validate:"required,email"`
}

type otpForm struct {
	Email string `form:"email" validate:"required,email"`
	OTP   string `form:"otp" validate:"required,max=12"`
}

type resetForm struct {
	Token    string `form:"token" validate:"required"`
	Password string `form:"password" validate:"required,password"`
}

type handlers struct {
	publichandler.Base
	service service
	limiter *ratelimit.Limiter
}

func newHandlers(s service, deps module.Dependencies, limiter *ratelimit.Limiter) handlers {
	return handlers{Base: publichandler.NewBase(deps), service: s, limiter: limiter}
}

func (h handlers) handleEmailStep(w http.ResponseWriter, r *http.Request) {
	h.writeStep(w, r, webtemplates.ForgotView{Step: webtemplates.ForgotStepEmail}, http.StatusOK)
}

func (h handlers) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	form := emailForm{Email: forms.Value(r, "email")}
	view := webtemplates.ForgotView{Step: webtemplates.ForgotStepEmail, Email: form.Email}
	if !h.allow(w, r, &view) {
		return
	}
	if errs := forms.Validate(form); errs != nil {
		view.FieldErrors = webtemplates.FieldErrors(errs)
		h.writeStep(w, r, view, http.StatusUnprocessableEntity)
		return
	}
	if err := h.service.sendOTP(r.Context(), form.Email); err != nil {
		h.writeFailure(w, r, view, err, "auth.forgot.send_failed")
		return
	}
	view.Step = webtemplates.ForgotStepOTP
	h.writeStep(w, r, view, http.StatusOK)
}

func (h handlers) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	form := otpForm{Email: forms.Value(r, "email"), OTP: forms.Value(r, "otp")}
	view := webtemplates.ForgotView{Step: webtemplates.ForgotStepOTP, Email: form.Email}
	if !h.allow(w, r, &view) {
		return
	}
	if errs := forms.Validate(form); errs != nil {
		if _, ok := errs["email"]; ok {
			view.Step = webtemplates.ForgotStepEmail
		}
		view.FieldErrors = webtemplates.FieldErrors(errs)
		h.writeStep(w, r, view, http.StatusUnprocessableEntity)
		return
	}
	token, err := h.service.verifyOTP(r.Context(), form.Email, form.OTP)
	if err != nil {
		h.writeFailure(w, r, view, err, "auth.forgot.invalid_otp")
		return
	}
	view.Step = webtemplates.ForgotStepPassword
	view.Token = token
	h.writeStep(w, r, view, http.StatusOK)
}

func (h handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	form := resetForm{Token: forms.Value(r, "token"), Password: forms.Secret(r, "password")}
	view := webtemplates.ForgotView{Step: webtemplates.ForgotStepPassword, Token: form.Token}
	if errs := forms.Validate(form); errs != nil {
		if _, ok := errs["token"]; ok {
			view.Step = webtemplates.ForgotStepEmail
		}
		view.FieldErrors = webtemplates.FieldErrors(errs)
		h.writeStep(w, r, view, http.StatusUnprocessableEntity)
		return
	}
	if err := h.service.setNewPassword(r.Context(), form.Token, form.Password); err != nil {
		h.writeFailure(w, r, view, err, "auth.forgot.reset_failed")
		return
	}
	h.writeStep(w, r, webtemplates.ForgotView{Step: webtemplates.ForgotStepDone}, http.StatusOK)
}

// allow applies the OTP rate limit, rendering the current step on refusal.
func (h handlers) allow(w http.ResponseWriter, r *http.Request, view *webtemplates.ForgotView) bool {
	if h.limiter.AllowRequest(r) {
		return true
	}
	loc, _ := h.PageLocalizer(w, r)
	view.Error = webtemplates.T(loc, "core.error.rate_limited")
	h.writeStep(w, r, *view, http.StatusTooManyRequests)
	return false
}

func (h handlers) writeFailure(w http.ResponseWriter, r *http.Request, view webtemplates.ForgotView, err error, fallbackKey string) {
	loc, _ := h.PageLocalizer(w, r)
	view.Error = webi18n.LocalizeError(loc, err, fallbackKey)
	status := apperrors.HTTPStatus(err)
	if _, ok := apperrors.PublicMessage(err); ok || status == http.StatusBadRequest {
		status = http.StatusUnprocessableEntity
	}
	h.writeStep(w, r, view, status)
}

func (h handlers) writeStep(w http.ResponseWriter, r *http.Request, view webtemplates.ForgotView, status int) {
	loc, lang := h.PageLocalizer(w, r)
	h.WritePublicPage(w, r, pagerender.Page{
		Title:      webtemplates.T(loc, "auth.forgot.title"),
		StatusCode: status,
		Fragment:   webtemplates.ForgotPasswordPage(loc, view),
		Localizer:  loc,
		Lang:       lang,
	})
}
