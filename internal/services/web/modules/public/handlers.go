package public

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/taskmate/taskmate-web/internal/platform/logging"
	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/cookies"
	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	flashnotice "github.com/taskmate/taskmate-web/internal/services/web/platform/flash"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/forms"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	webi18n "github.com/taskmate/taskmate-web/internal/services/web/platform/i18n"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/pagerender"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/publichandler"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/ratelimit"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/theme"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	"github.com/taskmate/taskmate-web/internal/services/web/session"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	webtemplates "github.com/taskmate/taskmate-web/internal/services/web/templates"
	"go.uber.org/zap"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type signupForm struct {
	Name        string `form:"name" validate:"required,max=80"`
	Email       string `form:"email" validate:"required,email"`
	Password    string `form:"password" validate:"required,password"`
	Designation string `form:"designation" validate:"max=80"`
}

type handlers struct {
	publichandler.Base
	service service
	limiter *ratelimit.Limiter
}

func newHandlers(s service, deps module.Dependencies, limiter *ratelimit.Limiter) handlers {
	return handlers{Base: publichandler.NewBase(deps), service: s, limiter: limiter}
}

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	h.WritePublicPage(w, r, pagerender.Page{
		Title:     webtemplates.T(loc, "landing.title"),
		Fragment:  webtemplates.LandingPage(loc, landingView(h.IsViewerSignedIn(r))),
		Localizer: loc,
		Lang:      lang,
	})
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if h.redirectSignedIn(w, r) {
		return
	}
	h.writeLogin(w, r, webtemplates.LoginView{}, http.StatusOK)
}

func (h handlers) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	form := loginForm{Email: forms.Value(r, "email"), Password: forms.Secret(r, "password")}
	view := webtemplates.LoginView{Email: form.Email}
	if !h.limiter.AllowRequest(r) {
		view.Error = h.localize(w, r, "core.error.rate_limited")
		h.writeLogin(w, r, view, http.StatusTooManyRequests)
		return
	}
	if errs := forms.Validate(form); errs != nil {
		view.FieldErrors = webtemplates.FieldErrors(errs)
		h.writeLogin(w, r, view, http.StatusUnprocessableEntity)
		return
	}
	created, err := h.service.login(r.Context(), form.Email, form.Password)
	if err != nil {
		loc, _ := h.PageLocalizer(w, r)
		view.Error = webi18n.LocalizeError(loc, err, "auth.login.failed")
		h.writeLogin(w, r, view, formStatus(err))
		return
	}
	h.Dependencies().Cookies.WriteSession(w, r, created.ID, created.ExpiresAt)
	logging.FromContext(r.Context()).Info("session opened", zap.String("user_id", created.User.ID))
	httpx.WriteRedirect(w, r, routepath.AppDashboard)
}

func (h handlers) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	if h.redirectSignedIn(w, r) {
		return
	}
	h.writeSignup(w, r, webtemplates.SignupView{}, http.StatusOK)
}

func (h handlers) handleSignupSubmit(w http.ResponseWriter, r *http.Request) {
	form := signupForm{
		Name:        forms.Value(r, "name"),
		Email:       forms.Value(r, "email"),
		Password:    forms.Secret(r, "password"),
		Designation: forms.Value(r, "designation"),
	}
	view := webtemplates.SignupView{Name: form.Name, Email: form.Email, Designation: form.Designation}
	if !h.limiter.AllowRequest(r) {
		view.Error = h.localize(w, r, "core.error.rate_limited")
		h.writeSignup(w, r, view, http.StatusTooManyRequests)
		return
	}
	if errs := forms.Validate(form); errs != nil {
		view.FieldErrors = webtemplates.FieldErrors(errs)
		h.writeSignup(w, r, view, http.StatusUnprocessableEntity)
		return
	}
	if err := h.service.signup(r.Context(), form); err != nil {
		loc, _ := h.PageLocalizer(w, r)
		view.Error = webi18n.LocalizeError(loc, err, "auth.signup.failed")
		h.writeSignup(w, r, view, formStatus(err))
		return
	}
	h.RedirectWithNotice(w, r, routepath.Login, flashnotice.Success("auth.signup.success"))
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	deps := h.Dependencies()
	sessionID, hasSession := cookies.ReadSession(r)
	if hasSession && !deps.Cookies.Policy.SameOrigin(r) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	creds := session.Credentials(h.requestSession(r))
	if err := h.service.logout(r.Context(), sessionID, creds); err != nil {
		logging.FromContext(r.Context()).Warn("destroy session", zap.Error(err))
	}
	deps.Cookies.ClearSession(w, r)
	h.RedirectWithNotice(w, r, routepath.Root, flashnotice.Success("auth.logout.success"))
}

func (h handlers) handleTheme(w http.ResponseWriter, r *http.Request) {
	theme.Toggle(w, r, h.Dependencies().Cookies)
	httpx.WriteRedirect(w, r, h.returnPath(r))
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h handlers) handleAppRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.AppDashboard, http.StatusFound)
}

func (h handlers) redirectSignedIn(w http.ResponseWriter, r *http.Request) bool {
	if !h.IsViewerSignedIn(r) {
		return false
	}
	http.Redirect(w, r, routepath.AppDashboard, http.StatusFound)
	return true
}

func (h handlers) writeLogin(w http.ResponseWriter, r *http.Request, view webtemplates.LoginView, status int) {
	h.writeForm(w, r, "auth.login.title", status, func(loc webi18n.Localizer) templ.Component {
		return webtemplates.LoginPage(loc, view)
	})
}

func (h handlers) writeSignup(w http.ResponseWriter, r *http.Request, view webtemplates.SignupView, status int) {
	h.writeForm(w, r, "auth.signup.title", status, func(loc webi18n.Localizer) templ.Component {
		return webtemplates.SignupPage(loc, view)
	})
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, titleKey string, status int, fragment func(webi18n.Localizer) templ.Component) {
	loc, lang := h.PageLocalizer(w, r)
	h.WritePublicPage(w, r, pagerender.Page{
		Title:      webtemplates.T(loc, titleKey),
		StatusCode: status,
		Fragment:   fragment(loc),
		Localizer:  loc,
		Lang:       lang,
	})
}

func (h handlers) localize(w http.ResponseWriter, r *http.Request, key string) string {
	loc, _ := h.PageLocalizer(w, r)
	return webtemplates.T(loc, key)
}

func (h handlers) requestSession(r *http.Request) webstorage.Session {
	resolve := h.Dependencies().ResolveSession
	if resolve == nil {
		return webstorage.Session{}
	}
	s, _ := resolve(r)
	return s
}

// returnPath is the same-origin Referer path, or the root.
func (h handlers) returnPath(r *http.Request) string {
	referer := strings.TrimSpace(r.Header.Get("Referer"))
	if referer == "" || !h.Dependencies().Cookies.Policy.SameOrigin(r) {
		return routepath.Root
	}
	parsed, err := url.Parse(referer)
	if err != nil || !strings.EqualFold(parsed.Host, r.Host) {
		return routepath.Root
	}
	path := parsed.RequestURI()
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return routepath.Root
	}
	return path
}

// formStatus keeps rejected submissions on a client-error status.
func formStatus(err error) int {
	if _, ok := apperrors.PublicMessage(err); ok {
		return http.StatusUnprocessableEntity
	}
	return apperrors.HTTPStatus(err)
}
