package dashboard

import (
	"net/http"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	flashnotice "github.com/taskmate/taskmate-web/internal/services/web/platform/flash"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/modulehandler"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/pagerender"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	webtemplates "github.com/taskmate/taskmate-web/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	s, _ := h.RequestSession(r)
	o, err := h.service.loadOverview(r.Context(), s.User, h.RequestCredentials(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, lang := h.PageLocalizer(w, r)
	h.WritePage(w, r, pagerender.Page{
		Title:     webtemplates.T(loc, "app.dashboard.title"),
		Fragment:  webtemplates.DashboardPage(loc, mapDashboardView(o)),
		Localizer: loc,
		Lang:      lang,
	})
}

func (h handlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s, _ := h.RequestSession(r)
	h.service.refresh(r.Context(), s.User.ID)
	h.RedirectWithNotice(w, r, routepath.AppDashboard, flashnotice.Success("app.dashboard.refreshed"))
}
