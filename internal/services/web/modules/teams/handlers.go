package teams

import (
	"net/http"
	"strings"

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

type teamForm struct {
	Name        string `form:"teamName" validate:"required,max=80"`
	Description string `form:"teamDescription" validate:"max=500"`
}

func readTeamForm(r *http.Request) teamForm {
	return teamForm{Name: forms.Value(r, "teamName"), Description: forms.Value(r, "teamDescription")}
}

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.writeIndex(w, r, r.URL.Query().Get(routepath.TeamsSearchParam), nil, http.StatusOK)
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	form := readTeamForm(r)
	if errs := forms.Validate(form); errs != nil {
		h.writeIndex(w, r, "", func(view *webtemplates.TeamsView, _ webi18n.Localizer) {
			view.CreateName, view.CreateDescription = form.Name, form.Description
			view.FieldErrors = webtemplates.FieldErrors(errs)
		}, http.StatusUnprocessableEntity)
		return
	}
	userID, creds := h.viewer(r)
	if err := h.service.createTeam(r.Context(), userID, creds, form.Name, form.Description); err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnauthorized {
			h.WriteError(w, r, err)
			return
		}
		h.writeIndex(w, r, "", func(view *webtemplates.TeamsView, loc webi18n.Localizer) {
			view.CreateName, view.CreateDescription = form.Name, form.Description
			view.CreateError = webi18n.LocalizeError(loc, err, "app.teams.create_failed")
		}, formStatus(err))
		return
	}
	h.RedirectWithNotice(w, r, routepath.TeamsPrefix, flashnotice.Success("app.teams.created"))
}

func (h handlers) handleEditPage(w http.ResponseWriter, r *http.Request) {
	team, ok := h.requestTeam(w, r)
	if !ok {
		return
	}
	h.writeEdit(w, r, webtemplates.TeamEditView{
		Team:        mapTeamCard(team, true),
		Name:        team.TeamName,
		Description: team.TeamDescription,
	}, http.StatusOK)
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	team, ok := h.requestTeam(w, r)
	if !ok {
		return
	}
	form := readTeamForm(r)
	view := webtemplates.TeamEditView{Team: mapTeamCard(team, true), Name: form.Name, Description: form.Description}
	if errs := forms.Validate(form); errs != nil {
		view.FieldErrors = webtemplates.FieldErrors(errs)
		h.writeEdit(w, r, view, http.StatusUnprocessableEntity)
		return
	}
	userID, creds := h.viewer(r)
	err := h.service.updateTeam(r.Context(), userID, creds, taskmate.TeamInput{
		TeamKey:         team.TeamKey,
		TeamName:        form.Name,
		TeamDescription: form.Description,
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnauthorized {
			h.WriteError(w, r, err)
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		view.Error = webi18n.LocalizeError(loc, err, "app.teams.update_failed")
		h.writeEdit(w, r, view, formStatus(err))
		return
	}
	h.RedirectWithNotice(w, r, routepath.TeamsPrefix, flashnotice.Success("app.teams.updated"))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	teamKey := strings.TrimSpace(r.PathValue("teamKey"))
	userID, creds := h.viewer(r)
	if err := h.service.deleteTeam(r.Context(), userID, creds, teamKey); err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnauthorized {
			h.WriteError(w, r, err)
			return
		}
		notice := flashnotice.Error("app.teams.delete_failed", "")
		if text, ok := apperrors.PublicMessage(err); ok {
			notice.Text = text
		} else if apperrors.KindOf(err) == apperrors.KindUnavailable {
			notice.Key = "core.error.network"
		}
		h.RedirectWithNotice(w, r, routepath.TeamsPrefix, notice)
		return
	}
	h.RedirectWithNotice(w, r, routepath.TeamsPrefix, flashnotice.Success("app.teams.deleted"))
}

// requestTeam resolves the administered team named by the path, writing the
// error response when it cannot.
func (h handlers) requestTeam(w http.ResponseWriter, r *http.Request) (taskmate.Team, bool) {
	userID, creds := h.viewer(r)
	team, err := h.service.adminTeam(r.Context(), userID, creds, strings.TrimSpace(r.PathValue("teamKey")))
	if err != nil {
		h.WriteError(w, r, err)
		return taskmate.Team{}, false
	}
	return team, true
}

func (h handlers) viewer(r *http.Request) (string, taskmate.Credentials) {
	s, _ := h.RequestSession(r)
	return s.User.ID, h.RequestCredentials(r)
}

func (h handlers) writeIndex(w http.ResponseWriter, r *http.Request, searchKey string, decorate func(*webtemplates.TeamsView, webi18n.Localizer), status int) {
	userID, creds := h.viewer(r)
	l, err := h.service.loadListing(r.Context(), userID, creds)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	result := h.service.search(r.Context(), creds, searchKey)
	loc, lang := h.PageLocalizer(w, r)
	view := mapTeamsView(l, result, loc)
	if decorate != nil {
		decorate(&view, loc)
	}
	h.WritePage(w, r, pagerender.Page{
		Title:      webtemplates.T(loc, "app.teams.title"),
		StatusCode: status,
		Fragment:   webtemplates.TeamsPage(loc, view),
		Localizer:  loc,
		Lang:       lang,
	})
}

func (h handlers) writeEdit(w http.ResponseWriter, r *http.Request, view webtemplates.TeamEditView, status int) {
	loc, lang := h.PageLocalizer(w, r)
	h.WritePage(w, r, pagerender.Page{
		Title:      webtemplates.T(loc, "app.teams.edit_heading"),
		StatusCode: status,
		Fragment:   webtemplates.TeamEditPage(loc, view),
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
