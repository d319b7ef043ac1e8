package teams

import (
	"net/http"

	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppTeams, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.TeamsPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.TeamsCreate, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.TeamEditPattern, h.handleEditPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.TeamEditPattern, h.handleUpdate)
	mux.HandleFunc(http.MethodPost+" "+routepath.TeamDeletePattern, h.handleDelete)
	mux.HandleFunc(routepath.TeamsPrefix+"{rest...}", h.WriteNotFound)
}
