package dashboard

import (
	"net/http"

	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
)

// registerRoutes serves the overview at both /app/dashboard and
// /app/dashboard/, plus the cache refresh action. Deeper paths are 404.
func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	index := http.HandlerFunc(h.handleIndex)
	mux.Handle("GET "+routepath.AppDashboard, index)
	mux.Handle("GET "+routepath.DashboardPrefix+"{$}", index)
	mux.HandleFunc("POST "+routepath.DashboardRefresh, h.handleRefresh)
	mux.HandleFunc("GET "+routepath.DashboardPrefix+"{rest...}", h.WriteNotFound)
}
