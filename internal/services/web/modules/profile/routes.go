package profile

import (
	"net/http"

	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppProfile, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProfilePrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.ProfilePrefix+"{$}", h.handleUpdate)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProfileAvatar, h.handleAvatar)
	mux.HandleFunc(http.MethodPost+" "+routepath.ProfileAvatar, h.handleAvatarUpload)
	mux.HandleFunc(http.MethodPost+" "+routepath.ProfilePassword, h.handlePassword)
	mux.HandleFunc(routepath.ProfilePrefix+"{rest...}", h.WriteNotFound)
}
