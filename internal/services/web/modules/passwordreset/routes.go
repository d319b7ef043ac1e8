package passwordreset

import (
	"net/http"

	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.ForgotPasswordPrefix+"{$}", h.handleEmailStep)
	mux.HandleFunc(http.MethodPost+" "+routepath.ForgotPasswordOTP, h.handleSendOTP)
	mux.HandleFunc(http.MethodPost+" "+routepath.ForgotPasswordVerify, h.handleVerifyOTP)
	mux.HandleFunc(http.MethodPost+" "+routepath.ForgotPasswordReset, h.handleReset)
	mux.HandleFunc(routepath.ForgotPasswordPrefix+"{rest...}", h.WriteNotFound)
}
