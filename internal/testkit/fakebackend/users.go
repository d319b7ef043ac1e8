package fakebackend

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Profile replies use "Success" as the envelope status.
func (s *Server) profile(c *gin.Context) {
	s.mu.Lock()
	acct := s.byID[callerID(c)]
	s.mu.Unlock()
	if acct == nil {
		fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	reply(c, http.StatusOK, statusProfileOK, "Profile fetched", acct.user)
}

func (s *Server) updateProfile(c *gin.Context) {
	var body struct {
		Name        *string `json:"name"`
		Designation *string `json:"designation"`
		Bio         *string `json:"bio"`
		Location    *string `json:"location"`
		Website     *string `json:"website"`
		Avatar      *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		fail(c, http.StatusBadRequest, "Name cannot be empty")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.byID[callerID(c)]
	if acct == nil {
		fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	assign := func(target *string, value *string) {
		if value != nil {
			*target = strings.TrimSpace(*value)
		}
	}
	assign(&acct.user.Name, body.Name)
	assign(&acct.user.Designation, body.Designation)
	assign(&acct.user.Bio, body.Bio)
	assign(&acct.user.Location, body.Location)
	assign(&acct.user.Website, body.Website)
	assign(&acct.user.Avatar, body.Avatar)
	reply(c, http.StatusOK, statusProfileOK, "Profile updated", acct.user)
}

// requestLogger logs one line per request at a level chosen by status.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("body_size", c.Writer.Size()),
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("fakebackend request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("fakebackend request", fields...)
		default:
			logger.Debug("fakebackend request", fields...)
		}
	}
}
