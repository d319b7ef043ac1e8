// Package fakebackend is an in-memory TaskMate REST backend for tests and
// local development.
//
// It honors the same routes, envelopes and cookie session as the real
// backend. State lives in process memory and is lost on restart.
package fakebackend

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskmate/taskmate-web/internal/taskmate"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// TokenCookie carries the signed session token.
	TokenCookie = "token"

	defaultTokenTTL   = 24 * time.Hour
	defaultResetTTL   = 10 * time.Minute
	defaultOTPPeriod  = 300
	defaultSecret     = "taskmate-fake-backend-secret"
	statusSuccess     = "success"
	statusProfileOK   = "Success"
	statusFailed      = "failed"
	userIDContextKey  = "user_id"
	passwordHashCost  = bcrypt.MinCost
	teamKeyRandLength = 8
)

// ErrUserExists is returned by SeedUser for a duplicate email.
var ErrUserExists = errors.New("fakebackend: user already exists")

// Config tunes the fake backend. Zero values use defaults.
type Config struct {
	// Secret signs session tokens.
	Secret   []byte
	TokenTTL time.Duration
	// AllowedOrigins lists CORS origins. Empty allows any origin.
	AllowedOrigins []string
	Logger         *zap.Logger
	Now            func() time.Time
}

type account struct {
	user         taskmate.User
	passwordHash []byte
	// generation invalidates every token issued before it changed.
	generation int
}

type resetGrant struct {
	email     string
	expiresAt time.Time
}

// Server holds the backend state.
//
// Safe for concurrent use.
type Server struct {
	cfg    Config
	logger *zap.Logger
	engine *gin.Engine

	mu       sync.Mutex
	accounts map[string]*account // by lower-cased email
	byID     map[string]*account
	teams    map[string]*taskmate.Team // by team key
	order    []string                  // team keys in creation order
	otps     map[string]string         // email -> TOTP secret
	lastOTP  map[string]string         // email -> last issued code
	resets   map[string]resetGrant     // reset token -> grant
}

// New builds a fake backend.
func New(cfg Config) *Server {
	if len(cfg.Secret) == 0 {
		cfg.Secret = []byte(defaultSecret)
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		accounts: make(map[string]*account),
		byID:     make(map[string]*account),
		teams:    make(map[string]*taskmate.Team),
		otps:     make(map[string]string),
		lastOTP:  make(map[string]string),
		resets:   make(map[string]resetGrant),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler serving the REST contract.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(s.logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}
	if len(s.cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = s.cfg.AllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	api := router.Group("/taskmate")
	auth := api.Group("/auth")
	auth.POST("/signup", s.signup)
	auth.POST("/login", s.login)
	auth.GET("/logout", s.logout)
	auth.PATCH("/set-new-password", s.setNewPassword)
	auth.POST("/resetpass", s.requireAuth(), s.resetPassword)

	otp := api.Group("/otp")
	otp.POST("/send-otp", s.sendOTP)
	otp.POST("/verify-otp", s.verifyOTP)

	team := api.Group("/team", s.requireAuth())
	team.POST("/createTeam", s.createTeam)
	team.POST("/deleteTeam", s.deleteTeam)
	team.PATCH("/updateTeam", s.updateTeam)
	team.POST("/searchTeam", s.searchTeam)
	team.GET("/listAdminTeams", s.listAdminTeams)
	team.GET("/listMemberTeams", s.listMemberTeams)

	user := api.Group("/user", s.requireAuth())
	user.GET("/profile", s.profile)
	user.PATCH("/updateProfile", s.updateProfile)

	router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "Route not found")
	})
	return router
}

// SeedUser registers an account directly.
func (s *Server) SeedUser(name, email, password, designation string) (taskmate.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAccountLocked(name, email, password, designation, taskmate.DefaultRole)
}

// LastOTP returns the most recent code issued to email.
func (s *Server) LastOTP(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.lastOTP[normalizeEmail(email)]
	return code, ok
}

// RevokeSessions invalidates every token issued to email so far.
func (s *Server) RevokeSessions(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, exists := s.accounts[normalizeEmail(email)]
	if !exists {
		return false
	}
	acct.generation++
	return true
}

// AddMember adds userID to the members of the team with teamKey.
func (s *Server) AddMember(teamKey, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[teamKey]
	if !ok || s.byID[userID] == nil {
		return false
	}
	team.Members = append(team.Members, rawString(userID))
	return true
}

func (s *Server) createAccountLocked(name, email, password, designation, role string) (taskmate.User, error) {
	email = normalizeEmail(email)
	if _, exists := s.accounts[email]; exists {
		return taskmate.User{}, ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return taskmate.User{}, err
	}
	if role == "" {
		role = taskmate.DefaultRole
	}
	acct := &account{
		user: taskmate.User{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(name),
			Email:       email,
			Designation: strings.TrimSpace(designation),
			Role:        role,
			CreatedAt:   s.cfg.Now().UTC().Format(time.RFC3339),
		},
		passwordHash: hash,
	}
	s.accounts[email] = acct
	s.byID[acct.user.ID] = acct
	return acct.user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func reply(c *gin.Context, status int, envelopeStatus, message string, data any) {
	c.JSON(status, gin.H{"status": envelopeStatus, "message": message, "data": data})
}

func ok(c *gin.Context, message string, data any) {
	reply(c, http.StatusOK, statusSuccess, message, data)
}

func fail(c *gin.Context, status int, message string) {
	reply(c, status, statusFailed, message, nil)
}
