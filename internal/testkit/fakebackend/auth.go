package fakebackend

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/taskmate/taskmate-web/internal/taskmate"
	"golang.org/x/crypto/bcrypt"
)

type sessionClaims struct {
	Email string `json:"email"`
	// Generation must match the account's current generation.
	Generation int `json:"gen"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(user taskmate.User, generation int) (string, error) {
	now := s.cfg.Now()
	claims := sessionClaims{
		Email:      user.Email,
		Generation: generation,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			Issuer:    "taskmate-fakebackend",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}

func (s *Server) parseToken(raw string) (sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.cfg.Now),
	)
	if err != nil {
		return sessionClaims{}, err
	}
	if !token.Valid || claims.Subject == "" {
		return sessionClaims{}, jwt.ErrTokenInvalidClaims
	}
	return *claims, nil
}

// requireAuth resolves the token cookie into the caller's user id.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(TokenCookie)
		if err != nil || strings.TrimSpace(raw) == "" {
			fail(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		claims, err := s.parseToken(raw)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "Token has expired"
			}
			fail(c, http.StatusUnauthorized, message)
			c.Abort()
			return
		}
		s.mu.Lock()
		acct := s.byID[claims.Subject]
		current := acct != nil && acct.generation == claims.Generation
		s.mu.Unlock()
		if !current {
			fail(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Set(userIDContextKey, claims.Subject)
		c.Next()
	}
}

func callerID(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}

func (s *Server) signup(c *gin.Context) {
	var body struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		Designation string `json:"designation"`
		Role        string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Email) == "" || body.Password == "" {
		fail(c, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	s.mu.Lock()
	user, err := s.createAccountLocked(body.Name, body.Email, body.Password, body.Designation, body.Role)
	s.mu.Unlock()
	if errors.Is(err, ErrUserExists) {
		fail(c, http.StatusConflict, "User already exists")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}
	reply(c, http.StatusCreated, statusSuccess, "User registered successfully", user)
}

func (s *Server) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	s.mu.Lock()
	acct, exists := s.accounts[normalizeEmail(body.Email)]
	var user taskmate.User
	var hash []byte
	var generation int
	if exists {
		user, hash, generation = acct.user, acct.passwordHash, acct.generation
	}
	s.mu.Unlock()
	if !exists || bcrypt.CompareHashAndPassword(hash, []byte(body.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token, err := s.issueToken(user, generation)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, token, int(s.cfg.TokenTTL.Seconds()), "/", "", false, true)
	ok(c, "Login successful", user)
}

func (s *Server) logout(c *gin.Context) {
	c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
	ok(c, "Logged out", nil)
}

func (s *Server) resetPassword(c *gin.Context) {
	var body struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.NewPassword == "" {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.byID[callerID(c)]
	if acct == nil {
		fail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(body.OldPassword)) != nil {
		fail(c, http.StatusBadRequest, "Old password is incorrect")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), passwordHashCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update password")
		return
	}
	acct.passwordHash = hash
	ok(c, "Password updated successfully", nil)
}

func (s *Server) setNewPassword(c *gin.Context) {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Token == "" || body.NewPassword == "" {
		fail(c, http.StatusBadRequest, "Token and new password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	grant, exists := s.resets[body.Token]
	if !exists || !s.cfg.Now().Before(grant.expiresAt) {
		delete(s.resets, body.Token)
		fail(c, http.StatusBadRequest, "Reset token is invalid or expired")
		return
	}
	acct := s.accounts[grant.email]
	if acct == nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), passwordHashCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update password")
		return
	}
	acct.passwordHash = hash
	delete(s.resets, body.Token)
	ok(c, "Password reset successfully", nil)
}
