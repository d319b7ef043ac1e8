package fakebackend

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

var otpValidateOpts = totp.ValidateOpts{
	Period:    defaultOTPPeriod,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// sendOTP issues a time-based code for a registered email. The code is
// logged instead of mailed.
func (s *Server) sendOTP(c *gin.Context) {
	var body struct {
		Email   string `json:"email"`
		OTPType string `json:"otpType"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Email) == "" {
		fail(c, http.StatusBadRequest, "Email is required")
		return
	}
	email := normalizeEmail(body.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; !exists {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "TaskMate",
		AccountName: email,
		Period:      defaultOTPPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to send OTP")
		return
	}
	code, err := totp.GenerateCodeCustom(key.Secret(), s.cfg.Now(), otpValidateOpts)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to send OTP")
		return
	}
	s.otps[email] = key.Secret()
	s.lastOTP[email] = code
	s.logger.Info("otp issued", zap.String("email", email), zap.String("otp_type", body.OTPType), zap.String("code", code))
	ok(c, "OTP sent to your email", nil)
}

// verifyOTP exchanges a valid code for a single-use reset token.
func (s *Server) verifyOTP(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.OTP) == "" {
		fail(c, http.StatusBadRequest, "Email and OTP are required")
		return
	}
	email := normalizeEmail(body.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	secret, exists := s.otps[email]
	if !exists {
		fail(c, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	valid, err := totp.ValidateCustom(strings.TrimSpace(body.OTP), secret, s.cfg.Now(), otpValidateOpts)
	if err != nil || !valid {
		fail(c, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	delete(s.otps, email)
	delete(s.lastOTP, email)
	token := uuid.NewString()
	s.resets[token] = resetGrant{email: email, expiresAt: s.cfg.Now().Add(defaultResetTTL)}
	ok(c, "OTP verified", gin.H{"token": token})
}
