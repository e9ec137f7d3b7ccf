package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "skycast.app/errors"
	"skycast.app/models"
)

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	user, token, err := s.authService.Register(&req)
	if err != nil {
		slog.Error("Registration error", "error", err)
		s.handleError(c, err)
		return
	}

	s.setSessionCookie(c, token)
	s.respondWithProfile(c, http.StatusCreated, user.ID)
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	user, token, err := s.authService.Login(&req)
	if err != nil {
		slog.Error("Login error", "error", err)
		s.handleError(c, err)
		return
	}

	s.setSessionCookie(c, token)
	s.respondWithProfile(c, http.StatusOK, user.ID)
}

func (s *Server) googleLogin(c *gin.Context) {
	var req models.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	user, token, err := s.authService.GoogleLogin(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Google login error", "error", err)
		s.handleError(c, err)
		return
	}

	s.setSessionCookie(c, token)
	s.respondWithProfile(c, http.StatusOK, user.ID)
}

func (s *Server) logout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) forgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	if err := s.authService.ForgotPassword(req.Email); err != nil {
		slog.Error("Forgot password error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent"})
}

func (s *Server) resetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	if err := s.authService.ResetPassword(&req); err != nil {
		slog.Error("Reset password error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (s *Server) respondWithProfile(c *gin.Context, status int, userID uint) {
	profile, err := s.userService.GetProfile(userID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(status, profile)
}
