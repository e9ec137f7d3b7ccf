package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "skycast.app/errors"
	"skycast.app/models"
)

func (s *Server) getProfile(c *gin.Context) {
	s.respondWithProfile(c, http.StatusOK, s.currentUserID(c))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	profile, err := s.userService.UpdateProfile(s.currentUserID(c), &req)
	if err != nil {
		slog.Error("Profile update error", "error", err, "userID", s.currentUserID(c))
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) changePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	if err := s.userService.ChangePassword(s.currentUserID(c), &req); err != nil {
		slog.Error("Password change error", "error", err, "userID", s.currentUserID(c))
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (s *Server) uploadProfilePicture(c *gin.Context) {
	fileHeader, err := c.FormFile("picture")
	if err != nil {
		s.handleError(c, apperrors.NewValidationError("picture file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.handleError(c, apperrors.NewValidationError("picture file cannot be read"))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	profile, err := s.userService.UpdatePicture(c.Request.Context(), s.currentUserID(c), file, fileHeader.Size, contentType)
	if err != nil {
		slog.Error("Profile picture upload error", "error", err, "userID", s.currentUserID(c))
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) deleteAccount(c *gin.Context) {
	if err := s.userService.DeleteAccount(c.Request.Context(), s.currentUserID(c)); err != nil {
		slog.Error("Account deletion error", "error", err, "userID", s.currentUserID(c))
		s.handleError(c, err)
		return
	}

	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

func (s *Server) listFavorites(c *gin.Context) {
	favorites, err := s.userService.ListFavorites(s.currentUserID(c))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (s *Server) addFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("city is required"))
		return
	}

	favorites, err := s.userService.AddFavorite(s.currentUserID(c), req.City)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (s *Server) removeFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("city is required"))
		return
	}

	favorites, err := s.userService.RemoveFavorite(s.currentUserID(c), req.City)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (s *Server) clearFavorites(c *gin.Context) {
	if err := s.userService.ClearFavorites(s.currentUserID(c)); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": []string{}})
}
