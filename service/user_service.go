package service

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"skycast.app/errors"
	"skycast.app/models"
)

// maxAvatarSize caps profile picture uploads at 5 MiB.
const maxAvatarSize = 5 << 20

// UserService handles profile and favorites operations
type UserService struct {
	userRepo UserRepositoryInterface
	avatars  AvatarStoreInterface
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepositoryInterface, avatars AvatarStoreInterface) *UserService {
	return &UserService{
		userRepo: userRepo,
		avatars:  avatars,
	}
}

// GetProfile returns the account view for one user
func (s *UserService) GetProfile(userID uint) (*models.UserProfile, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(user)
}

// UpdateProfile changes the editable profile fields. The email stays fixed
// on accounts linked to Google, where it identifies the upstream identity.
func (s *UserService) UpdateProfile(userID uint, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}

	if email := normalizeEmail(req.Email); email != "" && email != user.Email {
		if user.GoogleID != nil {
			return nil, errors.NewValidationError("email cannot be changed on a Google-linked account")
		}
		existing, err := s.userRepo.FindByEmail(email)
		if err != nil {
			return nil, errors.NewDatabaseError("failed to check email availability", err)
		}
		if existing != nil {
			return nil, errors.NewAlreadyExistsError("email already registered")
		}
		user.Email = email
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.NewDatabaseError("failed to update profile", err)
	}
	return s.buildProfile(user)
}

// ChangePassword rotates the password after checking the current one
func (s *UserService) ChangePassword(userID uint, req *models.ChangePasswordRequest) error {
	user, err := s.findUser(userID)
	if err != nil {
		return err
	}

	if user.PasswordHash == "" {
		return errors.NewValidationError("password login is not enabled for this account")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return errors.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), passwordHashCost)
	if err != nil {
		return errors.NewConfigurationError("failed to hash password", err)
	}

	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(user); err != nil {
		return errors.NewDatabaseError("failed to update password", err)
	}
	return nil
}

// UpdatePicture uploads a new profile picture and retires the previous one
func (s *UserService) UpdatePicture(ctx context.Context, userID uint, data io.Reader, size int64, contentType string) (*models.UserProfile, error) {
	if size <= 0 {
		return nil, errors.NewValidationError("picture is empty")
	}
	if size > maxAvatarSize {
		return nil, errors.NewValidationError("picture exceeds the 5 MB limit")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.NewValidationError("picture must be an image")
	}

	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	url, err := s.avatars.Upload(ctx, userID, data, size, contentType)
	if err != nil {
		return nil, err
	}

	previous := user.Picture
	user.Picture = url
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.NewDatabaseError("failed to update profile", err)
	}

	if previous != "" {
		if err := s.avatars.Delete(ctx, previous); err != nil {
			slog.Warn("failed to remove previous profile picture", "userID", userID, "error", err)
		}
	}
	return s.buildProfile(user)
}

// DeleteAccount removes the user, their favorites and their stored picture
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := s.findUser(userID)
	if err != nil {
		return err
	}

	if user.Picture != "" {
		if err := s.avatars.Delete(ctx, user.Picture); err != nil {
			slog.Warn("failed to remove profile picture", "userID", userID, "error", err)
		}
	}

	if err := s.userRepo.Delete(user); err != nil {
		return errors.NewDatabaseError("failed to delete account", err)
	}
	return nil
}

// ListFavorites returns the user's saved cities in insertion order
func (s *UserService) ListFavorites(userID uint) ([]string, error) {
	favorites, err := s.userRepo.ListFavorites(userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list favorites", err)
	}
	return favorites, nil
}

// AddFavorite saves a city and returns the updated list. Adding a city that
// is already saved is a no-op.
func (s *UserService) AddFavorite(userID uint, city string) ([]string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	if err := s.userRepo.AddFavorite(userID, city); err != nil {
		return nil, errors.NewDatabaseError("failed to add favorite", err)
	}
	return s.ListFavorites(userID)
}

// RemoveFavorite drops a city and returns the updated list
func (s *UserService) RemoveFavorite(userID uint, city string) ([]string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	if err := s.userRepo.RemoveFavorite(userID, city); err != nil {
		return nil, errors.NewDatabaseError("failed to remove favorite", err)
	}
	return s.ListFavorites(userID)
}

// ClearFavorites drops every saved city for the user
func (s *UserService) ClearFavorites(userID uint) error {
	if err := s.userRepo.ClearFavorites(userID); err != nil {
		return errors.NewDatabaseError("failed to clear favorites", err)
	}
	return nil
}

func (s *UserService) findUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to find user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return user, nil
}

func (s *UserService) buildProfile(user *models.User) (*models.UserProfile, error) {
	favorites, err := s.ListFavorites(user.ID)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Picture:   user.Picture,
		Favorites: favorites,
	}
	if user.GoogleID != nil {
		profile.GoogleID = *user.GoogleID
	}
	return profile, nil
}
