package service

import (
	"context"
	"io"
	"time"

	"skycast.app/models"
)

// WeatherServiceInterface defines the interface for weather operations
type WeatherServiceInterface interface {
	GetBundle(ctx context.Context, lat, lon float64, loc *time.Location) (*models.WeatherBundle, error)
	GetBundleByCity(ctx context.Context, city string, loc *time.Location) (*models.WeatherBundle, error)
	SearchCities(ctx context.Context, query string) ([]models.CityResult, error)
	GetCacheMetrics() map[string]interface{}
}

// AuthServiceInterface defines the interface for account and session operations
type AuthServiceInterface interface {
	Register(req *models.RegisterRequest) (*models.User, string, error)
	Login(req *models.LoginRequest) (*models.User, string, error)
	GoogleLogin(ctx context.Context, req *models.GoogleLoginRequest) (*models.User, string, error)
	ParseToken(tokenStr string) (uint, error)
	ForgotPassword(email string) error
	ResetPassword(req *models.ResetPasswordRequest) error
}

// UserServiceInterface defines the interface for profile and favorites operations
type UserServiceInterface interface {
	GetProfile(userID uint) (*models.UserProfile, error)
	UpdateProfile(userID uint, req *models.UpdateProfileRequest) (*models.UserProfile, error)
	ChangePassword(userID uint, req *models.ChangePasswordRequest) error
	UpdatePicture(ctx context.Context, userID uint, data io.Reader, size int64, contentType string) (*models.UserProfile, error)
	DeleteAccount(ctx context.Context, userID uint) error
	ListFavorites(userID uint) ([]string, error)
	AddFavorite(userID uint, city string) ([]string, error)
	RemoveFavorite(userID uint, city string) ([]string, error)
	ClearFavorites(userID uint) error
}

// EmailServiceInterface defines the interface for email operations
type EmailServiceInterface interface {
	SendPasswordResetEmail(email, name, otp string) error
	SendWelcomeEmail(email, name string) error
}

// UserRepositoryInterface defines the interface for user data operations
type UserRepositoryInterface interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(user *models.User) error
	ListFavorites(userID uint) ([]string, error)
	AddFavorite(userID uint, city string) error
	RemoveFavorite(userID uint, city string) error
	ClearFavorites(userID uint) error
}

// PasswordResetRepositoryInterface defines the interface for reset-code operations
type PasswordResetRepositoryInterface interface {
	Create(userID uint, otpHash string, expiresIn time.Duration) (*models.PasswordReset, error)
	FindActiveByUser(userID uint) (*models.PasswordReset, error)
	DeleteForUser(userID uint) error
	DeleteExpired() error
}

// GoogleVerifierInterface validates a Google ID token and returns its claims
type GoogleVerifierInterface interface {
	Verify(ctx context.Context, token string) (*GoogleClaims, error)
}

// AvatarStoreInterface stores profile pictures
type AvatarStoreInterface interface {
	Upload(ctx context.Context, userID uint, data io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectURL string) error
}

// Ensure implementations satisfy interfaces
var _ WeatherServiceInterface = (*WeatherService)(nil)
var _ AuthServiceInterface = (*AuthService)(nil)
var _ UserServiceInterface = (*UserService)(nil)
var _ EmailServiceInterface = (*EmailService)(nil)
