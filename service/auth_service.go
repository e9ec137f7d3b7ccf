package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"skycast.app/config"
	"skycast.app/errors"
	"skycast.app/models"
)

const (
	passwordHashCost = 10
	otpLength        = 6
	otpTTL           = 10 * time.Minute
)

type sessionClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and password recovery
type AuthService struct {
	userRepo     UserRepositoryInterface
	resetRepo    PasswordResetRepositoryInterface
	emailService EmailServiceInterface
	verifier     GoogleVerifierInterface
	config       *config.AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepositoryInterface,
	resetRepo PasswordResetRepositoryInterface,
	emailService EmailServiceInterface,
	verifier GoogleVerifierInterface,
	config *config.AuthConfig,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		resetRepo:    resetRepo,
		emailService: emailService,
		verifier:     verifier,
		config:       config,
	}
}

// Register creates a new account and returns the user with a session token
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, string, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, "", errors.NewDatabaseError("failed to check existing user", err)
	}
	if existing != nil {
		return nil, "", errors.NewAlreadyExistsError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		return nil, "", errors.NewConfigurationError("failed to hash password", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", errors.NewDatabaseError("failed to create user", err)
	}

	if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
		slog.Warn("failed to send welcome email", "email", user.Email, "error", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks password credentials and returns the user with a session token
func (s *AuthService) Login(req *models.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		return nil, "", errors.NewDatabaseError("failed to find user", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, "", errors.NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", errors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GoogleLogin signs a user in with a Google ID token, creating the account on
// first sign-in and linking it to an existing password account by email
func (s *AuthService) GoogleLogin(ctx context.Context, req *models.GoogleLoginRequest) (*models.User, string, error) {
	claims, err := s.verifier.Verify(ctx, req.Token)
	if err != nil {
		return nil, "", errors.NewUnauthorizedError("invalid Google token")
	}
	if claims.Email == "" {
		return nil, "", errors.NewUnauthorizedError("Google token carries no email")
	}

	user, err := s.userRepo.FindByEmail(normalizeEmail(claims.Email))
	if err != nil {
		return nil, "", errors.NewDatabaseError("failed to find user", err)
	}

	if user == nil {
		user = &models.User{
			Name:     claims.Name,
			Email:    normalizeEmail(claims.Email),
			GoogleID: &claims.Subject,
			Picture:  claims.Picture,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, "", errors.NewDatabaseError("failed to create user", err)
		}
	} else {
		if s.linkGoogleIdentity(user, claims) {
			if err := s.userRepo.Update(user); err != nil {
				return nil, "", errors.NewDatabaseError("failed to link Google account", err)
			}
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// linkGoogleIdentity backfills Google fields on a password account and
// reports whether anything changed
func (s *AuthService) linkGoogleIdentity(user *models.User, claims *GoogleClaims) bool {
	changed := false
	if user.GoogleID == nil {
		sub := claims.Subject
		user.GoogleID = &sub
		changed = true
	}
	if user.Picture == "" && claims.Picture != "" {
		user.Picture = claims.Picture
		changed = true
	}
	return changed
}

// ParseToken validates a session token and returns the user ID it carries
func (s *AuthService) ParseToken(tokenStr string) (uint, error) {
	if tokenStr == "" {
		return 0, errors.NewUnauthorizedError("missing session token")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return 0, errors.NewUnauthorizedError("invalid session token")
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.UserID == 0 {
		return 0, errors.NewUnauthorizedError("invalid session token")
	}
	return claims.UserID, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", errors.NewConfigurationError("failed to sign session token", err)
	}
	return token, nil
}

// ForgotPassword starts the reset flow. Unknown addresses succeed silently
// so the endpoint does not reveal which emails hold accounts.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		return errors.NewDatabaseError("failed to find user", err)
	}
	if user == nil {
		slog.Debug("password reset requested for unknown email")
		return nil
	}

	otp, err := generateOTP()
	if err != nil {
		return errors.NewConfigurationError("failed to generate reset code", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(otp), passwordHashCost)
	if err != nil {
		return errors.NewConfigurationError("failed to hash reset code", err)
	}

	if _, err := s.resetRepo.Create(user.ID, string(hash), otpTTL); err != nil {
		return errors.NewDatabaseError("failed to store reset code", err)
	}

	return s.emailService.SendPasswordResetEmail(user.Email, user.Name, otp)
}

// ResetPassword completes the reset flow with the emailed one-time code
func (s *AuthService) ResetPassword(req *models.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		return errors.NewDatabaseError("failed to find user", err)
	}
	if user == nil {
		return errors.NewTokenError("invalid or expired reset code")
	}

	reset, err := s.resetRepo.FindActiveByUser(user.ID)
	if err != nil {
		return errors.NewDatabaseError("failed to find reset code", err)
	}
	if reset == nil {
		return errors.NewTokenError("invalid or expired reset code")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(reset.OTPHash), []byte(req.OTP)); err != nil {
		return errors.NewTokenError("invalid or expired reset code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), passwordHashCost)
	if err != nil {
		return errors.NewConfigurationError("failed to hash password", err)
	}

	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(user); err != nil {
		return errors.NewDatabaseError("failed to update password", err)
	}

	if err := s.resetRepo.DeleteForUser(user.ID); err != nil {
		slog.Warn("failed to remove used reset code", "userID", user.ID, "error", err)
	}
	return nil
}

func generateOTP() (string, error) {
	var sb strings.Builder
	for i := 0; i < otpLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
