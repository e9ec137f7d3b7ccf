// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"skycast.app/models"
)

// UserRepository handles data access operations for user accounts
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository for user data
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail retrieves a user by email, or nil when no account exists
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding user by email: %v\n", result.Error)
		return nil, result.Error
	}

	return &user, nil
}

// FindByID retrieves a user by their ID
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding user by ID: %v\n", result.Error)
		return nil, result.Error
	}

	return &user, nil
}

// Create persists a new user to the database
func (r *UserRepository) Create(user *models.User) error {
	result := r.db.Create(user)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating user: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// Update modifies an existing user
func (r *UserRepository) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when updating user: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// Delete removes a user and their favorites from the database
func (r *UserRepository) Delete(user *models.User) error {
	if err := r.db.Where("user_id = ?", user.ID).Delete(&models.FavoriteCity{}).Error; err != nil {
		log.Printf("[ERROR] Database error when deleting user's favorites: %v\n", err)
		return err
	}

	result := r.db.Delete(user)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting user: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// ListFavorites returns a user's favorite cities in insertion order
func (r *UserRepository) ListFavorites(userID uint) ([]string, error) {
	var favorites []models.FavoriteCity
	result := r.db.Where("user_id = ?", userID).Order("id").Find(&favorites)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing favorites: %v\n", result.Error)
		return nil, result.Error
	}

	cities := make([]string, 0, len(favorites))
	for _, f := range favorites {
		cities = append(cities, f.City)
	}
	return cities, nil
}

// AddFavorite stores a favorite city for a user. Adding a city that is
// already stored is a no-op.
func (r *UserRepository) AddFavorite(userID uint, city string) error {
	favorite := &models.FavoriteCity{UserID: userID, City: city}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(favorite)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when adding favorite: %v\n", result.Error)
		return result.Error
	}
	return nil
}

// RemoveFavorite deletes one favorite city for a user
func (r *UserRepository) RemoveFavorite(userID uint, city string) error {
	result := r.db.Where("user_id = ? AND city = ?", userID, city).Delete(&models.FavoriteCity{})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when removing favorite: %v\n", result.Error)
		return result.Error
	}
	return nil
}

// ClearFavorites deletes all favorite cities for a user
func (r *UserRepository) ClearFavorites(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.FavoriteCity{})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when clearing favorites: %v\n", result.Error)
		return result.Error
	}
	return nil
}

// PasswordResetRepository handles data access operations for password-reset codes
type PasswordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new repository for password-reset codes
func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Create stores a new reset code for a user, replacing any previous one
func (r *PasswordResetRepository) Create(userID uint, otpHash string, expiresIn time.Duration) (*models.PasswordReset, error) {
	if err := r.DeleteForUser(userID); err != nil {
		return nil, err
	}

	reset := &models.PasswordReset{
		UserID:    userID,
		OTPHash:   otpHash,
		ExpiresAt: time.Now().Add(expiresIn),
	}

	result := r.db.Create(reset)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating password reset: %v\n", result.Error)
		return nil, result.Error
	}

	return reset, nil
}

// FindActiveByUser retrieves the unexpired reset code for a user, or nil
func (r *PasswordResetRepository) FindActiveByUser(userID uint) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	result := r.db.Where("user_id = ? AND expires_at > ?", userID, time.Now()).First(&reset)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding password reset: %v\n", result.Error)
		return nil, result.Error
	}

	return &reset, nil
}

// DeleteForUser removes all reset codes belonging to a user
func (r *PasswordResetRepository) DeleteForUser(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.PasswordReset{})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting password resets: %v\n", result.Error)
		return result.Error
	}
	return nil
}

// DeleteExpired removes all expired reset codes from the database
func (r *PasswordResetRepository) DeleteExpired() error {
	result := r.db.Where("expires_at < ?", time.Now()).Delete(&models.PasswordReset{})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting expired password resets: %v\n", result.Error)
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("[DEBUG] Deleted %d expired password resets\n", result.RowsAffected)
	}
	return nil
}
