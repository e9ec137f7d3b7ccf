package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"skycast.app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.FavoriteCity{}, &models.PasswordReset{}))
	return db
}

func createTestUser(t *testing.T, repo *UserRepository, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$hash",
	}
	require.NoError(t, repo.Create(user))
	return user
}

func TestUserRepository(t *testing.T) {
	t.Run("CreateAndFindByEmail", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		created := createTestUser(t, repo, "test@example.com")

		found, err := repo.FindByEmail("test@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Test User", found.Name)
	})

	t.Run("FindByEmailMissing", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		found, err := repo.FindByEmail("absent@example.com")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindByID", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		created := createTestUser(t, repo, "test@example.com")

		found, err := repo.FindByID(created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "test@example.com", found.Email)

		missing, err := repo.FindByID(9999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com")

		user.Name = "Renamed"
		require.NoError(t, repo.Update(user))

		found, err := repo.FindByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", found.Name)
	})

	t.Run("DeleteRemovesFavorites", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com")
		require.NoError(t, repo.AddFavorite(user.ID, "Kyiv"))

		require.NoError(t, repo.Delete(user))

		found, err := repo.FindByID(user.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		favorites, err := repo.ListFavorites(user.ID)
		require.NoError(t, err)
		assert.Empty(t, favorites)
	})
}

func TestUserRepository_Favorites(t *testing.T) {
	t.Run("AddAndList", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com")

		require.NoError(t, repo.AddFavorite(user.ID, "Kyiv"))
		require.NoError(t, repo.AddFavorite(user.ID, "London"))

		favorites, err := repo.ListFavorites(user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Kyiv", "London"}, favorites)
	})

	t.Run("AddDuplicateIsNoop", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com")

		require.NoError(t, repo.AddFavorite(user.ID, "Kyiv"))
		require.NoError(t, repo.AddFavorite(user.ID, "Kyiv"))

		favorites, err := repo.ListFavorites(user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Kyiv"}, favorites)
	})

	t.Run("UniqueIndexBlocksDirectDuplicate", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		user := createTestUser(t, repo, "test@example.com")
		require.NoError(t, repo.AddFavorite(user.ID, "Kyiv"))

		err := db.Create(&models.FavoriteCity{UserID: user.ID, City: "Kyiv"}).Error
		assert.Error(t, err)

		favorites, err := repo.ListFavorites(user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Kyiv"}, favorites)
	})

	t.Run("Remove", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com")
		require.NoError(t, repo.AddFavorite(user.ID, "Kyiv"))
		require.NoError(t, repo.AddFavorite(user.ID, "London"))

		require.NoError(t, repo.RemoveFavorite(user.ID, "Kyiv"))

		favorites, err := repo.ListFavorites(user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"London"}, favorites)
	})

	t.Run("ReAddAfterRemove", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com")
		require.NoError(t, repo.AddFavorite(user.ID, "Kyiv"))
		require.NoError(t, repo.RemoveFavorite(user.ID, "Kyiv"))

		require.NoError(t, repo.AddFavorite(user.ID, "Kyiv"))

		favorites, err := repo.ListFavorites(user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Kyiv"}, favorites)
	})

	t.Run("Clear", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com")
		require.NoError(t, repo.AddFavorite(user.ID, "Kyiv"))
		require.NoError(t, repo.AddFavorite(user.ID, "London"))

		require.NoError(t, repo.ClearFavorites(user.ID))

		favorites, err := repo.ListFavorites(user.ID)
		require.NoError(t, err)
		assert.Empty(t, favorites)
	})
}

func TestPasswordResetRepository(t *testing.T) {
	t.Run("CreateAndFindActive", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := NewUserRepository(db)
		resetRepo := NewPasswordResetRepository(db)
		user := createTestUser(t, userRepo, "test@example.com")

		created, err := resetRepo.Create(user.ID, "otp-hash", 10*time.Minute)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		found, err := resetRepo.FindActiveByUser(user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "otp-hash", found.OTPHash)
	})

	t.Run("CreateReplacesPrevious", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := NewUserRepository(db)
		resetRepo := NewPasswordResetRepository(db)
		user := createTestUser(t, userRepo, "test@example.com")

		_, err := resetRepo.Create(user.ID, "old-hash", 10*time.Minute)
		require.NoError(t, err)
		_, err = resetRepo.Create(user.ID, "new-hash", 10*time.Minute)
		require.NoError(t, err)

		found, err := resetRepo.FindActiveByUser(user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "new-hash", found.OTPHash)
	})

	t.Run("ExpiredNotReturned", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := NewUserRepository(db)
		resetRepo := NewPasswordResetRepository(db)
		user := createTestUser(t, userRepo, "test@example.com")

		_, err := resetRepo.Create(user.ID, "otp-hash", -time.Minute)
		require.NoError(t, err)

		found, err := resetRepo.FindActiveByUser(user.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("DeleteExpired", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := NewUserRepository(db)
		resetRepo := NewPasswordResetRepository(db)
		user := createTestUser(t, userRepo, "test@example.com")
		other := createTestUser(t, userRepo, "other@example.com")

		_, err := resetRepo.Create(user.ID, "expired", -time.Minute)
		require.NoError(t, err)
		_, err = resetRepo.Create(other.ID, "active", 10*time.Minute)
		require.NoError(t, err)

		require.NoError(t, resetRepo.DeleteExpired())

		found, err := resetRepo.FindActiveByUser(other.ID)
		require.NoError(t, err)
		require.NotNil(t, found)

		var count int64
		require.NoError(t, db.Model(&models.PasswordReset{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}
