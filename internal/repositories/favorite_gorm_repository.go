package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

// Create inserts a favorite. The composite unique index on (pet_id, user_id)
// turns a duplicate bookmark into a clean conflict.
func (r *GORMFavoriteRepository) Create(favorite *models.Favorite) error {
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	if err := r.db.Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("Favorite already exists")
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// GetByUser retrieves all favorites of the given user.
func (r *GORMFavoriteRepository) GetByUser(userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to get favorites for user %s: %w", userID, err)
	}
	return favorites, nil
}

// Delete removes a favorite by its ID.
func (r *GORMFavoriteRepository) Delete(id string) error {
	res := r.db.Delete(&models.Favorite{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Favorite is not found")
	}
	return nil
}
