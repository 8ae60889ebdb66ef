package repositories

import "github.com/pet-adoption-jtn/pet-adoption/internal/models"

// FavoriteRepository defines the interface for favorite data access.
// Create must be atomic: a duplicate (pet_id, user_id) pair fails the insert
// itself rather than a separate lookup.
type FavoriteRepository interface {
	Create(favorite *models.Favorite) error
	GetByUser(userID string) ([]models.Favorite, error)
	Delete(id string) error
}
