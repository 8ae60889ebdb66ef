package services

import (
	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
	"github.com/pet-adoption-jtn/pet-adoption/internal/repositories"
)

// FavoriteService handles business logic for pet bookmarks.
type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favoriteRepo repositories.FavoriteRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
	}
}

// AddFavorite bookmarks a pet for the user. Duplicates fail on the insert
// itself via the unique (pet_id, user_id) pair.
func (s *FavoriteService) AddFavorite(userID, petID string) (*models.Favorite, error) {
	if petID == "" {
		return nil, apperror.Validation("Empty Data")
	}

	favorite := &models.Favorite{
		PetID:  petID,
		UserID: userID,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// GetFavorites returns the user's bookmarks.
func (s *FavoriteService) GetFavorites(userID string) ([]models.Favorite, error) {
	return s.favoriteRepo.GetByUser(userID)
}

// RemoveFavorite deletes a bookmark by its ID.
func (s *FavoriteService) RemoveFavorite(id string) error {
	return s.favoriteRepo.Delete(id)
}
