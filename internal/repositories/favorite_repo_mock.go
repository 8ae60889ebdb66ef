package repositories

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
)

// MockFavoriteRepository is an in-memory implementation of FavoriteRepository.
type MockFavoriteRepository struct {
	favorites map[string]models.Favorite
	order     []string
	mu        sync.Mutex
}

// NewMockFavoriteRepository creates a new instance of MockFavoriteRepository.
func NewMockFavoriteRepository() *MockFavoriteRepository {
	return &MockFavoriteRepository{
		favorites: make(map[string]models.Favorite),
	}
}

// Create adds a favorite; the duplicate check and insert happen under one lock,
// mirroring the unique-index guarantee of the GORM implementation.
func (r *MockFavoriteRepository) Create(favorite *models.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.favorites {
		if f.PetID == favorite.PetID && f.UserID == favorite.UserID {
			return apperror.Conflict("Favorite already exists")
		}
	}
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	r.favorites[favorite.ID] = *favorite
	r.order = append(r.order, favorite.ID)
	return nil
}

// GetByUser returns all favorites of the given user in insertion order.
func (r *MockFavoriteRepository) GetByUser(userID string) ([]models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var owned []models.Favorite
	for _, id := range r.order {
		if r.favorites[id].UserID == userID {
			owned = append(owned, r.favorites[id])
		}
	}
	return owned, nil
}

// Delete removes a favorite by its ID.
func (r *MockFavoriteRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.favorites[id]; !ok {
		return apperror.NotFound("Favorite is not found")
	}
	delete(r.favorites, id)
	for i, fid := range r.order {
		if fid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
