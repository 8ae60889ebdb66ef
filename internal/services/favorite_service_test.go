package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
	"github.com/pet-adoption-jtn/pet-adoption/internal/services"
)

// MockFavoriteRepo is a mock implementation of repositories.FavoriteRepository
type MockFavoriteRepo struct {
	mock.Mock
}

func (m *MockFavoriteRepo) Create(favorite *models.Favorite) error {
	args := m.Called(favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepo) GetByUser(userID string) ([]models.Favorite, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestFavoriteService_AddFavorite(t *testing.T) {
	mockRepo := new(MockFavoriteRepo)
	service := services.NewFavoriteService(mockRepo)

	mockRepo.On("Create", mock.MatchedBy(func(f *models.Favorite) bool {
		return f.PetID == "pet-1" && f.UserID == "user-1"
	})).Return(nil).Once()

	favorite, err := service.AddFavorite("user-1", "pet-1")
	assert.NoError(t, err)
	assert.Equal(t, "pet-1", favorite.PetID)
	assert.Equal(t, "user-1", favorite.UserID)
	mockRepo.AssertExpectations(t)
}

func TestFavoriteService_AddFavoriteEmptyData(t *testing.T) {
	mockRepo := new(MockFavoriteRepo)
	service := services.NewFavoriteService(mockRepo)

	favorite, err := service.AddFavorite("user-1", "")
	assert.Nil(t, favorite)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.EqualError(t, err, "Empty Data")
	mockRepo.AssertExpectations(t)
}

func TestFavoriteService_AddFavoriteDuplicate(t *testing.T) {
	mockRepo := new(MockFavoriteRepo)
	service := services.NewFavoriteService(mockRepo)

	mockRepo.On("Create", mock.AnythingOfType("*models.Favorite")).
		Return(apperror.Conflict("Favorite already exists")).Once()

	favorite, err := service.AddFavorite("user-1", "pet-1")
	assert.Nil(t, favorite)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.EqualError(t, err, "Favorite already exists")
	mockRepo.AssertExpectations(t)
}

func TestFavoriteService_GetAndRemove(t *testing.T) {
	mockRepo := new(MockFavoriteRepo)
	service := services.NewFavoriteService(mockRepo)

	expected := []models.Favorite{{ID: "fav-1", PetID: "pet-1", UserID: "user-1"}}
	mockRepo.On("GetByUser", "user-1").Return(expected, nil).Once()

	favorites, err := service.GetFavorites("user-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, favorites)

	mockRepo.On("Delete", "fav-1").Return(nil).Once()
	assert.NoError(t, service.RemoveFavorite("fav-1"))

	mockRepo.On("Delete", "ghost").Return(apperror.NotFound("Favorite is not found")).Once()
	err = service.RemoveFavorite("ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
