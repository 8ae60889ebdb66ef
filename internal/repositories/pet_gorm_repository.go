package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
)

// GORMPetRepository is a GORM implementation of PetRepository.
type GORMPetRepository struct {
	db *gorm.DB
}

// NewGORMPetRepository creates a new instance of GORMPetRepository.
func NewGORMPetRepository(db *gorm.DB) *GORMPetRepository {
	return &GORMPetRepository{
		db: db,
	}
}

// GetAll retrieves every pet with its owner embedded, in insertion order.
func (r *GORMPetRepository) GetAll() ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.Preload("Owner").Order("created_at").Find(&pets).Error; err != nil {
		return nil, fmt.Errorf("failed to get all pets: %w", err)
	}
	return pets, nil
}

// GetByID retrieves a single pet with its owner embedded.
func (r *GORMPetRepository) GetByID(id string) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.Preload("Owner").First(&pet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Pet is not found")
		}
		return nil, fmt.Errorf("failed to get pet by ID %s: %w", id, err)
	}
	return &pet, nil
}

// GetByOwner retrieves all pets listed by the given user.
func (r *GORMPetRepository) GetByOwner(userID string) ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&pets).Error; err != nil {
		return nil, fmt.Errorf("failed to get pets by owner %s: %w", userID, err)
	}
	return pets, nil
}

// Filter retrieves pets matching every equality predicate in criteria.
func (r *GORMPetRepository) Filter(criteria map[string]interface{}) ([]models.Pet, error) {
	var pets []models.Pet
	query := r.db.Order("created_at")
	if len(criteria) > 0 {
		query = query.Where(criteria)
	}
	if err := query.Find(&pets).Error; err != nil {
		return nil, fmt.Errorf("failed to filter pets: %w", err)
	}
	return pets, nil
}

// Create inserts a new pet.
func (r *GORMPetRepository) Create(pet *models.Pet) error {
	if pet.ID == "" {
		pet.ID = uuid.New().String()
	}
	res := r.db.Create(pet)
	if res.Error != nil {
		return fmt.Errorf("failed to create pet: %w", res.Error)
	}
	if res.RowsAffected != 1 {
		return apperror.InsertFailed("Insert Pet Failed")
	}
	return nil
}

// Update persists the full pet record.
func (r *GORMPetRepository) Update(pet *models.Pet) error {
	res := r.db.Save(pet)
	if res.Error != nil {
		return fmt.Errorf("failed to update pet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Pet is not found")
	}
	return nil
}

// SetRequest flips the pending-request flag in one statement and returns the
// updated pet with its owner embedded.
func (r *GORMPetRepository) SetRequest(id string, requested bool) (*models.Pet, error) {
	res := r.db.Model(&models.Pet{}).Where("id = ?", id).Update("request", requested)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to set request flag for pet %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("Pet is not found")
	}
	return r.GetByID(id)
}

// SetStatus flips the adopted flag in one statement and returns the updated pet.
func (r *GORMPetRepository) SetStatus(id string, adopted bool) (*models.Pet, error) {
	res := r.db.Model(&models.Pet{}).Where("id = ?", id).Update("status", adopted)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to set status for pet %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("Pet is not found")
	}
	var pet models.Pet
	if err := r.db.First(&pet, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload pet %s: %w", id, err)
	}
	return &pet, nil
}

// Delete removes a pet by its ID.
func (r *GORMPetRepository) Delete(id string) error {
	res := r.db.Delete(&models.Pet{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete pet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Pet is not found")
	}
	return nil
}
