package repositories

import "github.com/pet-adoption-jtn/pet-adoption/internal/models"

// PetRepository defines the interface for pet data access.
//
// SetRequest and SetStatus are single-statement flag flips so concurrent
// requests against the same pet cannot lose updates.
type PetRepository interface {
	GetAll() ([]models.Pet, error)
	GetByID(id string) (*models.Pet, error)
	GetByOwner(userID string) ([]models.Pet, error)
	Filter(criteria map[string]interface{}) ([]models.Pet, error)
	Create(pet *models.Pet) error
	Update(pet *models.Pet) error
	SetRequest(id string, requested bool) (*models.Pet, error)
	SetStatus(id string, adopted bool) (*models.Pet, error)
	Delete(id string) error
}
