package repositories

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
)

// MockPetRepository is an in-memory implementation of PetRepository.
// Insertion order is tracked so GetAll and Filter stay deterministic.
type MockPetRepository struct {
	pets  map[string]models.Pet
	order []string
	mu    sync.RWMutex
}

// NewMockPetRepository creates a new instance of MockPetRepository.
func NewMockPetRepository() *MockPetRepository {
	return &MockPetRepository{
		pets: make(map[string]models.Pet),
	}
}

// GetAll returns all pets in insertion order.
func (r *MockPetRepository) GetAll() ([]models.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	petList := make([]models.Pet, 0, len(r.order))
	for _, id := range r.order {
		petList = append(petList, r.pets[id])
	}
	return petList, nil
}

// GetByID returns a pet by its ID.
func (r *MockPetRepository) GetByID(id string) (*models.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pet, ok := r.pets[id]
	if !ok {
		return nil, apperror.NotFound("Pet is not found")
	}
	return &pet, nil
}

// GetByOwner returns all pets listed by the given user.
func (r *MockPetRepository) GetByOwner(userID string) ([]models.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []models.Pet
	for _, id := range r.order {
		if r.pets[id].UserID == userID {
			owned = append(owned, r.pets[id])
		}
	}
	return owned, nil
}

// Filter returns pets matching every equality predicate in criteria.
func (r *MockPetRepository) Filter(criteria map[string]interface{}) ([]models.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Pet
	for _, id := range r.order {
		pet := r.pets[id]
		if petMatches(pet, criteria) {
			matched = append(matched, pet)
		}
	}
	return matched, nil
}

func petMatches(pet models.Pet, criteria map[string]interface{}) bool {
	fields := map[string]string{
		"type":   pet.Type,
		"age":    pet.Age,
		"gender": pet.Gender,
		"color":  pet.Color,
	}
	for column, want := range criteria {
		if fields[column] != want {
			return false
		}
	}
	return true
}

// Create adds a new pet.
func (r *MockPetRepository) Create(pet *models.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pet.ID == "" {
		pet.ID = uuid.New().String()
	}
	r.pets[pet.ID] = *pet
	r.order = append(r.order, pet.ID)
	return nil
}

// Update modifies an existing pet.
func (r *MockPetRepository) Update(pet *models.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pets[pet.ID]; !ok {
		return apperror.NotFound("Pet is not found")
	}
	r.pets[pet.ID] = *pet
	return nil
}

// SetRequest flips the pending-request flag under the repository lock.
func (r *MockPetRepository) SetRequest(id string, requested bool) (*models.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pet, ok := r.pets[id]
	if !ok {
		return nil, apperror.NotFound("Pet is not found")
	}
	pet.Request = requested
	r.pets[id] = pet
	return &pet, nil
}

// SetStatus flips the adopted flag under the repository lock.
func (r *MockPetRepository) SetStatus(id string, adopted bool) (*models.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pet, ok := r.pets[id]
	if !ok {
		return nil, apperror.NotFound("Pet is not found")
	}
	pet.Status = adopted
	r.pets[id] = pet
	return &pet, nil
}

// Delete removes a pet by its ID.
func (r *MockPetRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pets[id]; !ok {
		return apperror.NotFound("Pet is not found")
	}
	delete(r.pets, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
