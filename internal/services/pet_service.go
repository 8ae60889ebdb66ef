package services

import (
	"encoding/json"
	"log"

	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
	"github.com/pet-adoption-jtn/pet-adoption/internal/repositories"
	"github.com/pet-adoption-jtn/pet-adoption/pkg/mailer"
)

// EventPublisher sends adoption events to the message broker.
type EventPublisher interface {
	Publish(body []byte) error
}

// AdoptionEvent is the payload published when an adoption request comes in.
// The consumer turns it into an email to the pet's owner.
type AdoptionEvent struct {
	PetID      string `json:"pet_id"`
	PetName    string `json:"pet_name"`
	OwnerEmail string `json:"owner_email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
}

// AdoptionOutcome discriminates the two non-error results of an adoption
// decision.
type AdoptionOutcome string

const (
	OutcomeAdopted  AdoptionOutcome = "adopted"
	OutcomeCanceled AdoptionOutcome = "canceled"
)

// AdoptionResult is the outcome of an adoption decision. Cancellation is a
// confirmed result, not a failure.
type AdoptionResult struct {
	Outcome AdoptionOutcome `json:"outcome"`
	Message string          `json:"message"`
	Pet     *models.Pet     `json:"pet"`
}

// PetService handles business logic for pet records and their lifecycle.
type PetService struct {
	petRepo  repositories.PetRepository
	mqClient EventPublisher
	mail     mailer.Sender
}

// NewPetService creates a new PetService. mqClient and mail may be nil; the
// service degrades to direct delivery or to logging, never to request failure.
func NewPetService(petRepo repositories.PetRepository, mqClient EventPublisher, mail mailer.Sender) *PetService {
	return &PetService{
		petRepo:  petRepo,
		mqClient: mqClient,
		mail:     mail,
	}
}

// GetAllPets retrieves all pets with their owners embedded.
func (s *PetService) GetAllPets() ([]models.Pet, error) {
	return s.petRepo.GetAll()
}

// GetPetByID retrieves a single pet with its owner embedded.
func (s *PetService) GetPetByID(id string) (*models.Pet, error) {
	return s.petRepo.GetByID(id)
}

// GetPetsByOwner retrieves all pets listed by the given user.
func (s *PetService) GetPetsByOwner(userID string) ([]models.Pet, error) {
	return s.petRepo.GetByOwner(userID)
}

// FilterPets retrieves pets matching the given equality predicates. The "-"
// sentinel (or an empty value) means no constraint on that field.
func (s *PetService) FilterPets(petType, age, gender, color string) ([]models.Pet, error) {
	criteria := make(map[string]interface{})
	if petType != "-" && petType != "" {
		criteria["type"] = petType
	}
	if age != "-" && age != "" {
		criteria["age"] = age
	}
	if gender != "-" && gender != "" {
		criteria["gender"] = gender
	}
	if color != "-" && color != "" {
		criteria["color"] = color
	}
	return s.petRepo.Filter(criteria)
}

// CreatePet lists a new pet for the given owner. New pets start not adopted
// and with no pending request.
func (s *PetService) CreatePet(ownerID string, pet *models.Pet) error {
	pet.UserID = ownerID
	pet.Status = false
	pet.Request = false
	pet.Owner = nil
	return s.petRepo.Create(pet)
}

// UpdatePet replaces the editable fields of a pet. Status, request, pictures
// and owner are untouched. The caller's ownership is not checked; any
// authenticated user may edit any pet, matching the original system.
func (s *PetService) UpdatePet(id string, fields *models.Pet) (*models.Pet, error) {
	pet, err := s.petRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	pet.Name = fields.Name
	pet.Breed = fields.Breed
	pet.Age = fields.Age
	pet.Gender = fields.Gender
	pet.Color = fields.Color
	pet.Type = fields.Type
	pet.Owner = nil

	if err := s.petRepo.Update(pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// RequestAdoption flags the pet as having a pending request and notifies the
// owner. The notification is best-effort: once the flag flip succeeds the
// request succeeds, and a delivery fault is only logged.
func (s *PetService) RequestAdoption(petID string, form mailer.AdoptionForm) (string, *models.Pet, error) {
	pet, err := s.petRepo.SetRequest(petID, true)
	if err != nil {
		return "", nil, err
	}

	event := AdoptionEvent{
		PetID:   pet.ID,
		PetName: pet.Name,
		Subject: "Adoption Request for " + pet.Name,
		Message: mailer.RenderAdoptionForm(form),
	}
	if pet.Owner != nil {
		event.OwnerEmail = pet.Owner.Email
	}
	s.notifyOwner(event)

	return "Adoption form delivered to owner", pet, nil
}

// notifyOwner dispatches the adoption event, preferring the broker and falling
// back to a direct, non-blocking mail send.
func (s *PetService) notifyOwner(event AdoptionEvent) {
	if event.OwnerEmail == "" {
		log.Printf("No owner email for pet %s, skipping adoption notification", event.PetID)
		return
	}

	if s.mqClient != nil {
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal adoption event for pet %s: %v", event.PetID, err)
		} else if err := s.mqClient.Publish(body); err != nil {
			log.Printf("Warning: failed to publish adoption event for pet %s: %v", event.PetID, err)
		} else {
			return
		}
	}

	if s.mail == nil {
		log.Printf("No mailer configured, dropping adoption notification for pet %s", event.PetID)
		return
	}
	go func() {
		mail := mailer.Mail{
			Recipient: event.OwnerEmail,
			Subject:   event.Subject,
			Message:   event.Message,
		}
		if err := s.mail.Send(mail); err != nil {
			log.Printf("Warning: failed to deliver adoption mail for pet %s: %v", event.PetID, err)
		}
	}()
}

// DecideAdoption sets the pet's adopted status. Both branches are confirmed
// outcomes; only a missing pet is an error.
func (s *PetService) DecideAdoption(id string, adopted bool) (*AdoptionResult, error) {
	pet, err := s.petRepo.SetStatus(id, adopted)
	if err != nil {
		return nil, err
	}

	result := &AdoptionResult{Pet: pet}
	if adopted {
		result.Outcome = OutcomeAdopted
		result.Message = "Adoption successful"
	} else {
		result.Outcome = OutcomeCanceled
		result.Message = "Adoption canceled"
	}
	return result, nil
}

// DeletePet removes a pet by its ID.
func (s *PetService) DeletePet(id string) error {
	return s.petRepo.Delete(id)
}
