package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
	"github.com/pet-adoption-jtn/pet-adoption/internal/services"
	"github.com/pet-adoption-jtn/pet-adoption/pkg/mailer"
)

// PetHandler handles HTTP requests for pets.
type PetHandler struct {
	service  *services.PetService
	validate *validator.Validate
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(service *services.PetService) *PetHandler {
	return &PetHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the pet routes with the Fiber app. Browsing is
// public; every mutating route and the owner listing sit behind authGuard.
// The /owner route must precede /:id so "owner" never binds as an id.
func (h *PetHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	petRoutes := router.Group("/pets")
	petRoutes.Get("/", h.HandleGetPets)
	petRoutes.Get("/owner", authGuard, h.HandleGetPetsByOwner)
	petRoutes.Get("/filter/:type/:age/:gender/:color", h.HandleFilterPets)
	petRoutes.Get("/:id", h.HandleGetPetByID)
	petRoutes.Post("/", authGuard, h.HandleCreatePet)
	petRoutes.Post("/:id/adopt-request", authGuard, h.HandleRequestAdoption)
	petRoutes.Put("/:id", authGuard, h.HandleUpdatePet)
	petRoutes.Patch("/:id", authGuard, h.HandleDecideAdoption)
	petRoutes.Delete("/:id", authGuard, h.HandleDeletePet)
}

// HandleGetPets retrieves all pets with their owners embedded.
func (h *PetHandler) HandleGetPets(c *fiber.Ctx) error {
	pets, err := h.service.GetAllPets()
	if err != nil {
		log.Printf("Error getting all pets: %v", err)
		return writeError(c, err)
	}
	return c.JSON(pets)
}

// HandleGetPetByID retrieves a single pet by its ID.
func (h *PetHandler) HandleGetPetByID(c *fiber.Ctx) error {
	pet, err := h.service.GetPetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pet)
}

// HandleFilterPets retrieves pets matching the path predicates. A "-" segment
// means no constraint on that field.
func (h *PetHandler) HandleFilterPets(c *fiber.Ctx) error {
	pets, err := h.service.FilterPets(
		c.Params("type"),
		c.Params("age"),
		c.Params("gender"),
		c.Params("color"),
	)
	if err != nil {
		log.Printf("Error filtering pets: %v", err)
		return writeError(c, err)
	}
	return c.JSON(pets)
}

// HandleGetPetsByOwner retrieves the caller's own listings.
func (h *PetHandler) HandleGetPetsByOwner(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	pets, err := h.service.GetPetsByOwner(userID)
	if err != nil {
		log.Printf("Error getting pets by owner %s: %v", userID, err)
		return writeError(c, err)
	}
	return c.JSON(pets)
}

// HandleCreatePet lists a new pet owned by the caller.
func (h *PetHandler) HandleCreatePet(c *fiber.Ctx) error {
	var pet models.Pet
	if err := c.BodyParser(&pet); err != nil {
		log.Printf("Error parsing create pet request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(pet); err != nil {
		return writeValidationErrors(c, err)
	}

	userID, _ := c.Locals("user_id").(string)
	if err := h.service.CreatePet(userID, &pet); err != nil {
		log.Printf("Error creating pet: %v", err)
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(pet)
}

// UpdatePetRequest carries the editable pet fields.
type UpdatePetRequest struct {
	Name   string `json:"name" validate:"required"`
	Breed  string `json:"breed" validate:"required"`
	Age    string `json:"age" validate:"required,oneof=baby young adult senior"`
	Gender string `json:"gender" validate:"required,oneof=male female"`
	Color  string `json:"color" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=dog cat"`
}

// HandleUpdatePet replaces the editable fields of a pet.
func (h *PetHandler) HandleUpdatePet(c *fiber.Ctx) error {
	var req UpdatePetRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update pet request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationErrors(c, err)
	}

	pet, err := h.service.UpdatePet(c.Params("id"), &models.Pet{
		Name:   req.Name,
		Breed:  req.Breed,
		Age:    req.Age,
		Gender: req.Gender,
		Color:  req.Color,
		Type:   req.Type,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pet)
}

// AdoptionRequestBody is the adoption-request payload: the pet snapshot the
// adopter saw plus the form to forward to the owner.
type AdoptionRequestBody struct {
	PetDetail *models.Pet         `json:"pet_detail"`
	FormData  mailer.AdoptionForm `json:"form_data"`
}

// HandleRequestAdoption flags a pet as requested and mails the owner. The pet
// is identified by the path; mail delivery is best-effort and never fails the
// response.
func (h *PetHandler) HandleRequestAdoption(c *fiber.Ctx) error {
	var body AdoptionRequestBody
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing adoption request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	message, pet, err := h.service.RequestAdoption(c.Params("id"), body.FormData)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": message,
		"pet":     pet,
	})
}

// HandleDecideAdoption sets a pet's adopted status. Approval and cancellation
// are both 200 outcomes.
func (h *PetHandler) HandleDecideAdoption(c *fiber.Ctx) error {
	var body struct {
		Status *bool `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing adoption decision body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if body.Status == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required",
		})
	}

	result, err := h.service.DecideAdoption(c.Params("id"), *body.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

// HandleDeletePet removes a pet by its ID.
func (h *PetHandler) HandleDeletePet(c *fiber.Ctx) error {
	if err := h.service.DeletePet(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Successfully delete pet",
	})
}
