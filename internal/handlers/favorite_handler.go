package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
	"github.com/pet-adoption-jtn/pet-adoption/internal/services"
)

// FavoriteHandler handles HTTP requests for pet bookmarks.
type FavoriteHandler struct {
	service *services.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
	}
}

// RegisterRoutes registers the favorite routes; all of them require auth.
func (h *FavoriteHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	favoriteRoutes := router.Group("/favorites", authGuard)
	favoriteRoutes.Post("/", h.HandleAddFavorite)
	favoriteRoutes.Get("/", h.HandleGetFavorites)
	favoriteRoutes.Delete("/:id", h.HandleRemoveFavorite)
}

// HandleAddFavorite bookmarks a pet for the caller.
func (h *FavoriteHandler) HandleAddFavorite(c *fiber.Ctx) error {
	var body struct {
		PetID string `json:"pet_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing add favorite request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Empty Data",
		})
	}

	userID, _ := c.Locals("user_id").(string)
	favorite, err := h.service.AddFavorite(userID, body.PetID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(favorite)
}

// HandleGetFavorites returns the caller's bookmarks.
func (h *FavoriteHandler) HandleGetFavorites(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	favorites, err := h.service.GetFavorites(userID)
	if err != nil {
		log.Printf("Error getting favorites for user %s: %v", userID, err)
		return writeError(c, err)
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	return c.JSON(favorites)
}

// HandleRemoveFavorite deletes a bookmark by its ID.
func (h *FavoriteHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	if err := h.service.RemoveFavorite(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"msg": "Successfully deleted one Pet Favorites.",
	})
}
