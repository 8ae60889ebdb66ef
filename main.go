package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pet-adoption-jtn/pet-adoption/internal/handlers"
	"github.com/pet-adoption-jtn/pet-adoption/internal/middleware"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
	"github.com/pet-adoption-jtn/pet-adoption/internal/repositories"
	"github.com/pet-adoption-jtn/pet-adoption/internal/services"
	"github.com/pet-adoption-jtn/pet-adoption/pkg/googleauth"
	"github.com/pet-adoption-jtn/pet-adoption/pkg/mailer"
	"github.com/pet-adoption-jtn/pet-adoption/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":4000")
	viper.SetDefault("JWT_SECRET", "development_secret")
	viper.SetDefault("TOKEN_TTL", time.Duration(0)) // zero keeps tokens unexpiring
	viper.SetDefault("SMTP_ADDR", "localhost:1025")
	viper.SetDefault("SMTP_FROM", "noreply@adopt-us.local")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Repositories ---
	// Without a DATABASE_URL the app runs on in-memory repositories, which is
	// enough for local development against the API surface.
	var (
		userRepo     repositories.UserRepository
		petRepo      repositories.PetRepository
		favoriteRepo repositories.FavoriteRepository
	)
	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}, &models.Pet{}, &models.Favorite{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
		petRepo = repositories.NewGORMPetRepository(db)
		favoriteRepo = repositories.NewGORMFavoriteRepository(db)
	} else {
		log.Println("DATABASE_URL is not set, using in-memory repositories")
		userRepo = repositories.NewMockUserRepository()
		petRepo = repositories.NewMockPetRepository()
		favoriteRepo = repositories.NewMockFavoriteRepository()
	}

	// --- Initialize Mailer ---
	smtpMailer := mailer.NewSMTPMailer(
		viper.GetString("SMTP_ADDR"),
		viper.GetString("SMTP_FROM"),
		viper.GetString("SMTP_USERNAME"),
		viper.GetString("SMTP_PASSWORD"),
	)

	// --- Initialize RabbitMQ Client ---
	// The broker is optional: without it adoption notifications are mailed
	// directly instead of flowing through the queue.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: failed to initialize RabbitMQ client: %v", err)
		} else {
			mqClient = client
			defer mqClient.Close()
		}
	}

	// --- Initialize Services ---
	tokenService := services.NewTokenService(viper.GetString("JWT_SECRET"), viper.GetDuration("TOKEN_TTL"))
	var googleVerifier services.GoogleVerifier
	if clientID := viper.GetString("GOOGLE_CLIENT_ID"); clientID != "" {
		googleVerifier = googleauth.NewVerifier(clientID)
	}
	authService := services.NewAuthService(userRepo, tokenService, googleVerifier)

	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	petService := services.NewPetService(petRepo, publisher, smtpMailer)
	favoriteService := services.NewFavoriteService(favoriteRepo)

	// --- Initialize Handlers ---
	userHandler := handlers.NewUserHandler(authService)
	petHandler := handlers.NewPetHandler(petService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	authGuard := middleware.AuthRequired(tokenService)
	userHandler.RegisterRoutes(app, authGuard)
	petHandler.RegisterRoutes(app, authGuard)
	favoriteHandler.RegisterRoutes(app, authGuard)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start the adoption-mail consumer ---
	// Events published on adoption requests are drained here and turned into
	// owner emails. A failed send returns the event to the queue.
	if mqClient != nil {
		messageHandler := func(msg amqp.Delivery) error {
			var event services.AdoptionEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Printf("Dropping undecodable adoption event (tag %d): %v", msg.DeliveryTag, err)
				return nil
			}
			return smtpMailer.Send(mailer.Mail{
				Recipient: event.OwnerEmail,
				Subject:   event.Subject,
				Message:   event.Message,
			})
		}
		if consumerErr := mqClient.Consume(messageHandler); consumerErr != nil {
			log.Printf("Failed to start adoption-mail consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
