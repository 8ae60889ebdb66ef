package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pet-adoption-jtn/pet-adoption/internal/handlers"
	"github.com/pet-adoption-jtn/pet-adoption/internal/middleware"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
	"github.com/pet-adoption-jtn/pet-adoption/internal/repositories"
	"github.com/pet-adoption-jtn/pet-adoption/internal/services"
	"github.com/pet-adoption-jtn/pet-adoption/pkg/mailer"
)

var dbCounter int64

// failingMailer always fails delivery; adoption requests must succeed anyway.
type failingMailer struct{}

func (failingMailer) Send(mail mailer.Mail) error {
	return errors.New("smtp unreachable")
}

// setupApp builds a Fiber app over a fresh in-memory SQLite database with the
// full handler stack wired in.
func setupApp() (*fiber.App, *services.TokenService, error) {
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Pet{}, &models.Favorite{}); err != nil {
		return nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	petRepo := repositories.NewGORMPetRepository(db)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)

	tokenService := services.NewTokenService("test_jwt_secret", 0)
	authService := services.NewAuthService(userRepo, tokenService, nil)
	petService := services.NewPetService(petRepo, nil, failingMailer{})
	favoriteService := services.NewFavoriteService(favoriteRepo)

	app := fiber.New()
	authGuard := middleware.AuthRequired(tokenService)
	handlers.NewUserHandler(authService).RegisterRoutes(app, authGuard)
	handlers.NewPetHandler(petService).RegisterRoutes(app, authGuard)
	handlers.NewFavoriteHandler(favoriteService).RegisterRoutes(app, authGuard)

	return app, tokenService, nil
}

// doRequest performs one request and decodes the JSON response into out.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("access_token", token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func registerAndLogin(t *testing.T, app *fiber.App, username, email string) string {
	t.Helper()

	status := doRequest(t, app, http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "123456",
		"address":  "jakarta",
		"phone":    "08123456789",
	}, nil)
	assert.Equal(t, http.StatusCreated, status)

	var loginResp map[string]interface{}
	status = doRequest(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": "123456",
	}, &loginResp)
	assert.Equal(t, http.StatusOK, status)
	token, _ := loginResp["access_token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func validPetBody() map[string]interface{} {
	return map[string]interface{}{
		"name":     "kenedi",
		"breed":    "wolf",
		"age":      "baby",
		"gender":   "male",
		"color":    "black",
		"type":     "dog",
		"pictures": []string{"http://example.com/kenedi.jpg"},
	}
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestRegisterAndLogin(t *testing.T) {
	app, tokenService, err := setupApp()
	assert.NoError(t, err)

	var registerResp map[string]interface{}
	status := doRequest(t, app, http.MethodPost, "/register", "", map[string]string{
		"username": "example",
		"email":    "example@mail.com",
		"password": "123456",
		"address":  "jakarta",
		"phone":    "08123456789",
	}, &registerResp)
	assert.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, registerResp["id"])
	assert.Equal(t, "example", registerResp["username"])
	assert.Equal(t, "example@mail.com", registerResp["email"])
	// Only the public subset comes back.
	assert.NotContains(t, registerResp, "password")

	// Same email again is a conflict.
	var dupResp map[string]interface{}
	status = doRequest(t, app, http.MethodPost, "/register", "", map[string]string{
		"username": "example",
		"email":    "example@mail.com",
		"password": "123456",
		"address":  "jakarta",
		"phone":    "08123456789",
	}, &dupResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already exists", dupResp["message"])

	// Wrong password and unknown email fail with the same message.
	var badLogin map[string]interface{}
	status = doRequest(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    "example@mail.com",
		"password": "wrong",
	}, &badLogin)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email/password", badLogin["message"])

	var ghostLogin map[string]interface{}
	status = doRequest(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    "ghost@mail.com",
		"password": "123456",
	}, &ghostLogin)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email/password", ghostLogin["message"])

	var loginResp map[string]interface{}
	status = doRequest(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    "example@mail.com",
		"password": "123456",
	}, &loginResp)
	assert.Equal(t, http.StatusOK, status)

	// The token's claims decode back to the account's identity.
	claims, err := tokenService.Verify(loginResp["access_token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, registerResp["id"], claims.ID)
	assert.Equal(t, "example", claims.Username)
	assert.Equal(t, "example@mail.com", claims.Email)

	account := loginResp["account"].(map[string]interface{})
	assert.Equal(t, "example@mail.com", account["email"])
	assert.Equal(t, true, account["has_password"])
	assert.NotContains(t, account, "password")
}

func TestRegisterValidationMessages(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)

	tests := []struct {
		name    string
		body    map[string]interface{}
		message string
	}{
		{
			name: "short password",
			body: map[string]interface{}{
				"username": "example", "email": "example@mail.com",
				"password": "1234", "address": "jakarta", "phone": "08123456789",
			},
			message: "Minimum password is six characters",
		},
		{
			name: "short username",
			body: map[string]interface{}{
				"username": "ex", "email": "example@mail.com",
				"password": "123456", "address": "jakarta", "phone": "08123456789",
			},
			message: "Minimum username is six characters",
		},
		{
			name: "short phone",
			body: map[string]interface{}{
				"username": "example", "email": "example@mail.com",
				"password": "123456", "address": "jakarta", "phone": "08123",
			},
			message: "Phone must have a minimum of eleven characters",
		},
		{
			name: "empty strings",
			body: map[string]interface{}{
				"username": "example", "email": "",
				"password": "123456", "address": "", "phone": "",
			},
			message: "Please fill all the columns",
		},
		{
			name: "missing field",
			body: map[string]interface{}{
				"username": "example", "email": "example@mail.com",
				"password": "123456", "address": "jakarta",
			},
			message: "Please fill all the columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp map[string]interface{}
			status := doRequest(t, app, http.MethodPost, "/register", "", tt.body, &resp)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.message, resp["message"])
		})
	}
}

func TestPetLifecycle(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)
	token := registerAndLogin(t, app, "example", "example@mail.com")

	// Unauthenticated creation is rejected before the handler runs.
	var unauthResp map[string]interface{}
	status := doRequest(t, app, http.MethodPost, "/pets", "", validPetBody(), &unauthResp)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authentication Failed", unauthResp["message"])

	// A malformed token is rejected the same way.
	status = doRequest(t, app, http.MethodPost, "/pets", "invalid.token.string", validPetBody(), &unauthResp)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authentication Failed", unauthResp["message"])

	// Missing fields fail validation.
	incomplete := validPetBody()
	delete(incomplete, "breed")
	status = doRequest(t, app, http.MethodPost, "/pets", token, incomplete, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Out-of-enum values fail validation.
	badEnum := validPetBody()
	badEnum["age"] = "ancient"
	status = doRequest(t, app, http.MethodPost, "/pets", token, badEnum, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Successful creation starts unadopted and unrequested.
	var created map[string]interface{}
	status = doRequest(t, app, http.MethodPost, "/pets", token, validPetBody(), &created)
	assert.Equal(t, http.StatusCreated, status)
	petID := created["id"].(string)
	assert.Equal(t, false, created["status"])
	assert.Equal(t, false, created["request"])

	// Listing embeds the owner's public record.
	var list []map[string]interface{}
	status = doRequest(t, app, http.MethodGet, "/pets", "", nil, &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 1)
	owner := list[0]["Owner"].(map[string]interface{})
	assert.Equal(t, "example@mail.com", owner["email"])
	assert.NotContains(t, owner, "password")

	var fetched map[string]interface{}
	status = doRequest(t, app, http.MethodGet, "/pets/"+petID, "", nil, &fetched)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "kenedi", fetched["name"])

	// All-sentinel filter returns the full list.
	var filtered []map[string]interface{}
	status = doRequest(t, app, http.MethodGet, "/pets/filter/-/-/-/-", "", nil, &filtered)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, filtered, 1)

	status = doRequest(t, app, http.MethodGet, "/pets/filter/dog/baby/-/-", "", nil, &filtered)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, filtered, 1)

	status = doRequest(t, app, http.MethodGet, "/pets/filter/cat/-/-/-", "", nil, &filtered)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, filtered, 0)

	// Field edit keeps the lifecycle flags.
	update := validPetBody()
	update["name"] = "renamed"
	delete(update, "pictures")
	var updated map[string]interface{}
	status = doRequest(t, app, http.MethodPut, "/pets/"+petID, token, update, &updated)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "renamed", updated["name"])
	assert.Equal(t, false, updated["status"])

	// Adoption request flips the flag and succeeds despite the failing mailer.
	var requested map[string]interface{}
	status = doRequest(t, app, http.MethodPost, "/pets/"+petID+"/adopt-request", token, map[string]interface{}{
		"form_data": map[string]string{
			"name":    "Adopter",
			"email":   "adopter@mail.com",
			"phone":   "08111111111",
			"message": "I would love to adopt",
		},
	}, &requested)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Adoption form delivered to owner", requested["message"])
	pet := requested["pet"].(map[string]interface{})
	assert.Equal(t, true, pet["request"])

	// Approval and cancellation are both confirmed outcomes.
	var decided map[string]interface{}
	status = doRequest(t, app, http.MethodPatch, "/pets/"+petID, token, map[string]bool{"status": true}, &decided)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Adoption successful", decided["message"])
	assert.Equal(t, "adopted", decided["outcome"])

	status = doRequest(t, app, http.MethodPatch, "/pets/"+petID, token, map[string]bool{"status": false}, &decided)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Adoption canceled", decided["message"])
	assert.Equal(t, "canceled", decided["outcome"])

	var byOwner []map[string]interface{}
	status = doRequest(t, app, http.MethodGet, "/pets/owner", token, nil, &byOwner)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, byOwner, 1)

	// Deletion, then the pet is gone.
	var deleted map[string]interface{}
	status = doRequest(t, app, http.MethodDelete, "/pets/"+petID, token, nil, &deleted)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Successfully delete pet", deleted["message"])

	var missing map[string]interface{}
	status = doRequest(t, app, http.MethodGet, "/pets/"+petID, "", nil, &missing)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Pet is not found", missing["message"])

	status = doRequest(t, app, http.MethodDelete, "/pets/"+petID, token, nil, &missing)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFavorites(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)
	token := registerAndLogin(t, app, "example", "example@mail.com")

	var created map[string]interface{}
	status := doRequest(t, app, http.MethodPost, "/pets", token, validPetBody(), &created)
	assert.Equal(t, http.StatusCreated, status)
	petID := created["id"].(string)

	// Favorites require a token.
	status = doRequest(t, app, http.MethodGet, "/favorites", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var favorite map[string]interface{}
	status = doRequest(t, app, http.MethodPost, "/favorites", token, map[string]string{"pet_id": petID}, &favorite)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, petID, favorite["pet_id"])
	favoriteID := favorite["id"].(string)

	// Bookmarking the same pet twice hits the unique pair.
	var dup map[string]interface{}
	status = doRequest(t, app, http.MethodPost, "/favorites", token, map[string]string{"pet_id": petID}, &dup)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Favorite already exists", dup["message"])

	var empty map[string]interface{}
	status = doRequest(t, app, http.MethodPost, "/favorites", token, map[string]string{}, &empty)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Empty Data", empty["message"])

	var list []map[string]interface{}
	status = doRequest(t, app, http.MethodGet, "/favorites", token, nil, &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 1)

	var removed map[string]interface{}
	status = doRequest(t, app, http.MethodDelete, "/favorites/"+favoriteID, token, nil, &removed)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Successfully deleted one Pet Favorites.", removed["msg"])

	var missing map[string]interface{}
	status = doRequest(t, app, http.MethodDelete, "/favorites/"+favoriteID, token, nil, &missing)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Favorite is not found", missing["message"])
}

func TestEditProfile(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)
	token := registerAndLogin(t, app, "example", "example@mail.com")

	var resp map[string]interface{}
	status := doRequest(t, app, http.MethodPut, "/users", token, map[string]string{
		"username": "renamed",
		"email":    "renamed@mail.com",
		"address":  "bandung",
		"phone":    "08987654321",
	}, &resp)
	assert.Equal(t, http.StatusOK, status)
	account := resp["account"].(map[string]interface{})
	assert.Equal(t, "renamed", account["username"])
	assert.Equal(t, "renamed@mail.com", account["email"])
	assert.Equal(t, "bandung", account["address"])

	status = doRequest(t, app, http.MethodPut, "/users", "", map[string]string{}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
