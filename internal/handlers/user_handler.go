package handlers

import (
	"log"

	"watchlog/internal/models"
	"watchlog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. All of them
// sit behind the identity middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleRegister)
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleRegister creates a profile for the calling identity.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var payload models.UserPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	user, err := h.service.Register(callerIdentity(c), payload.Username, payload.Password)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"message": "Could not register user",
			"error":   err.Error(),
		})
	}

	// For security, do not return the password hash
	user.PasswordHash = ""
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGetUsers retrieves all user profiles.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return c.JSON(users)
}

// HandleGetUserByID retrieves a single profile by its id.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	userID := c.Params("id")
	user, err := h.service.GetUserByID(userID)
	if err != nil {
		log.Printf("Error getting user by ID %s: %v", userID, err)
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"message": "Could not retrieve user",
			"error":   err.Error(),
		})
	}
	user.PasswordHash = ""
	return c.JSON(user)
}

// HandleUpdateUser merges a payload onto an existing profile.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	var payload models.UserPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	user, err := h.service.UpdateUser(callerIdentity(c), userID, payload)
	if err != nil {
		log.Printf("Error updating user %s: %v", userID, err)
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"message": "Could not update user",
			"error":   err.Error(),
		})
	}
	user.PasswordHash = ""
	return c.JSON(user)
}

// HandleDeleteUser removes a profile and returns the removed record.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	removed, err := h.service.DeleteUser(callerIdentity(c), userID)
	if err != nil {
		log.Printf("Error deleting user %s: %v", userID, err)
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"message": "Could not delete user",
			"error":   err.Error(),
		})
	}
	removed.PasswordHash = ""
	return c.JSON(removed)
}
