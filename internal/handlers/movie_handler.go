package handlers

import (
	"log"

	"watchlog/internal/models"
	"watchlog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MovieHandler handles HTTP requests for logged movies.
type MovieHandler struct {
	service  *services.MovieService
	validate *validator.Validate
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(service *services.MovieService) *MovieHandler {
	return &MovieHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the movie routes with the Fiber app. All of them
// sit behind the identity middleware.
func (h *MovieHandler) RegisterRoutes(router fiber.Router) {
	movieRoutes := router.Group("/movies")
	movieRoutes.Post("/", h.HandleLogMovie)
	movieRoutes.Get("/", h.HandleGetMovies)
	movieRoutes.Get("/:id", h.HandleGetMovieByID)
	movieRoutes.Put("/:id", h.HandleUpdateMovie)
	movieRoutes.Delete("/:id", h.HandleDeleteMovie)
}

// HandleLogMovie logs a movie under the calling identity's profile.
func (h *MovieHandler) HandleLogMovie(c *fiber.Ctx) error {
	var payload models.MoviePayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing log movie request body: %v", err)
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

	movie, err := h.service.LogMovie(callerIdentity(c), payload)
	if err != nil {
		log.Printf("Error logging movie: %v", err)
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"message": "Could not log movie",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(movie)
}

// HandleGetMovies retrieves all logged movies.
func (h *MovieHandler) HandleGetMovies(c *fiber.Ctx) error {
	movies, err := h.service.GetAllMovies()
	if err != nil {
		log.Printf("Error getting all movies: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve movies",
			"error":   err.Error(),
		})
	}
	return c.JSON(movies)
}

// HandleGetMovieByID retrieves a single movie by its id.
func (h *MovieHandler) HandleGetMovieByID(c *fiber.Ctx) error {
	movieID := c.Params("id")
	movie, err := h.service.GetMovieByID(movieID)
	if err != nil {
		log.Printf("Error getting movie by ID %s: %v", movieID, err)
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"message": "Could not retrieve movie",
			"error":   err.Error(),
		})
	}
	return c.JSON(movie)
}

// HandleUpdateMovie merges a payload onto an existing movie.
func (h *MovieHandler) HandleUpdateMovie(c *fiber.Ctx) error {
	movieID := c.Params("id")
	var payload models.MoviePayload
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

	movie, err := h.service.UpdateMovie(callerIdentity(c), movieID, payload)
	if err != nil {
		log.Printf("Error updating movie %s: %v", movieID, err)
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"message": "Could not update movie",
			"error":   err.Error(),
		})
	}
	return c.JSON(movie)
}

// HandleDeleteMovie removes a movie and returns the removed record.
func (h *MovieHandler) HandleDeleteMovie(c *fiber.Ctx) error {
	movieID := c.Params("id")
	removed, err := h.service.DeleteMovie(callerIdentity(c), movieID)
	if err != nil {
		log.Printf("Error deleting movie %s: %v", movieID, err)
		return c.Status(errorStatus(err)).JSON(fiber.Map{
			"message": "Could not delete movie",
			"error":   err.Error(),
		})
	}
	return c.JSON(removed)
}
