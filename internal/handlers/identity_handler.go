package handlers

import (
	"log"

	"watchlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// IdentityHandler handles HTTP requests for the identity shim: minting
// identity tokens and echoing the resolved caller.
type IdentityHandler struct {
	authService *services.AuthService
}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler(authService *services.AuthService) *IdentityHandler {
	return &IdentityHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the public identity routes with the Fiber app.
func (h *IdentityHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/identity", h.HandleIssueIdentity)
}

// RegisterProtectedRoutes registers the identity routes that need a resolved
// caller.
func (h *IdentityHandler) RegisterProtectedRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Get("/whoami", h.HandleWhoAmI)
}

// IdentityRequest represents the request body for minting a token. An empty
// principal yields a fresh anonymous one.
type IdentityRequest struct {
	Principal string `json:"principal"`
}

// HandleIssueIdentity mints an identity token for a principal.
func (h *IdentityHandler) HandleIssueIdentity(c *fiber.Ctx) error {
	var req IdentityRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing identity request body: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	token, principal, err := h.authService.IssueToken(req.Principal)
	if err != nil {
		log.Printf("Error issuing identity token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not issue identity token",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"principal": principal,
		"token":     token,
	})
}

// HandleWhoAmI echoes the identity resolved for the current call.
func (h *IdentityHandler) HandleWhoAmI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"identity": callerIdentity(c),
	})
}
