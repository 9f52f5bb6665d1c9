package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cloudnote/cloudnote/internal/auth"
	"github.com/cloudnote/cloudnote/internal/middleware"
)

// RegisterAuthRoutes wires the /api/auth endpoints. Register optionally
// runs behind the idempotency guard; getuser runs behind token
// verification so the handler receives a resolved user id only.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, tokens *auth.TokenService, idem fiber.Handler) {
	group := r.Group("/api/auth")

	if idem != nil {
		group.Post("/register", idem, h.Register)
	} else {
		group.Post("/register", h.Register)
	}
	group.Post("/login", h.Login)
	group.Post("/getuser", middleware.RequireAuth(tokens), h.GetUser)
}
