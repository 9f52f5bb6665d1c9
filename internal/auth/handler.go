package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cloudnote/cloudnote/internal/identity"
)

// UserIDKey is the request-local under which the auth middleware stores
// the resolved caller id.
const UserIDKey = "user_id"

// Handler exposes the registration and authentication endpoints.
type Handler struct {
	ids    *identity.Service
	tokens *TokenService
	logger *slog.Logger
}

// NewHandler wires the identity flow to the HTTP surface.
func NewHandler(ids *identity.Service, tokens *TokenService, logger *slog.Logger) *Handler {
	return &Handler{ids: ids, tokens: tokens, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Success   bool   `json:"success"`
	AuthToken string `json:"authtoken"`
}

type errorsResponse struct {
	Success bool              `json:"success"`
	Errors  map[string]string `json:"errors"`
}

type messageResponse struct {
	Success bool         `json:"success"`
	Error   messageError `json:"error"`
}

type messageError struct {
	Message string `json:"message"`
}

type userResponse struct {
	User publicUser `json:"user"`
}

// publicUser is the externally visible projection of a user. The
// password hash has no JSON field on purpose.
type publicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Register validates and creates a new identity, returning a bearer
// token bound to it. All field failures come back in one errors map.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.ids.Register(c.UserContext(), identity.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		var verr *identity.ValidationError
		if errors.As(err, &verr) {
			return c.Status(http.StatusBadRequest).JSON(errorsResponse{Errors: verr.Fields})
		}
		return h.serverError(c, "register", err)
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return h.serverError(c, "issue token", err)
	}

	return c.Status(http.StatusCreated).JSON(tokenResponse{Success: true, AuthToken: token})
}

// Login verifies credentials and returns a bearer token. Unknown email
// and wrong password produce byte-identical responses.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.ids.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		var verr *identity.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(http.StatusBadRequest).JSON(errorsResponse{Errors: verr.Fields})
		case errors.Is(err, identity.ErrBadCredentials):
			return c.Status(http.StatusBadRequest).JSON(messageResponse{
				Error: messageError{Message: "No User Found"},
			})
		default:
			return h.serverError(c, "login", err)
		}
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return h.serverError(c, "issue token", err)
	}

	return c.Status(http.StatusCreated).JSON(tokenResponse{Success: true, AuthToken: token})
}

// GetUser returns the public fields of the caller resolved by the auth
// middleware. A dangling token (user deleted since issuance) is an
// authentication failure, not an empty success.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	userID, _ := c.Locals(UserIDKey).(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing authenticated user")
	}

	user, err := h.ids.GetByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return h.serverError(c, "get user", err)
	}

	return c.Status(http.StatusOK).JSON(userResponse{User: publicUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	}})
}

// serverError logs the failure with detail and answers with a generic
// body; infrastructure errors never reach the client verbatim.
func (h *Handler) serverError(c *fiber.Ctx, op string, err error) error {
	if h.logger != nil {
		h.logger.Error(op+" failed", "error", err, "path", c.Path())
	}
	return c.Status(http.StatusInternalServerError).JSON(messageResponse{
		Error: messageError{Message: "internal server error"},
	})
}
