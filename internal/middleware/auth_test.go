package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/cloudnote/cloudnote/internal/auth"
)

func setupAuthApp(t *testing.T, tokens *auth.TokenService) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", RequireAuth(tokens), func(c *fiber.Ctx) error {
		userID, _ := c.Locals(auth.UserIDKey).(string)
		return c.SendString(userID)
	})
	return app
}

func TestRequireAuthResolvesUserID(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	app := setupAuthApp(t, tokens)

	token, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireAuthRejectsInvalidCredentials(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	app := setupAuthApp(t, tokens)

	forged, err := auth.NewTokenService("other-secret").Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"garbage":        "Bearer not.a.token",
		"wrong key":      "Bearer " + forged,
	}
	for name, header := range cases {
		req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: app.Test: %v", name, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, resp.StatusCode)
		}
	}
}
