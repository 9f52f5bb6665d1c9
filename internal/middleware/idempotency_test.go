package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cloudnote/cloudnote/internal/logging"
)

func setupIdempotentApp(t *testing.T) (*fiber.App, *atomic.Int64, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()

	var calls atomic.Int64
	app.Post("/register", Idempotency(cache, time.Minute, logging.Discard()), func(c *fiber.Ctx) error {
		calls.Add(1)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "attempt": calls.Load()})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, &calls, cleanup
}

func postWithKey(t *testing.T, app *fiber.App, key string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/register", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	app, calls, cleanup := setupIdempotentApp(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		if status, _ := postWithKey(t, app, ""); status != fiber.StatusCreated {
			t.Fatalf("expected 201, got %d", status)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls.Load())
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	app, calls, cleanup := setupIdempotentApp(t)
	defer cleanup()

	firstStatus, firstBody := postWithKey(t, app, "abc123")
	if firstStatus != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", firstStatus)
	}

	secondStatus, secondBody := postWithKey(t, app, "abc123")
	if secondStatus != firstStatus || secondBody != firstBody {
		t.Fatalf("replay differs: %d %q vs %d %q", firstStatus, firstBody, secondStatus, secondBody)
	}
	if calls.Load() != 1 {
		t.Fatalf("handler ran %d times, expected 1", calls.Load())
	}
}

func TestIdempotencyDistinctKeysRunSeparately(t *testing.T) {
	app, calls, cleanup := setupIdempotentApp(t)
	defer cleanup()

	postWithKey(t, app, "key-1")
	postWithKey(t, app, "key-2")

	if calls.Load() != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls.Load())
	}
}
