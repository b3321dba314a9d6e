package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maplorix/jobboard-service/internal/observability"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorMiddleware_TranslatesDomainErrors(t *testing.T) {
	app := newTestApp()
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return apperrors.NewForbidden("insufficient permissions for job.delete")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("job")
	})

	status, body := doRequest(t, app, "GET", "/forbidden")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, apperrors.KindForbidden, body["error"])
	assert.Equal(t, "insufficient permissions for job.delete", body["message"])

	status, body = doRequest(t, app, "GET", "/missing")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, apperrors.KindNotFound, body["error"])
}

func TestErrorMiddleware_ValidationDetails(t *testing.T) {
	app := newTestApp()
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("request validation failed", map[string]any{
			"Email": "must be a valid email address",
		})
	})

	status, body := doRequest(t, app, "GET", "/invalid")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apperrors.KindValidation, body["error"])

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email address", details["Email"])
}

func TestErrorMiddleware_PanicRecovered(t *testing.T) {
	app := newTestApp()
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	status, body := doRequest(t, app, "GET", "/panic")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, apperrors.KindServer, body["error"])
}

func TestErrorMiddleware_GenericErrorHidden(t *testing.T) {
	app := newTestApp()
	app.Get("/oops", func(c *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	status, body := doRequest(t, app, "GET", "/oops")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body["message"])
}
