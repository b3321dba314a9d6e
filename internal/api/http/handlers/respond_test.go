package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withQuery runs fn inside a request handler so the query helpers see a real
// fiber context.
func withQuery(t *testing.T, target string, fn func(c *fiber.Ctx)) {
	t.Helper()
	app := fiber.New()
	app.Get("/q", func(c *fiber.Ctx) error {
		fn(c)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	resp.Body.Close()
}

func TestParseTimeQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  *time.Time
	}{
		{"rfc3339", "createdFrom=2026-01-15T10:30:00Z",
			timePtr(time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC))},
		{"bare date", "createdFrom=2026-01-01",
			timePtr(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))},
		{"garbage", "createdFrom=yesterday", nil},
		{"missing", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			withQuery(t, "/q?"+tc.query, func(c *fiber.Ctx) {
				got := parseTimeQuery(c, "createdFrom")
				if tc.want == nil {
					assert.Nil(t, got)
					return
				}
				require.NotNil(t, got)
				assert.True(t, got.Equal(*tc.want))
			})
		})
	}
}

func TestParseInt64Query(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  *int64
	}{
		{"plain", "minSalary=80000", int64Ptr(80000)},
		{"thousands separator", "minSalary=50%2C000", int64Ptr(50000)},
		{"currency prefix", "minSalary=%E2%82%B91%2C20%2C000", int64Ptr(120000)},
		{"no digits", "minSalary=abc", nil},
		{"missing", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			withQuery(t, "/q?"+tc.query, func(c *fiber.Ctx) {
				got := parseInt64Query(c, "minSalary")
				if tc.want == nil {
					assert.Nil(t, got)
					return
				}
				require.NotNil(t, got)
				assert.Equal(t, *tc.want, *got)
			})
		})
	}
}

func TestPageParams_Clamped(t *testing.T) {
	withQuery(t, "/q?limit=500&offset=-3", func(c *fiber.Ctx) {
		limit, offset := pageParams(c)
		assert.Equal(t, 100, limit)
		assert.Equal(t, 0, offset)
	})
	withQuery(t, "/q", func(c *fiber.Ctx) {
		limit, offset := pageParams(c)
		assert.Equal(t, 10, limit)
		assert.Equal(t, 0, offset)
	})
}

func timePtr(t time.Time) *time.Time { return &t }
func int64Ptr(v int64) *int64        { return &v }
