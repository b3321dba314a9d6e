package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/maplorix/jobboard-service/internal/api/dto"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func respondMessage(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func respondList(c *fiber.Ctx, items any, total int64, limit, offset int) error {
	return respondData(c, fiber.StatusOK, dto.ListEnvelope{
		Items: items,
		Pagination: dto.Pagination{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	})
}

// requireUUIDParam validates :id-style params up front so malformed ids come
// back as 400 instead of a driver error.
func requireUUIDParam(c *fiber.Ctx, name string) (string, error) {
	value := c.Params(name)
	if _, err := uuid.Parse(value); err != nil {
		return "", apperrors.NewValidationError("invalid "+name+" parameter", nil)
	}
	return value, nil
}

func parseIntQuery(c *fiber.Ctx, name string, fallback int) int {
	value := c.Query(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// parseInt64Query keeps only digits before parsing so values like "50,000"
// or "₹80000" still filter.
func parseInt64Query(c *fiber.Ctx, name string) *int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, c.Query(name))
	if digits == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseBoolQuery(c *fiber.Ctx, name string) *bool {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}

// parseTimeQuery accepts RFC3339 timestamps or bare dates.
func parseTimeQuery(c *fiber.Ctx, name string) *time.Time {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
	}
	if err != nil {
		return nil
	}
	return &parsed
}

func stringQuery(c *fiber.Ctx, name string) *string {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		return nil
	}
	return &value
}

// pageParams clamps limit/offset to sane bounds.
func pageParams(c *fiber.Ctx) (int, int) {
	limit := parseIntQuery(c, "limit", 10)
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := parseIntQuery(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func sortParams(c *fiber.Ctx) (string, bool) {
	sortBy := c.Query("sortBy", "createdAt")
	order := strings.ToLower(c.Query("sortOrder", "desc"))
	return sortBy, order != "asc"
}
