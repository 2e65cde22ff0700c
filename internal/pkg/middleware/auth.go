package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuscare-app/CampusCare/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in session and returns JSON 401 otherwise.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}

// RequireAdmin ensures a logged-in administrator and returns JSON 401/403 otherwise.
func RequireAdmin(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)
	if !uctx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	if !uctx.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "administrator access required",
		})
	}
	return c.Next()
}
