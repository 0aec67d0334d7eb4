package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ShopLedger/app/controllers"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/usercontext"
)

// RequireAPISessionAuth ensures a logged-in session for API routes and returns JSON 401 instead of redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return controllers.Error(c, fiber.StatusUnauthorized, controllers.ErrCodeUnauthorized, "login required")
	}
	return c.Next()
}
