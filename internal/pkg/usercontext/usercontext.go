package usercontext

import "github.com/gofiber/fiber/v2"

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID      uint   `json:"userId"`
	Username    string `json:"username"`
	CountryCode string `json:"countryCode"`
	IsLoggedIn  bool   `json:"isLoggedIn"`
}

// SetUserContext stores the user context for the rest of the request.
func SetUserContext(c *fiber.Ctx, uc UserContext) {
	c.Locals(localsKey, uc)
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if uc, ok := c.Locals(localsKey).(UserContext); ok {
		return uc
	}
	return UserContext{}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}
