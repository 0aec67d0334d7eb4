package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey        = "authenticated"
	KeyUserID      = "user_id"
	KeyUsername    = "username"
	KeyCountryCode = "country_code"

	localsKey = "USER_CONTEXT"
)
