package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/ShopLedger/internal/pkg/session"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the user context for every request from the
// session. Requests without a valid session continue as anonymous.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		log.Warnf("[Session] could not load session: %v", err)
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	authenticated, _ := sess.Get(usercontext.AuthKey).(bool)
	userID, _ := sess.Get(usercontext.KeyUserID).(uint)
	if !authenticated || userID == 0 {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	username, _ := sess.Get(usercontext.KeyUsername).(string)
	country, _ := sess.Get(usercontext.KeyCountryCode).(string)
	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:      userID,
		Username:    username,
		CountryCode: country,
		IsLoggedIn:  true,
	})
	return c.Next()
}
