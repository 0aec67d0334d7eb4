package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/ShopLedger/app/controllers"
	"github.com/ManuelReschke/ShopLedger/app/models"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/billing"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/geo"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/usercontext"
)

// RequireFeature lets the request through only when the caller's persisted
// subscription state grants feature. It must run after RequireAPISessionAuth.
// Entitlements are resolved on every request.
func RequireFeature(svc *billing.Service, resolver *geo.Resolver, feature models.Feature) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := usercontext.GetUserID(c)
		if userID == 0 {
			return controllers.Error(c, fiber.StatusUnauthorized, controllers.ErrCodeUnauthorized, "login required")
		}

		ent, err := svc.Entitlements(c.UserContext(), userID, controllers.RequestCountry(c, resolver))
		if err != nil {
			return controllers.InternalError(c, err)
		}
		if ent.IsFeatureEnabled(string(feature)) {
			return c.Next()
		}

		if err := counter.AddGateDenial(c.UserContext(), string(feature)); err != nil {
			log.Warnf("[Gate] could not count denial for %s: %v", feature, err)
		}
		return controllers.ErrorWithData(c, fiber.StatusForbidden, controllers.ErrCodeFeatureDisabled,
			"upgrade your plan to use this feature",
			fiber.Map{"feature": feature, "upgrade": true},
		)
	}
}
