package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/ShopLedger/app/models"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/billing"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/geo"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/usercontext"
)

// SubscriptionController serves the public catalog and the caller's
// subscription lifecycle.
type SubscriptionController struct {
	billing  *billing.Service
	resolver *geo.Resolver
}

func NewSubscriptionController(svc *billing.Service, resolver *geo.Resolver) *SubscriptionController {
	return &SubscriptionController{billing: svc, resolver: resolver}
}

type trialRequest struct {
	PricingID string `json:"pricingId" validate:"required,max=36"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type upgradePromptRequest struct {
	Feature string `json:"feature" validate:"required"`
}

// HandleCatalog returns plans and pricing for the country the request comes from.
func (sc *SubscriptionController) HandleCatalog(c *fiber.Ctx) error {
	country := sc.resolver.Resolve(c.UserContext(), GetClientIP(c))
	cat, err := sc.billing.Catalog(c.UserContext(), country)
	if err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, cat, "")
}

// HandlePlans returns plans and pricing for ?countryCode, detecting the
// country when the parameter is absent.
func (sc *SubscriptionController) HandlePlans(c *fiber.Ctx) error {
	country := geo.Normalize(c.Query("countryCode"))
	switch {
	case country == "":
		country = RequestCountry(c, sc.resolver)
	case !geo.IsSupported(country):
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, "unsupported countryCode")
	}

	cat, err := sc.billing.Catalog(c.UserContext(), country)
	if err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, cat, "")
}

// HandleStatus returns the caller's newest subscription, or null.
func (sc *SubscriptionController) HandleStatus(c *fiber.Ctx) error {
	sub, err := sc.billing.Status(c.UserContext(), usercontext.GetUserID(c))
	if err != nil {
		return InternalError(c, err)
	}

	data := fiber.Map{"subscription": nil, "pricing": nil, "plan": nil}
	if sub != nil {
		data["subscription"] = sub
		if sub.Pricing != nil {
			data["pricing"] = sub.Pricing
			data["plan"] = sub.Pricing.Plan
		}
	}
	return JSON(c, fiber.StatusOK, data, "")
}

// HandleFeatures returns the feature booleans the UI gates on.
func (sc *SubscriptionController) HandleFeatures(c *fiber.Ctx) error {
	ent, err := sc.billing.Entitlements(c.UserContext(), usercontext.GetUserID(c), RequestCountry(c, sc.resolver))
	if err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, ent, "")
}

func (sc *SubscriptionController) HandleStartTrial(c *fiber.Ctx) error {
	var req trialRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	sub, err := sc.billing.StartTrial(c.UserContext(), usercontext.GetUserID(c), req.PricingID)
	if err != nil {
		return billingError(c, err)
	}
	return JSON(c, fiber.StatusCreated, sub, "trial started")
}

func (sc *SubscriptionController) HandleCancel(c *fiber.Ctx) error {
	var req cancelRequest
	// the reason is optional, so is the body
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &req); !ok {
			return err
		}
	}

	sub, err := sc.billing.Cancel(c.UserContext(), usercontext.GetUserID(c), c.Params("id"), req.Reason)
	if err != nil {
		return billingError(c, err)
	}
	return JSON(c, fiber.StatusOK, sub, "subscription canceled")
}

// HandleUpgradePrompt records which gated feature the user clicked.
func (sc *SubscriptionController) HandleUpgradePrompt(c *fiber.Ctx) error {
	var req upgradePromptRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	feature, ok := models.ParseFeature(req.Feature)
	if !ok {
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, "unknown feature")
	}

	if err := counter.AddUpgradePrompt(c.UserContext(), string(feature)); err != nil {
		log.Warnf("[Subscription] could not count upgrade prompt for %s: %v", feature, err)
	}
	return JSON(c, fiber.StatusAccepted, fiber.Map{"feature": feature}, "recorded")
}

func billingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, billing.ErrValidation):
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, billing.ErrPricingNotFound):
		return Error(c, fiber.StatusNotFound, ErrCodeNotFound, "pricing not found")
	case errors.Is(err, billing.ErrSubscriptionNotFound):
		return Error(c, fiber.StatusNotFound, ErrCodeNotFound, "subscription not found")
	case errors.Is(err, billing.ErrForbidden):
		return Error(c, fiber.StatusForbidden, ErrCodeForbidden, "subscription belongs to another user")
	case errors.Is(err, billing.ErrSubscriptionExists):
		return Error(c, fiber.StatusConflict, ErrCodeConflict, "you already have an active subscription")
	default:
		return InternalError(c, err)
	}
}
