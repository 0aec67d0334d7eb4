package controllers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ShopLedger/app/repository"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/geo"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/usercontext"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// GetClientIP returns the first X-Forwarded-For address, or "unknown".
func GetClientIP(c *fiber.Ctx) string {
	return geo.ClientIP(c.Get(fiber.HeaderXForwardedFor))
}

// RequestCountry picks the country used for pricing a request: the user's
// saved country when it has a catalog, otherwise the geolocated one.
func RequestCountry(c *fiber.Ctx, resolver *geo.Resolver) string {
	if cc := usercontext.GetUserContext(c).CountryCode; geo.IsSupported(cc) {
		return geo.Normalize(cc)
	}
	return resolver.Resolve(c.UserContext(), GetClientIP(c))
}

// parseBody decodes the JSON body into dst and runs struct validation. When it
// returns false the error response has already been written.
func parseBody(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return false, validationError(c, err)
	}
	return true, nil
}

func validationError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, "invalid input")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return ErrorWithData(c, fiber.StatusBadRequest, ErrCodeBadRequest, "validation failed", fiber.Map{"fields": fields})
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parsePeriod reads ?from=YYYY-MM-DD&to=YYYY-MM-DD. Both days are inclusive.
func parsePeriod(c *fiber.Ctx) (repository.Period, error) {
	var p repository.Period
	if from := c.Query("from"); from != "" {
		t, err := time.ParseInLocation(dateLayout, from, time.UTC)
		if err != nil {
			return p, errors.New("from must be YYYY-MM-DD")
		}
		p.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.ParseInLocation(dateLayout, to, time.UTC)
		if err != nil {
			return p, errors.New("to must be YYYY-MM-DD")
		}
		p.To = t.AddDate(0, 0, 1)
	}
	if !p.From.IsZero() && !p.To.IsZero() && !p.From.Before(p.To) {
		return p, errors.New("from must not be after to")
	}
	return p, nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// occurredOrNow returns t in UTC, or the current time when t is unset.
func occurredOrNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return nowUTC()
	}
	return t.UTC()
}
