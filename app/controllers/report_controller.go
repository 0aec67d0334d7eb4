package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ShopLedger/internal/pkg/metrics/counter"
)

// HandleGatingCounters reports upgrade prompts and gate denials per feature.
// With ?drain=true the counters are reset after reading.
func HandleGatingCounters(c *fiber.Ctx) error {
	read := counter.Read
	if c.QueryBool("drain") {
		read = counter.Drain
	}

	counts, err := read(c.UserContext())
	if err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, counts, "")
}
