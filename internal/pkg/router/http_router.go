package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"github.com/ManuelReschke/ShopLedger/app/controllers"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/env"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/middleware"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session unless a store was provided already (tests use memory)
	if session.GetSessionStore() == nil {
		session.NewSessionStore()
	}

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerMetricsRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerMetricsRoutes(app *fiber.App) {
	user := env.GetEnv("METRICS_USER", "admin")
	password := env.GetEnv("METRICS_PASSWORD", "")
	if password == "" {
		log.Warn("[Router] METRICS_PASSWORD is not set, /metrics is disabled")
		return
	}

	metrics := app.Group("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{user: password},
	}))
	metrics.Get("/gating", controllers.HandleGatingCounters)
	metrics.Get("/", monitor.New())
}
