package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/ShopLedger/app/repository"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/billing"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/env"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/geo"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies holds the services the handlers are built from.
type Dependencies struct {
	Billing  *billing.Service
	Resolver *geo.Resolver
	Repos    *repository.Repositories
}

// NewDependencies wires the production services on top of db and the shared
// Redis client.
func NewDependencies(db *gorm.DB) *Dependencies {
	geoCache := geo.NewRedisCache(env.GetEnvDuration("GEOIP_CACHE_TTL", 6*time.Hour))
	return &Dependencies{
		Billing:  billing.NewServiceFromDB(db),
		Resolver: geo.NewResolver(geo.NewIPAPIClientFromEnv(), geoCache),
		Repos:    repository.NewRepositories(db),
	}
}

func InstallRouter(app *fiber.App, deps *Dependencies) {
	// HttpRouter sets up the session store and the UserContext middleware the
	// API routes depend on, so it goes first.
	setup(app, NewHttpRouter(), NewApiRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
