package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/ShopLedger/app/controllers"
	"github.com/ManuelReschke/ShopLedger/app/models"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/env"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/middleware"
)

type ApiRouter struct {
	deps *Dependencies
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", cors.New(), limiter.New(limiter.Config{
		Max: env.GetEnvInt("API_RATE_LIMIT", 120),
		LimitReached: func(c *fiber.Ctx) error {
			return controllers.Error(c, fiber.StatusTooManyRequests, controllers.ErrCodeTooManyRequests, "rate limit exceeded")
		},
	}))

	auth := controllers.NewAuthController(h.deps.Repos.User, h.deps.Resolver)
	api.Post("/auth/register", auth.HandleRegister)
	api.Post("/auth/login", auth.HandleLogin)
	api.Post("/auth/logout", middleware.RequireAPISessionAuth, auth.HandleLogout)

	profile := controllers.NewProfileController(h.deps.Repos.User)
	api.Get("/profile", middleware.RequireAPISessionAuth, profile.HandleGetProfile)
	api.Put("/profile", middleware.RequireAPISessionAuth, profile.HandleUpdateProfile)

	subs := controllers.NewSubscriptionController(h.deps.Billing, h.deps.Resolver)
	api.Get("/subscription", subs.HandleCatalog)
	api.Get("/plans", subs.HandlePlans)
	sub := api.Group("/subscriptions", middleware.RequireAPISessionAuth)
	sub.Get("/status", subs.HandleStatus)
	sub.Get("/features", subs.HandleFeatures)
	sub.Post("/trial", subs.HandleStartTrial)
	sub.Post("/upgrade-prompts", subs.HandleUpgradePrompt)
	sub.Post("/:id/cancel", subs.HandleCancel)

	sales := controllers.NewSaleController(h.deps.Repos.Sale)
	api.Get("/sales", middleware.RequireAPISessionAuth, sales.HandleList)
	api.Post("/sales", middleware.RequireAPISessionAuth, sales.HandleCreate)
	api.Delete("/sales/:id", middleware.RequireAPISessionAuth, sales.HandleDelete)

	h.registerGatedRoutes(api)
}

func (h ApiRouter) registerGatedRoutes(api fiber.Router) {
	gate := func(f models.Feature) fiber.Handler {
		return middleware.RequireFeature(h.deps.Billing, h.deps.Resolver, f)
	}
	authed := middleware.RequireAPISessionAuth

	expenses := controllers.NewExpenseController(h.deps.Repos.Expense)
	api.Get("/expenses/analytics", authed, gate(models.FeatureExpensesAnalytics), expenses.HandleAnalytics)
	api.Get("/expenses", authed, gate(models.FeatureExpenses), expenses.HandleList)
	api.Post("/expenses", authed, gate(models.FeatureExpenses), expenses.HandleCreate)
	api.Delete("/expenses/:id", authed, gate(models.FeatureExpenses), expenses.HandleDelete)

	credit := controllers.NewCreditController(h.deps.Repos.Debtor)
	api.Get("/debtors", authed, gate(models.FeatureCredit), credit.HandleListDebtors)
	api.Post("/debtors", authed, gate(models.FeatureCredit), credit.HandleCreateDebtor)
	api.Get("/debtors/:id/credits", authed, gate(models.FeatureCredit), credit.HandleListEntries)
	api.Post("/debtors/:id/credits", authed, gate(models.FeatureCredit), credit.HandleAddEntry)
	api.Get("/credit/report", authed, gate(models.FeatureCreditReports), credit.HandleReport)
}

func NewApiRouter(deps *Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}
