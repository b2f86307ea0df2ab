package routes

import (
	"time"

	"esolve-collections/internal/adapters/http/handlers"
	"esolve-collections/internal/adapters/http/middleware"
	"esolve-collections/internal/config"
	"esolve-collections/internal/core/services"
	"esolve-collections/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
)

// dashboardCacheAge is how long browsers may reuse dashboard responses
const dashboardCacheAge = 30 * time.Second

// Dependencies are the services the routes are built on
type Dependencies struct {
	Config       *config.Config
	Auth         *services.AuthService
	Session      *services.SessionService
	Store        *services.DataStore
	Dashboard    *services.DashboardService
	Metrics      *metrics.Metrics
	HealthChecks map[string]handlers.HealthCheck
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Dependencies) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.Config, deps.HealthChecks)
	authHandler := handlers.NewAuthHandler(deps.Session, deps.Config)
	caseHandler := handlers.NewCaseHandler(deps.Store)
	agentHandler := handlers.NewAgentHandler(deps.Store)
	activityHandler := handlers.NewActivityHandler(deps.Store)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1", middleware.Metrics(deps.Metrics))
	apiV1.Get("/", healthHandler.APIInfo)

	authRoutes := apiV1.Group("/auth", middleware.NoCacheHeaders())
	setupAuthRoutes(authRoutes, authHandler, deps.Auth)

	protected := middleware.AuthMiddleware(deps.Auth)

	caseRoutes := apiV1.Group("/cases", protected)
	setupCaseRoutes(caseRoutes, caseHandler)

	agentRoutes := apiV1.Group("/agents", protected)
	setupAgentRoutes(agentRoutes, agentHandler)

	apiV1.Get("/activities", protected, activityHandler.ListActivities)
	apiV1.Get("/dashboard", protected, middleware.PrivateCacheHeaders(dashboardCacheAge), dashboardHandler.GetDashboard)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, h *handlers.AuthHandler, auth *services.AuthService) {
	router.Post("/login", middleware.AuthRateLimiter(), h.Login)
	router.Post("/logout", h.Logout)
	router.Get("/session", h.Session)
	router.Get("/me", middleware.AuthMiddleware(auth), h.Me)
}

// setupCaseRoutes configures case routes
func setupCaseRoutes(router fiber.Router, h *handlers.CaseHandler) {
	router.Get("/", h.ListCases)
	router.Get("/:id", h.GetCase)
	router.Patch("/:id", h.UpdateCase)
	router.Post("/:id/notes", h.AddNote)
	router.Put("/:id/status", h.UpdateStatus)
}

// setupAgentRoutes configures agent routes; writes are admin only
func setupAgentRoutes(router fiber.Router, h *handlers.AgentHandler) {
	router.Get("/", h.ListAgents)
	router.Get("/:id", h.GetAgent)
	router.Post("/", middleware.AdminOnly(), h.CreateAgent)
	router.Put("/:id", middleware.AdminOnly(), h.UpdateAgent)
	router.Delete("/:id", middleware.AdminOnly(), h.DeleteAgent)
}
