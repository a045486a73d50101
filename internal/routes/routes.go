package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/praharilabs/prahari-backend/internal/config"
	"github.com/praharilabs/prahari-backend/internal/handlers"
	"github.com/praharilabs/prahari-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	userHandler *handlers.UserHandler,
	statsHandler *handlers.StatsHandler,
	rewardHandler *handlers.RewardHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Liveness probes poll fast and stay outside the rate limiter.
	app.Get("/api/health", healthHandler.Check)

	api := app.Group("/api")

	// General API rate limiter: 100 req per 15 min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               100,
		Expiration:        15 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Auth — public, with a stricter limit: 10 attempts per 15 min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        15 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), middleware.RequireUser(db), authHandler.Logout)

	// Public feed and detail
	api.Get("/reports", reportHandler.List)
	api.Get("/reports/:id", reportHandler.Get)

	// Submission is authenticated and throttled: 20 reports per hour per IP
	reportLimiter := limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Hour,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/reports", reportLimiter, middleware.JWTProtected(cfg), middleware.RequireUser(db), reportHandler.Create)
	api.Post("/reports/:id/vote", middleware.JWTProtected(cfg), middleware.RequireUser(db), reportHandler.Vote)

	// Profile
	api.Get("/users/me", middleware.JWTProtected(cfg), middleware.RequireUser(db), userHandler.Me)
	api.Patch("/users/me", middleware.JWTProtected(cfg), middleware.RequireUser(db), userHandler.UpdateMe)

	// Leaderboard and aggregate stats
	api.Get("/leaderboard", statsHandler.Leaderboard)
	api.Get("/stats/national", statsHandler.National)

	// Rewards
	api.Post("/rewards/redeem", middleware.JWTProtected(cfg), middleware.RequireUser(db), rewardHandler.Redeem)
}
