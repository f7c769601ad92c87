package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/threadup-app/backend/internal/config"
	"github.com/threadup-app/backend/internal/handlers"
	"github.com/threadup-app/backend/internal/middleware"
	"github.com/threadup-app/backend/internal/services"
	"gorm.io/gorm"
)

// Setup wires the route table. Paths are pinned to what the deployed clients
// already call, including the irregular ones (DELETE /delete/:id,
// GET /post/search).
func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	verifier services.TokenVerifier,
	postHandler *handlers.PostHandler,
	userHandler *handlers.UserHandler,
	moderationHandler *handlers.ModerationHandler,
	paymentHandler *handlers.PaymentHandler,
	tagHandler *handlers.TagHandler,
	announcementHandler *handlers.AnnouncementHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 120 req/min per IP.
	app.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	protected := middleware.Protected(verifier)
	admin := middleware.AdminRequired(db, cfg)

	// Liveness
	app.Get("/", healthHandler.Root)
	app.Get("/test", healthHandler.Test)
	app.Get("/health", healthHandler.Check)

	// Posts
	app.Post("/posts", protected, postHandler.Create)
	app.Get("/posts/:id", postHandler.GetByID)
	app.Get("/post/search", postHandler.Search)
	app.Get("/my-posts", protected, postHandler.MyPosts)
	app.Get("/three-posts", protected, postHandler.ThreePosts)
	app.Delete("/delete/:id", protected, postHandler.Delete)
	app.Patch("/posts/upvote/:id", protected, postHandler.Upvote)
	app.Patch("/posts/downvote/:id", protected, postHandler.Downvote)
	app.Post("/posts/:id/comments", protected, postHandler.AddComment)
	app.Get("/get-number", postHandler.Counts)

	// Tags
	app.Post("/tags", protected, admin, tagHandler.Create)
	app.Get("/tags", tagHandler.List)

	// Announcements
	app.Post("/announcements", protected, admin, announcementHandler.Create)
	app.Get("/announcements", announcementHandler.List)
	app.Get("/latest-announcement", announcementHandler.Latest)

	// Users
	app.Post("/users", userHandler.Register)
	app.Get("/user/:uid", userHandler.GetByUID)
	app.Get("/all-user", protected, admin, userHandler.ListAll)
	app.Post("/update-user", protected, userHandler.UpdateUser)
	app.Patch("/make-admin/:id", protected, admin, userHandler.MakeAdmin)
	app.Get("/user-post-count", protected, postHandler.UserPostCount)

	// Comment reports — intake gets a stricter limit so a single client
	// cannot flood the moderation queue.
	app.Post("/report-comment", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), protected, moderationHandler.ReportComment)
	app.Get("/reported-comments", protected, admin, moderationHandler.ListReports)
	app.Delete("/reported-comments/delete/:id", protected, admin, moderationHandler.DeleteComment)
	app.Delete("/reported-comments/:id", protected, admin, moderationHandler.KeepComment)

	// Payments — webhook authenticates by signature, not bearer token.
	app.Post("/create-payment-intent", protected, paymentHandler.CreateIntent)
	app.Post("/webhooks/stripe", paymentHandler.HandleStripeWebhook)
}
