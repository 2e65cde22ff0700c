package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/campuscare-app/CampusCare/app/controllers"
	"github.com/campuscare-app/CampusCare/app/repository"
	"github.com/campuscare-app/CampusCare/internal/pkg/middleware"
	"github.com/campuscare-app/CampusCare/internal/pkg/notify"
	"github.com/campuscare-app/CampusCare/internal/pkg/session"
	"github.com/campuscare-app/CampusCare/internal/pkg/storage"
)

type ApiRouter struct {
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.initializeControllers()

	api := app.Group("/api", limiter.New(limiter.Config{
		Max: 120,
	}))
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "CampusCare API"})
	})

	v1 := api.Group("/v1")

	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleAuthRegister)
	auth.Post("/login", controllers.HandleAuthLogin)
	auth.Post("/logout", controllers.HandleAuthLogout)
	auth.Post("/reset-password", controllers.HandleAuthResetPassword)
	auth.Post("/reset-password/confirm", controllers.HandleAuthResetPasswordConfirm)

	// everything below requires a session
	authed := v1.Group("", middleware.RequireAuth)

	authed.Get("/users/me", controllers.HandleGetProfile)
	authed.Put("/users/me", controllers.HandleUpdateProfile)

	authed.Post("/reports", controllers.HandleCreateReport)
	authed.Get("/reports", controllers.HandleListReports)
	authed.Get("/reports/:id", controllers.HandleGetReport)
	authed.Delete("/reports/:id", controllers.HandleDeleteReport)
	authed.Patch("/reports/:id/status", middleware.RequireAdmin, controllers.HandleUpdateReportStatus)

	authed.Post("/reports/:id/comments", controllers.HandleCreateComment)
	authed.Get("/reports/:id/comments", controllers.HandleListComments)

	authed.Get("/notifications", controllers.HandleListNotifications)
	authed.Post("/notifications/read", controllers.HandleMarkNotificationsRead)

	authed.Get("/storage/health", controllers.HandleStorageHealth)
	authed.Get("/events", controllers.HandleEvents)

	admin := v1.Group("/admin", middleware.RequireAuth, middleware.RequireAdmin)
	admin.Get("/insights", controllers.HandleAdminInsights)
	admin.Get("/dashboard", controllers.HandleAdminDashboard)
	admin.Get("/users", controllers.HandleAdminListUsers)

	// JSON 404 for anything under /api
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "no such endpoint",
		})
	})
}

func (h ApiRouter) initializeControllers() {
	factory := repository.GetGlobalFactory()

	var uploader controllers.Uploader
	var prober controllers.BucketProber
	if client := storage.GetClient(); client != nil {
		uploader = client
		prober = client
	}

	controllers.InitializeReportController(
		factory.GetReportStore(),
		uploader,
		notify.GetDispatcher(),
		factory.GetCommentRepository(),
		factory.GetNotificationRepository(),
	)
	controllers.InitializeStorageController(prober)
}
