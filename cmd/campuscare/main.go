package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/campuscare-app/CampusCare/app/repository"
	"github.com/campuscare-app/CampusCare/internal/pkg/cache"
	"github.com/campuscare-app/CampusCare/internal/pkg/database"
	"github.com/campuscare-app/CampusCare/internal/pkg/docstore"
	"github.com/campuscare-app/CampusCare/internal/pkg/env"
	"github.com/campuscare-app/CampusCare/internal/pkg/notify"
	"github.com/campuscare-app/CampusCare/internal/pkg/router"
	"github.com/campuscare-app/CampusCare/internal/pkg/storage"
)

func main() {
	app := NewApplication()
	defer notify.Shutdown()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	docstore.SetupDocStore()
	cache.SetupCache()
	storage.Setup(context.Background())

	notify.Setup(repository.GetGlobalFactory().GetNotificationRepository())

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // room for one report photo
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
