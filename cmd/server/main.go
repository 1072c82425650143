package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/anandamoyee/internal/config"
	"github.com/example/anandamoyee/internal/database"
	"github.com/example/anandamoyee/internal/otp"
	"github.com/example/anandamoyee/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload directory: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Anandamoyee Backend",
		BodyLimit:    50 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/uploads", cfg.UploadDir)

	otpStore := otp.NewStore(clock.New(), nil)
	go otpStore.RunSweeper(context.Background(), otp.SweepInterval)

	routes.Register(app, db, cfg, otpStore)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

// errorHandler renders every error as the {message} JSON shape the
// storefront client expects.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{"message": message})
}
