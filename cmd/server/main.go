package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/shopsense/server/internal/auth"
	"github.com/shopsense/server/internal/avatar"
	"github.com/shopsense/server/internal/config"
	"github.com/shopsense/server/internal/dashboard"
	"github.com/shopsense/server/internal/database"
	"github.com/shopsense/server/internal/logger"
	"github.com/shopsense/server/internal/mail"
	"github.com/shopsense/server/internal/profile"
	"github.com/shopsense/server/internal/user"
	"github.com/shopsense/server/internal/wishlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slogger := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Database
	db := database.Connect(cfg.DatabaseURL)
	database.AutoMigrate(db,
		&user.User{},
		&auth.PasswordReset{},
	)

	// Repositories
	userRepo := user.NewRepository(db)
	resetRepo := auth.NewResetRepository(db)

	// Collaborators
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	google := auth.NewGoogleProvider()
	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	// Avatar storage (only if configured)
	var avatars profile.AvatarStorage
	if cfg.S3.Endpoint != "" {
		storage, err := avatar.NewStorage(context.Background(), avatar.Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			PublicURL: cfg.S3.PublicURL,
			UseSSL:    cfg.S3.UseSSL,
		}, slogger)
		if err != nil {
			log.Fatalf("failed to init avatar storage: %v", err)
		}
		avatars = storage
	}

	// Services
	authService := auth.NewService(userRepo, resetRepo, tokens, google, mailer, cfg.ClientURL)
	profileService := profile.NewService(userRepo)
	wishlistService := wishlist.NewService(userRepo)
	dashboardService := dashboard.NewService(userRepo)

	// Handlers
	authHandler := auth.NewHandler(authService)
	profileHandler := profile.NewHandler(profileService, avatars)
	wishlistHandler := wishlist.NewHandler(wishlistService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 6 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Public routes
	api := app.Group("/api")
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/google", authHandler.GoogleLogin)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password/:token", authHandler.ResetPassword)

	// Protected routes
	protected := api.Group("", auth.JWTMiddleware(cfg.JWTSecret))
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	profileGroup := protected.Group("/profile")
	profileGroup.Get("/", profileHandler.Get)
	profileGroup.Put("/", profileHandler.Update)
	if avatars != nil {
		profileGroup.Post("/avatar", profileHandler.UploadAvatar)
	}

	wishlistGroup := protected.Group("/wishlist")
	wishlistGroup.Get("/", wishlistHandler.Get)
	wishlistGroup.Post("/", wishlistHandler.Add)
	wishlistGroup.Delete("/:productId", wishlistHandler.Remove)

	dashboardGroup := protected.Group("/dashboard")
	dashboardGroup.Get("/", dashboardHandler.Get)
	dashboardGroup.Post("/search", dashboardHandler.AddSearch)
	dashboardGroup.Post("/product-view", dashboardHandler.AddProductView)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	slogger.Info("server starting", "port", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
