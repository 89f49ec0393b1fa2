package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/interview-simulator/internal/config"
	"alfredoptarigan/interview-simulator/internal/handlers"
	"alfredoptarigan/interview-simulator/internal/repositories"
	"alfredoptarigan/interview-simulator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	kvStore := repositories.NewKVStore(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	codec := services.NewAttachmentCodec()
	resumeParser := services.NewResumeParserService()
	setupStore := services.NewSetupStore(kvStore, codec)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiClient, err := services.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize interview service
	interviewService := services.NewInterviewService(geminiClient)
	log.Println("✅ Interview service initialized")

	// Initialize Handlers
	setupHandler := handlers.NewSetupHandler(
		setupStore,
		codec,
		resumeParser,
		cfg.Storage.MaxFileSize,
	)
	interviewHandler := handlers.NewInterviewHandler(
		interviewService,
		setupStore,
		codec,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview Simulator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Setup endpoints
	api.Post("/setup", setupHandler.HandleSave)
	api.Get("/setup", setupHandler.HandleGet)
	api.Delete("/setup", setupHandler.HandleClear)

	// Interview endpoints
	api.Post("/interview/start", interviewHandler.HandleStart)
	api.Post("/interview/send", interviewHandler.HandleSend)
	api.Post("/interview/auto-reply", interviewHandler.HandleAutoReply)
	api.Get("/interview/history", interviewHandler.HandleHistory)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview Simulator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/setup",
				"GET /api/v1/setup",
				"DELETE /api/v1/setup",
				"POST /api/v1/interview/start",
				"POST /api/v1/interview/send",
				"POST /api/v1/interview/auto-reply",
				"GET /api/v1/interview/history",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
