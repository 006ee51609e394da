package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/CristiGvl/picoMemStat/internal/platform"
	"github.com/CristiGvl/picoMemStat/internal/widget"
)

// Server represents the API server
type Server struct {
	app  *fiber.App
	stat *widget.Stat
}

// NewServer creates a new API server around a memory widget
func NewServer(stat *widget.Stat) (*Server, error) {
	// Validate platform support
	if err := platform.ValidateSupport(); err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: true,
		ServerHeader:          "picoMemStat",
		AppName:               "picoMemStat v1.0",
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "*",
		MaxAge:       86400, // 24 hours
	}))

	server := &Server{
		app:  app,
		stat: stat,
	}

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.app.Group("/api")

	api.Get("/memory", s.getMemory)
	api.Get("/memory/counters", s.getCounters)
	api.Post("/memory/click/:button", s.click)

	// Health check
	api.Get("/health", s.healthCheck)
}

// App exposes the fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the API server
func (s *Server) Start(address string) error {
	return s.app.Listen(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Health check endpoint
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"platform":  platform.GetOS(),
		"timestamp": time.Now().Unix(),
	})
}
