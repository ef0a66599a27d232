package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/config"
	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/fsx/fsxapi"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/auth"
	"github.com/0Omaaar/iRecruitApp/pkg/logx"
	"github.com/0Omaaar/iRecruitApp/pkg/metricx"
	"github.com/0Omaaar/iRecruitApp/pkg/ratelimit"
	"github.com/0Omaaar/iRecruitApp/recruitment/application/applicationapi"
	"github.com/0Omaaar/iRecruitApp/recruitment/export/exportapi"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer/jobofferapi"
	"github.com/0Omaaar/iRecruitApp/recruitment/session/sessionapi"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche/trancheapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Configuration and logger
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.SetJSON(cfg.LogJSON)
	logx.Info("Starting iRecruit API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "iRecruit API",
		DisableStartupMessage: true,
		BodyLimit:             25 * 1024 * 1024,
		ErrorHandler:          globalErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(container.Metrics.Middleware())

	// 5. Health Check and metrics
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.ExportQueue.Ping(c.Context()) == nil,
		})
	})
	app.Get(metricx.MetricsPath, container.Metrics.Handler())

	// 6. Register Routes
	loginLimiter := ratelimit.Middleware(container.LoginLimiter, "login", ratelimit.ByUserOrIP)
	submitLimiter := ratelimit.Middleware(container.SubmitLimiter, "apply", ratelimit.ByUserOrIP)

	// /api/auth/login
	auth.RegisterRoutes(app, container.AuthHandlers, container.AuthMiddleware, loginLimiter)

	// /uploads/*
	fsxapi.RegisterRoutes(app, container.UploadHandlers)

	// --- Recruitment Routes ---
	jobofferapi.RegisterRoutes(app, container.JobOfferHandlers, container.AuthMiddleware)
	sessionapi.RegisterRoutes(app, container.SessionHandlers, container.AuthMiddleware)
	trancheapi.RegisterRoutes(app, container.TrancheHandlers, container.AuthMiddleware)
	// /api/application/tranche/:trancheId/export, /api/exports/:id
	exportapi.RegisterRoutes(app, container.ExportHandlers, container.AuthMiddleware)
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware, submitLimiter)

	// 7. Background export workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	container.ExportWorker.Start(workerCtx)

	// 8. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	stopWorkers()
	container.ExportWorker.Wait()

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	// If it's our custom errx.Error
	if xe, ok := errx.As(err); ok {
		if xe.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Error("request failed",
				"method", c.Method(), "path", c.Path(), "code", xe.Code, "error", xe.Error())
		}
		return c.Status(xe.HTTPStatus).JSON(xe.ToHTTPResponse())
	}

	// Default unknown error
	logx.Error("Internal Server Error", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
