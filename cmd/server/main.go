package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/security-scanner/dashboard/internal/api/handlers"
	"github.com/security-scanner/dashboard/internal/api/middleware"
	"github.com/security-scanner/dashboard/internal/client"
	"github.com/security-scanner/dashboard/internal/dashboard"
	"github.com/security-scanner/dashboard/internal/notify"
	"github.com/security-scanner/dashboard/internal/view"
	"github.com/security-scanner/dashboard/pkg/config"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logrus.Info("Starting VAPT Dashboard Service")
	logrus.Infof("Environment: %s", cfg.Environment)
	logrus.Infof("Backend: %s", cfg.BackendURL)

	notes := notify.New()
	api := client.New(cfg.BackendURL, cfg.APIKey, notes)
	doc := view.NewDocument()
	charts := view.NewChartRenderer()
	ctrl := dashboard.New(api, notes, doc, charts)

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ctrl.Init(initCtx)
	cancel()

	scheduler := dashboard.NewScheduler(
		time.Duration(cfg.PollInterval)*time.Second,
		func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			ctrl.Refresh(ctx)
		},
	)
	scheduler.Start()

	engine := html.New("./web/templates", ".html")
	app := fiber.New(fiber.Config{
		AppName:      "VAPT Dashboard Service",
		ServerHeader: "VAPT-Dashboard",
		Views:        engine,
		ViewsLayout:  "layouts/main",
	})

	app.Use(recover.New())
	app.Use(middleware.Logger())

	vaptHandler := handlers.NewVaptHandler(api)
	uiHandler := handlers.NewUIHandler(ctrl, notes)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("pages/dashboard", fiber.Map{
			"Title":    "VAPT Dashboard",
			"Sections": dashboard.Sections,
			"Error":    c.Query("error"),
			"Status":   c.Query("status"),
		})
	})

	app.Post("/vapt/scan", vaptHandler.StartScan)
	app.Get("/vapt/scan/:id", vaptHandler.GetScan)
	app.Get("/vapt/scan/:id/report", vaptHandler.DownloadReport)

	ui := app.Group("/ui")
	ui.Post("/section/:name", uiHandler.ShowSection)
	ui.Get("/section/:name", uiHandler.GetSection)
	ui.Get("/notifications", uiHandler.Notifications)
	ui.Post("/search", uiHandler.Search)
	ui.Post("/scans", uiHandler.StartScan)
	ui.Get("/scans/:id/modal", uiHandler.ScanModal)
	ui.Get("/scans/:id/logs", uiHandler.LogsModal)
	ui.Post("/modal/dismiss", uiHandler.DismissModal)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "vapt-dashboard",
			"version": "1.0.0",
		})
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logrus.Info("Shutting down")
		scheduler.Stop()
		_ = app.Shutdown()
	}()

	logrus.Infof("Dashboard listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start dashboard: %v", err)
	}
}
