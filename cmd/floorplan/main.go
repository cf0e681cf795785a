package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"floorplan/internal/common/config"
	"floorplan/internal/common/middleware"
	"floorplan/internal/floorplan/capture"
	"floorplan/internal/floorplan/export"
	"floorplan/internal/floorplan/handlers"
	"floorplan/internal/floorplan/repository"
	"floorplan/internal/floorplan/storage"
	"floorplan/internal/floorplan/store"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Floor Plan Service
// ============================================================

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	opts := export.Options{RasterScale: cfg.RasterScale}
	manager := store.NewManager(context.Background(), repo, opts)
	manager.Subscribe(func(ev store.Event) {
		log.Printf("[STORE] %s %s", ev.Kind, ev.ProjectID)
	})

	fileStorage := storage.NewFileStorage(cfg.ExportDir)
	projectHandler := handlers.NewProjectHandler(manager, fileStorage, capture.StaticDevice(cfg.CaptureSupported))
	healthHandler := handlers.NewHealthHandler(repo)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Floor Plan Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", healthHandler.LivenessProbe)
	app.Get("/health/ready", healthHandler.ReadinessProbe)

	// ============================================================
	// Project Routes
	// ============================================================

	projectHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Floor Plan Service on %s (env: %s, db: %s, exports: %s)",
		addr, cfg.Environment, cfg.DBPath, cfg.ExportDir)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
