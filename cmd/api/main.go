package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/config"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/database"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/handlers"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	ws "github.com/chowanza/gestion-de-activos-imgc-sub000/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},

		// Organization
		&models.Company{},
		&models.Department{},
		&models.Location{},
		&models.Employee{},

		// Catalog
		&models.Brand{},
		&models.DeviceModel{},

		// Equipment
		&models.Computer{},
		&models.Device{},

		// Append-only history
		&models.AssignmentHistory{},
		&models.FieldModification{},
		&models.Intervention{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Start the invalidation hub
	hub := ws.NewHub()
	go hub.Run()

	// 5. Set up HTTP router
	router := handlers.NewRouter(db, cfg, hub)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// 6. Start server with graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Inventory API starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
