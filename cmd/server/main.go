package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"fleet_admin/internal/config"
	"fleet_admin/internal/controllers"
	"fleet_admin/internal/history"
	"fleet_admin/internal/images"
	"fleet_admin/internal/logger"
	"fleet_admin/internal/repository"
	"fleet_admin/internal/routes"
	"fleet_admin/internal/services"
	"fleet_admin/internal/storage"
)

func main() {
	// Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	// Initialize structured logging to file
	logger.Setup()

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect to the database
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Object storage for entity images
	store, err := storage.NewS3Store(context.Background(), storage.Config{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Deletion history lives for the process lifetime only
	deletions := history.NewLog()

	busService := &services.BusService{
		Repo:    repository.NewBusRepository(db),
		Images:  &images.Lifecycle{Store: store, Bucket: cfg.Storage.BusBucket},
		History: deletions,
	}
	stationService := &services.StationService{
		Repo:    repository.NewStationRepository(db),
		Images:  &images.Lifecycle{Store: store, Bucket: cfg.Storage.StationBucket},
		History: deletions,
	}

	r := routes.SetupRouter(
		&controllers.BusController{Service: busService},
		&controllers.StationController{Service: stationService},
		&controllers.HistoryController{Log: deletions},
	)

	log.Printf("🚀 Server running at :%s", cfg.Server.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Server.Port, r))
}
