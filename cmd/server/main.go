package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"cleanframe/adapters/api"
	"cleanframe/adapters/postgres"
	"cleanframe/internal/config"
	"cleanframe/internal/errors"
	"cleanframe/internal/migration"
	"cleanframe/internal/session"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	opts := []api.Option{}
	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer db.Close()
		opts = append(opts, api.WithSnapshotRepository(postgres.NewSnapshotRepository(db)))
	} else {
		log.Println("DATABASE_URL not set, snapshot persistence disabled")
	}

	server := api.NewServer(session.Config{
		MaxNumCategories: appConfig.Session.MaxNumCategories,
	}, opts...)

	addr := ":" + appConfig.Server.Port
	log.Printf("[Server] listening on %s", addr)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}
