package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"recon-planner-service/internal/adapters/repositories"
	"recon-planner-service/internal/adapters/storage"
	"recon-planner-service/internal/api"
	"recon-planner-service/internal/config"
	"recon-planner-service/internal/domain"
	"recon-planner-service/internal/migrations"
	"recon-planner-service/internal/platform/db"
	"recon-planner-service/internal/ports"
	"recon-planner-service/internal/services"
	"recon-planner-service/internal/state"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Postgres, Redis) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// The place catalog always lives in the local SQLite file, regardless of
	// which backend holds mission state.
	sqliteDB, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	if err := migrations.Run(sqliteDB); err != nil {
		log.Fatal(err)
	}
	if err := repositories.SeedFromJSON(sqliteDB, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	placeRepo := repositories.NewSqlitePlaceRepository(sqliteDB)
	places, err := placeRepo.ListPlaces(ctx)
	if err != nil {
		log.Fatal(err)
	}
	catalog := domain.Catalog(places)

	kv, cleanup, err := openKVStore(cfg, sqliteDB)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	store := state.NewMissionStore(ctx, kv)
	defer store.Close()

	weather := services.NewWeatherSim(nil)
	go weather.Run(ctx, cfg.WeatherInterval)

	router := api.NewRouter(store, catalog, weather)

	log.Printf("Server listening addr=%s backend=%s places=%d", cfg.HTTPAddr, cfg.StorageBackend, len(catalog))
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := sqliteDB.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqliteDB, nil
}

// openKVStore selects the mission state backend. The returned cleanup closes
// any connection opened here; the shared SQLite handle is closed by main.
func openKVStore(cfg *config.Config, sqliteDB *sql.DB) (ports.KeyValueStore, func(), error) {
	switch cfg.StorageBackend {
	case "sqlite":
		return storage.NewSqliteKVStore(sqliteDB), func() {}, nil

	case "postgres":
		pgDB, err := db.Open(cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewSQLKVStore(pgDB), func() { pgDB.Close() }, nil

	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("verify redis connection: %w", err)
		}
		return storage.NewRedisKVStore(client), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
