package main

import (
	"database/sql"
	"flag"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/infrastructure/config"
	"github.com/shopbooks/backend/internal/infrastructure/logger"
	"github.com/shopbooks/backend/internal/infrastructure/migration"
)

func main() {
	var (
		direction = flag.String("direction", "up", "migration direction: up, down or steps")
		steps     = flag.Int("steps", 0, "number of steps when direction=steps (negative rolls back)")
		path      = flag.String("path", "migrations", "path to migration files")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer logger.Sync(log)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	migrator, err := migration.New(db, *path, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}

	switch *direction {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		err = migrator.Steps(*steps)
	default:
		log.Error("Unknown direction", zap.String("direction", *direction))
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		log.Warn("Could not read schema version", zap.Error(err))
		return
	}
	log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
