// Command storectl runs one-off operational tasks against the configured
// database: admin bootstrap, reference data seeding and cleanup.
package main

import (
	"os"

	"github.com/storelaunch/backend/internal/infrastructure/config"
	"github.com/storelaunch/backend/internal/infrastructure/logger"
	"github.com/storelaunch/backend/internal/infrastructure/persistence"
)

func main() {
	if err := newRootCmd(openFromConfig).Execute(); err != nil {
		os.Exit(1)
	}
}

// openFromConfig loads the server configuration and connects to its database
func openFromConfig() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return nil, err
	}
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel("warn"))))
	if err != nil {
		return nil, err
	}
	return &env{db: db, log: log, bcryptCost: cfg.Auth.BcryptCost}, nil
}
