package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storelaunch", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "storelaunch.db", cfg.Database.Path)
		assert.Equal(t, 1, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Auth.BcryptCost)
		assert.Equal(t, 6, cfg.Auth.MinPasswordLen)
		assert.True(t, cfg.Auth.ExposeDevToken)
		assert.Equal(t, "none", cfg.Translation.Provider)
		assert.Equal(t, "local", cfg.Storage.Driver)
		assert.Equal(t, "@every 1h", cfg.Scheduler.TokenCleanupSpec)
	})

	t.Run("loads values from environment variables with STORELAUNCH prefix", func(t *testing.T) {
		t.Setenv("STORELAUNCH_APP_NAME", "test-app")
		t.Setenv("STORELAUNCH_APP_PORT", "9000")
		t.Setenv("STORELAUNCH_DATABASE_DRIVER", "postgres")
		t.Setenv("STORELAUNCH_DATABASE_HOST", "testdb.local")
		t.Setenv("STORELAUNCH_DATABASE_PORT", "5433")
		t.Setenv("STORELAUNCH_DATABASE_DBNAME", "launch")
		t.Setenv("STORELAUNCH_TRANSLATION_PROVIDER", "mymemory")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "mymemory", cfg.Translation.Provider)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		t.Setenv("STORELAUNCH_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("dev token can be disabled explicitly", func(t *testing.T) {
		t.Setenv("STORELAUNCH_AUTH_EXPOSE_DEV_TOKEN", "false")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Auth.ExposeDevToken)
	})
}

func TestValidate_Production(t *testing.T) {
	base := func() *Config {
		cfg := &Config{App: AppConfig{Env: "production"}}
		applyDefaults(cfg)
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.AllowSQLiteProd = true
		return cfg
	}

	t.Run("valid production config", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWT.Secret = "short"
		assert.ErrorContains(t, cfg.validate(), "at least 32 characters")
	})

	t.Run("sqlite without opt-in", func(t *testing.T) {
		cfg := base()
		cfg.Database.AllowSQLiteProd = false
		assert.ErrorContains(t, cfg.validate(), "allow_sqlite_in_production")
	})

	t.Run("wildcard cors", func(t *testing.T) {
		cfg := base()
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.ErrorContains(t, cfg.validate(), "cors_allow_origins")
	})

	t.Run("dev token exposed", func(t *testing.T) {
		cfg := base()
		cfg.Auth.ExposeDevToken = true
		assert.ErrorContains(t, cfg.validate(), "expose_dev_token")
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Driver = "s3"
		assert.ErrorContains(t, cfg.validate(), "storage.bucket")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		d := DatabaseConfig{Driver: DriverSQLite, Path: "launch.db"}
		assert.Equal(t, "launch.db?_foreign_keys=on&_busy_timeout=5000", d.DSN())
		assert.Equal(t, "sqlite3://launch.db?_foreign_keys=on&_busy_timeout=5000", d.MigrateURL())
	})

	t.Run("postgres escapes credentials", func(t *testing.T) {
		d := DatabaseConfig{
			Driver:   DriverPostgres,
			Host:     "db",
			Port:     5432,
			User:     "launch",
			Password: "p@ss word",
			DBName:   "storelaunch",
			SSLMode:  "require",
		}
		assert.Equal(t, "postgres://launch:p%40ss%20word@db:5432/storelaunch?sslmode=require", d.DSN())
		assert.Equal(t, d.DSN(), d.MigrateURL())
	})

	t.Run("url prefix is truncated", func(t *testing.T) {
		d := DatabaseConfig{Driver: DriverSQLite, Path: "/var/lib/storelaunch/production/launch.db"}
		assert.Equal(t, "/var/lib/storelaunch/productio...", d.URLPrefix())
	})
}
