// Package inventory reads hardware assets and their peripherals from an OCS
// Inventory database.
package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/siati/actas-go/pkg/actas/config"
)

// DSN builds the driver connection string for cfg.
func DSN(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
		if cfg.Params != "" {
			dsn += "&" + cfg.Params
		}
		return dsn, nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
		if cfg.Params != "" {
			dsn += " " + cfg.Params
		}
		return dsn, nil
	case "sqlite":
		dsn := cfg.Path
		if cfg.Params != "" {
			dsn += "?" + cfg.Params
		}
		return dsn, nil
	}
	return "", fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, cfg.Driver)
}

func dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

// Connect opens the inventory database and verifies it answers. The pool is
// limited to a single connection so all queries share one handle.
func Connect(ctx context.Context, cfg config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Silent
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to reach %s database: %w", cfg.Driver, err)
	}

	return db, nil
}

// Open connects to the database and returns a Store using policy.
func Open(ctx context.Context, cfg config.DatabaseConfig, policy config.InventoryConfig, log *zap.Logger, debug bool) (*Store, error) {
	db, err := Connect(ctx, cfg, debug)
	if err != nil {
		return nil, err
	}
	return NewStore(db, policy, log), nil
}
