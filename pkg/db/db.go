// Package db opens the service database connection.
package db

import (
	"context"

	"github.com/anish-1308/ibilling/internal/config"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to Postgres using the configured DSN.
func Open(cfg config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}
	conn, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

var Module = fx.Module("db",
	fx.Provide(Open),
	fx.Invoke(func(lc fx.Lifecycle, conn *gorm.DB) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				sqlDB, err := conn.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
	}),
)
