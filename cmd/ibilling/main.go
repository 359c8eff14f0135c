package main

import (
	"github.com/anish-1308/ibilling/internal/audit"
	"github.com/anish-1308/ibilling/internal/clock"
	"github.com/anish-1308/ibilling/internal/company"
	"github.com/anish-1308/ibilling/internal/config"
	"github.com/anish-1308/ibilling/internal/customer"
	"github.com/anish-1308/ibilling/internal/dashboard"
	"github.com/anish-1308/ibilling/internal/inventory"
	"github.com/anish-1308/ibilling/internal/invoice"
	"github.com/anish-1308/ibilling/internal/migration"
	"github.com/anish-1308/ibilling/internal/observability"
	"github.com/anish-1308/ibilling/internal/scheduler"
	"github.com/anish-1308/ibilling/internal/seed"
	"github.com/anish-1308/ibilling/internal/server"
	"github.com/anish-1308/ibilling/internal/supplier"
	"github.com/anish-1308/ibilling/internal/tour"
	"github.com/anish-1308/ibilling/internal/travelservice"
	"github.com/anish-1308/ibilling/internal/user"
	"github.com/anish-1308/ibilling/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		fx.Invoke(func(conn *gorm.DB, log *zap.Logger) error {
			if err := migration.Run(conn, log); err != nil {
				return err
			}
			return seed.EnsureDefaults(conn)
		}),
		audit.Module,
		customer.Module,
		supplier.Module,
		tour.Module,
		travelservice.Module,
		inventory.Module,
		user.Module,
		company.Module,
		invoice.Module,
		dashboard.Module,
		server.Module,
		scheduler.Module,
	)
	app.Run()
}
