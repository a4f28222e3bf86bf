// @title           ARBEIT CRM Billing API
// @version         1.0
// @description     Invoice and batch payment API for the ARBEIT CRM backend

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/audit"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/clock"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/config"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/credentials"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/events"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/migration"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/notifier"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/observability/logger"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/reconcile"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/seed"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/server"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			if err := migration.Run(conn); err != nil {
				return err
			}
			if !cfg.IsProduction() && cfg.RecordStoreMode == config.RecordStoreModeLocal {
				return seed.EnsureDemoInvoices(conn)
			}
			return nil
		}),
		clock.Module,
		credentials.Module,
		events.Module,
		audit.Module,
		invoice.Module,
		reconcile.Module,
		notifier.Module,
		server.Module,
	)
	app.Run()
}
