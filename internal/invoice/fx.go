package invoice

import (
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/config"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/credentials"
	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/repository"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/service"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/recordstore"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module wires the invoice service and the record store implementation
// selected by configuration: the local database or the upstream REST store.
var Module = fx.Module("invoice.service",
	fx.Provide(func(cfg config.Config, db *gorm.DB, creds *credentials.Store) invoicedomain.Repository {
		if cfg.RecordStoreMode == config.RecordStoreModeRemote {
			return recordstore.NewClient(recordstore.Config{
				BaseURL: cfg.RecordStoreBaseURL,
				Timeout: cfg.RecordStoreTimeout,
			}, creds)
		}
		return repository.Provide(db)
	}),
	fx.Provide(service.NewService),
)
