package credentials

import (
	"os"
	"strings"

	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("credentials",
	fx.Provide(func(cfg config.Config) *Store {
		store := NewStore(cfg.CredentialTTL)
		if token := strings.TrimSpace(os.Getenv("RECORD_STORE_TOKEN")); token != "" {
			store.Put(token)
		}
		return store
	}),
)
