package postgres

import (
	"github.com/accessguide/accessguide-backend/config"
)

// DSN returns the connection string for cfg.
func DSN(cfg *config.DatabaseConfig) string {
	return cfg.DSNString()
}
