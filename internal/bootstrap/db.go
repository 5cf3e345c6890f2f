package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/accessguide/accessguide-backend/config"
	"github.com/accessguide/accessguide-backend/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	dbConnectTimeout = 5 * time.Second
	dbPingTimeout    = 2 * time.Second
)

// OpenPostgres opens the pgx pool used by the sitemap archive and checks it
// with a ping before returning.
func OpenPostgres(ctx context.Context, dc *config.DatabaseConfig) (*pgxpool.Pool, error) {
	if !dc.Enabled() {
		return nil, errors.New("database is not configured (set DB_DSN or DB_HOST)")
	}

	pc, err := pgxpool.ParseConfig(dc.DSNString())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if dc.MaxConns > 0 {
		pc.MaxConns = int32(dc.MaxConns)
	}
	pc.MaxConnIdleTime = 5 * time.Minute
	pc.HealthCheckPeriod = 30 * time.Second

	cctx, cancel := context.WithTimeout(ctx, dbConnectTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(cctx, pc)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, dbPingTimeout)
	defer pcancel()
	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	logging.L().Info("postgres pool ready",
		zap.String("host", pc.ConnConfig.Host),
		zap.String("database", pc.ConnConfig.Database),
		zap.Int32("max_conns", pc.MaxConns))
	return pool, nil
}
