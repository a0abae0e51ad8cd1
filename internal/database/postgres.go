package database

import (
	"context"
	"fmt"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPostgresPool creates and validates a PostgreSQL connection pool.
// Sessions run in the school's timezone so DATE columns (attendance, leaves,
// due dates) are compared against the local calendar day.
func NewPostgresPool(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxDBConns
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "schoolhub"
	if tz := timezoneName(cfg.Location); tz != "" {
		poolCfg.ConnConfig.RuntimeParams["timezone"] = tz
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Int32("max_conns", cfg.MaxDBConns).
		Str("timezone", poolCfg.ConnConfig.RuntimeParams["timezone"]).
		Msg("PostgreSQL connected")

	return pool, nil
}

// timezoneName returns an IANA name Postgres understands, or "" for the
// process-local zone.
func timezoneName(loc *time.Location) string {
	if loc == nil || loc == time.Local || loc.String() == "Local" {
		return ""
	}
	return loc.String()
}
