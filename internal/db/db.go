// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for Stockmaster.
// It abstracts the underlying database (SQLite, PostgreSQL, MySQL) behind a
// set of DAOs, allowing the rest of the application to interact with the
// store in a uniform way.
package db // import "github.com/toeirei/stockmaster/internal/db"

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/toeirei/stockmaster/internal/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Supported database types.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

var (
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
	// pgOpenFunc opens a postgres handle from a parsed pgx config.
	pgOpenFunc = func(cc *pgx.ConnConfig) *sql.DB { return stdlib.OpenDB(*cc) }
)

// pingTimeout bounds every liveness probe.
const pingTimeout = 5 * time.Second

// openSQLDB builds a *sql.DB for cfg. Username and password, when set, take
// precedence over credentials embedded in the DSN.
func openSQLDB(cfg config.Database) (*sql.DB, error) {
	switch cfg.Type {
	case DialectSQLite:
		return sqlOpenFunc("sqlite", cfg.Dsn)
	case DialectPostgres:
		cc, err := pgx.ParseConfig(cfg.Dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid postgres dsn: %w", err)
		}
		if cfg.Username != "" {
			cc.User = cfg.Username
		}
		if cfg.Password != "" {
			cc.Password = cfg.Password
		}
		return pgOpenFunc(cc), nil
	case DialectMySQL:
		mc, err := mysql.ParseDSN(cfg.Dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
		if cfg.Username != "" {
			mc.User = cfg.Username
		}
		if cfg.Password != "" {
			mc.Passwd = cfg.Password
		}
		mc.ParseTime = true
		// Report matched rows, not changed rows, so an update that rewrites
		// identical values still counts as affecting the row.
		mc.ClientFoundRows = true
		return sqlOpenFunc("mysql", mc.FormatDSN())
	default:
		return nil, fmt.Errorf("unsupported database type: '%s'", cfg.Type)
	}
}

// configurePool applies connection limits. The store is used through a single
// shared connection; the env vars exist for tuning, not for pooling.
func configurePool(sqlDB *sql.DB, dbType string) {
	const (
		defaultMaxOpenConns    = 1
		defaultMaxIdleConns    = 1
		defaultConnMaxLifetime = 30 * time.Minute
		defaultConnMaxIdle     = 5 * time.Minute
	)

	maxOpen := envInt("STOCKMASTER_DB_MAX_OPEN_CONNS", defaultMaxOpenConns)
	maxIdle := envInt("STOCKMASTER_DB_MAX_IDLE_CONNS", defaultMaxIdleConns)
	lifetime := time.Duration(envInt("STOCKMASTER_DB_CONN_MAX_LIFETIME_SECONDS", int(defaultConnMaxLifetime/time.Second))) * time.Second
	idle := time.Duration(envInt("STOCKMASTER_DB_CONN_MAX_IDLE_SECONDS", int(defaultConnMaxIdle/time.Second))) * time.Second

	// SQLite in-memory databases live exactly as long as their connection;
	// recycling it would drop the schema.
	if dbType == DialectSQLite {
		lifetime = 0
		idle = 0
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)
	sqlDB.SetConnMaxIdleTime(idle)
	dbLogf("db: pool for %s: max open=%d idle=%d lifetime=%s idle time=%s", dbType, maxOpen, maxIdle, lifetime, idle)
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// createBunDB constructs a *bun.DB for the provided *sql.DB and dbType.
// Centralizing construction makes it easier to apply consistent options
// and to test Bun initialization in one place.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	var bdb *bun.DB
	switch dbType {
	case DialectPostgres:
		bdb = bun.NewDB(sqlDB, pgdialect.New())
	case DialectMySQL:
		bdb = bun.NewDB(sqlDB, mysqldialect.New())
	default:
		bdb = bun.NewDB(sqlDB, sqlitedialect.New())
	}
	bdb.AddQueryHook(queryLogHook{})
	return bdb
}

// openBunDB opens, configures and verifies a connection for cfg. Every
// failure is reported as a *ConnectionError.
func openBunDB(ctx context.Context, cfg config.Database) (*bun.DB, error) {
	start := time.Now()
	sqlDB, err := openSQLDB(cfg)
	if err != nil {
		return nil, &ConnectionError{Dialect: cfg.Type, Err: err}
	}
	configurePool(sqlDB, cfg.Type)

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pctx); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectionError{Dialect: cfg.Type, Err: err}
	}
	dbLogf("db: opened %s connection in %s", cfg.Type, time.Since(start))
	return createBunDB(sqlDB, cfg.Type), nil
}

// Dialect returns the database type name for bdb.
func Dialect(bdb *bun.DB) string {
	if bdb == nil {
		return ""
	}
	switch bdb.Dialect().Name().String() {
	case "pg":
		return DialectPostgres
	case "mysql":
		return DialectMySQL
	default:
		return DialectSQLite
	}
}
