// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for Stockmaster using Cobra.
// It defines the root command, the persistent flags that override the
// configuration file, and the shared start-up and shutdown of the store
// connection. The subcommands live in the other files of this package.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/stockmaster/buildvars"
	"github.com/toeirei/stockmaster/internal/config"
	"github.com/toeirei/stockmaster/internal/db"
	"github.com/toeirei/stockmaster/internal/i18n"
	"github.com/toeirei/stockmaster/internal/inventory"
	"github.com/toeirei/stockmaster/internal/logging"
	"github.com/uptrace/bun"
)

// main is the entry point of the application.
func main() {
	a := newApp()
	err := a.rootCmd().Execute()
	a.teardown()
	if err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     config.Config
	conn    *db.ConnectionManager
	daos    *db.DAOs
	// stdin is read by commands that prompt; tests replace it.
	stdin io.Reader
}

func newApp() *app {
	return &app{stdin: os.Stdin}
}

// rootCmd creates and configures the root cobra command bound to a. Each
// app gets an independent command tree, which keeps tests isolated.
func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stockmaster",
		Short: "Stockmaster manages the inventory behind a point-of-sale system.",
		Long: `Stockmaster keeps products, suppliers, sales, stock movements, users and
low-stock alerts in a relational store (SQLite, PostgreSQL or MySQL).

With --offline every command runs against synthesized data and nothing is
persisted, which is useful for demos and UI work without a database.`,
		Version:           buildvars.VersionOrDefault("dev"),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: user config dir, /etc/stockmaster, ./stockmaster.yaml)")
	pf.String("db-type", "", `database type ("sqlite", "postgres", "mysql")`)
	pf.String("db-dsn", "", "database connection string (DSN)")
	pf.String("db-user", "", "database user, merged into the DSN")
	pf.String("db-password", "", "database password, merged into the DSN")
	pf.Bool("offline", false, "run without a database; reads return placeholder data")
	pf.String("lang", "", `output language ("en", "de")`)
	pf.Bool("debug", false, "log every SQL statement")

	cmd.AddCommand(
		newStatusCmd(a),
		newInitDBCmd(a),
		newMaintenanceCmd(a),
		newSupplierCmd(a),
		newProductCmd(a),
		newStockCmd(a),
		newSaleCmd(a),
		newAlertCmd(a),
		newUserCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the configuration and prepares the connection manager. No
// connection is opened here; commands acquire it through dao or store.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var cfgPath *string
	if a.cfgFile != "" {
		if _, err := os.Stat(a.cfgFile); err != nil {
			return fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		cfgPath = &a.cfgFile
	}

	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), cfgPath)
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// First run: persist the effective defaults so users have a file to edit.
		if path, writeErr := config.WriteConfigFile(&cfg, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Debugf("wrote default config to %s", path)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	a.cfg = cfg

	logging.SetDebug(cfg.Debug)
	db.SetDebug(cfg.Debug)
	i18n.Init(cfg.Language)

	if !cfg.Offline {
		a.conn = db.NewConnectionManager(cfg.Database)
	}
	return nil
}

// teardown closes the store connection, if one was opened.
func (a *app) teardown() {
	if a.conn != nil {
		a.conn.CloseConnection()
	}
}

// store returns the live connection. It fails with db.ErrOffline in offline
// mode. SQLite stores get their schema on first use.
func (a *app) store(ctx context.Context) (*bun.DB, error) {
	if a.conn == nil {
		return nil, db.ErrOffline
	}
	bdb, err := a.conn.GetConnection(ctx)
	if err != nil {
		return nil, errors.New(i18n.T("db.error_connect", err))
	}
	if db.Dialect(bdb) == db.DialectSQLite {
		if err := db.EnsureSchema(ctx, bdb); err != nil {
			return nil, err
		}
	}
	return bdb, nil
}

// dao returns the DAO bundle for this invocation, offline or live.
func (a *app) dao(ctx context.Context) (*db.DAOs, error) {
	if a.daos != nil {
		return a.daos, nil
	}
	if a.conn == nil {
		a.daos = db.NewDAOs(nil)
		return a.daos, nil
	}
	bdb, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	a.daos = db.NewDAOs(bdb)
	return a.daos, nil
}

func (a *app) inventory(ctx context.Context) (*inventory.Service, error) {
	d, err := a.dao(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.NewService(d), nil
}
