// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/toeirei/stockmaster/buildvars"
	"github.com/toeirei/stockmaster/internal/db"
	"github.com/toeirei/stockmaster/internal/i18n"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the configured store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if a.conn == nil {
				fmt.Fprintln(out, i18n.T("status.offline"))
				return nil
			}
			cfg := a.conn.Config()
			fmt.Fprintln(out, i18n.T("status.target", cfg.Type))
			if _, err := a.conn.GetConnection(cmd.Context()); err != nil {
				fmt.Fprintln(out, i18n.T("status.unreachable"))
				return err
			}
			if !a.conn.IsConnected(cmd.Context()) {
				fmt.Fprintln(out, i18n.T("status.unreachable"))
				return errors.New(i18n.T("status.unreachable"))
			}
			fmt.Fprintln(out, i18n.T("status.connected"))
			return nil
		},
	}
}

func newInitDBCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create all tables that do not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bdb, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			if err := db.EnsureSchema(cmd.Context(), bdb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("initdb.success", db.Dialect(bdb)))
			return nil
		},
	}
}

func newMaintenanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "maintenance",
		Short: "Run engine-specific database maintenance (VACUUM, OPTIMIZE, ...)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bdb, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("maintenance.starting", db.Dialect(bdb)))
			if err := db.RunMaintenance(cmd.Context(), bdb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("maintenance.success"))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		// The version command needs neither config nor store.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			v, commit, date := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", commit)
			if date != "" {
				fmt.Fprintf(out, "built: %s\n", date)
			}
		},
	}
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If info is nil, it reads build info from the
// runtime.
func resolveBuildVersion(info *debug.BuildInfo) (version, commit, date string) {
	version = buildvars.VersionOrDefault("dev")
	commit = buildvars.CommitOrDefault("dev")
	date = buildvars.BuildDate

	if info == nil {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return version, commit, date
		}
		info = bi
	}
	if buildvars.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if buildvars.Commit == "" && s.Value != "" {
				commit = s.Value
			}
		case "vcs.time":
			if date == "" {
				date = s.Value
			}
		}
	}
	return version, commit, date
}
