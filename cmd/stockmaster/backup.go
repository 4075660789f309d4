// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"github.com/toeirei/stockmaster/internal/db"
	"github.com/toeirei/stockmaster/internal/i18n"
	"github.com/toeirei/stockmaster/internal/model"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Create a compressed (zstd) JSON backup of the database",
		Long: `Dumps suppliers, products, sales, stock movements, alerts and users into a
single Zstandard-compressed JSON file. Password hashes are not exported.

If an output file is specified, '.zst' will be appended to the name if it's
not already present. Without one, 'stockmaster-backup-YYYY-MM-DD.json.zst'
is used.

Use 'backup --inspect <file>' to print the record counts of an existing
backup without touching the database.`,
		Args: cobra.MaximumNArgs(1),
	}
	var inspect bool
	cmd.Flags().BoolVar(&inspect, "inspect", false, "read the given backup file and print its contents summary")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if inspect {
			if len(args) != 1 {
				return errors.New(i18n.T("backup.error_inspect_file"))
			}
			data, err := readCompressedBackup(args[0])
			if err != nil {
				return errors.New(i18n.T("backup.error_read", err))
			}
			fmt.Fprintln(out, i18n.T("backup.summary",
				data.SchemaVersion, stamp(data.CreatedAt),
				len(data.Suppliers), len(data.Products), len(data.Sales),
				len(data.StockMovements), len(data.Alerts), len(data.Users)))
			return nil
		}

		var outputFile string
		if len(args) == 0 {
			outputFile = fmt.Sprintf("stockmaster-backup-%s.json.zst", time.Now().Format("2006-01-02"))
		} else {
			outputFile = args[0]
			if !strings.HasSuffix(outputFile, ".zst") {
				outputFile += ".zst"
			}
		}
		fmt.Fprintln(out, i18n.T("backup.starting"))
		d, err := a.dao(cmd.Context())
		if err != nil {
			return err
		}
		data, err := db.ExportData(cmd.Context(), d)
		if err != nil {
			return errors.New(i18n.T("backup.error_export", err))
		}
		if err := writeCompressedBackup(outputFile, data); err != nil {
			return errors.New(i18n.T("backup.error_write", err))
		}
		fmt.Fprintln(out, i18n.T("backup.success", outputFile))
		return nil
	}
	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-file.zst>",
		Short: "Add the records of a compressed JSON backup to the database",
		Long: `Reads a backup written by 'stockmaster backup' and adds every record that is
not present yet. Suppliers, products, sales and users already in the database
(matched by name, SKU, receipt number and username) are left untouched.
Stock movements and alerts are restored for newly added products only.

Backups do not contain password hashes, so restored users are inactive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("restore.starting", args[0]))
			data, err := readCompressedBackup(args[0])
			if err != nil {
				return errors.New(i18n.T("backup.error_read", err))
			}
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := db.IntegrateData(cmd.Context(), d, data)
			if err != nil {
				return errors.New(i18n.T("restore.error_import", err))
			}
			fmt.Fprintln(out, i18n.T("restore.success",
				stats.Suppliers, stats.Products, stats.Sales,
				stats.StockMovements, stats.Alerts, stats.Users, stats.Skipped))
			return nil
		},
	}
}

// writeCompressedBackup streams the JSON encoding of data through a zstd
// writer into filename.
func writeCompressedBackup(filename string, data *model.BackupData) (err error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	zstdWriter, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		_ = zstdWriter.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	if err := zstdWriter.Close(); err != nil {
		return fmt.Errorf("could not flush zstd writer: %w", err)
	}
	return nil
}

// readCompressedBackup handles reading and decoding a zstd-compressed JSON backup file.
func readCompressedBackup(filename string) (*model.BackupData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdReader, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var backupData model.BackupData
	if err := json.NewDecoder(zstdReader).Decode(&backupData); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	if backupData.SchemaVersion > model.BackupSchemaVersion {
		return nil, fmt.Errorf("backup schema version %d is newer than supported version %d",
			backupData.SchemaVersion, model.BackupSchemaVersion)
	}
	return &backupData, nil
}
