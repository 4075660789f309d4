// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/stockmaster/internal/i18n"
	"github.com/toeirei/stockmaster/internal/model"
)

// setupTestEnv isolates config discovery from the developer's machine and
// returns a fresh SQLite file path for the test.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)
	t.Cleanup(func() { i18n.Init("en") })
	return filepath.Join(dir, "stockmaster.db")
}

// executeCommand runs a fresh command tree with args against dbPath and
// returns everything written to stdout. stdin feeds prompting commands.
func executeCommand(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	a.stdin = strings.NewReader(stdin)
	defer a.teardown()

	root := a.rootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	base := []string{"--db-type", "sqlite", "--db-dsn", dbPath}
	root.SetArgs(append(base, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	out, err := executeCommand(t, dbPath, "", args...)
	require.NoError(t, err, "stockmaster %s", strings.Join(args, " "))
	return out
}

func TestStatus(t *testing.T) {
	dbPath := setupTestEnv(t)
	out := mustRun(t, dbPath, "status")
	assert.Contains(t, out, "Store is reachable.")

	out = mustRun(t, dbPath, "--offline", "status")
	assert.Contains(t, out, "Offline mode")
}

func TestStatus_German(t *testing.T) {
	dbPath := setupTestEnv(t)
	out := mustRun(t, dbPath, "--lang", "de", "status")
	assert.Contains(t, out, "Datenbank ist erreichbar.")
}

func TestStatus_Unreachable(t *testing.T) {
	setupTestEnv(t)
	a := newApp()
	defer a.teardown()
	root := a.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--db-type", "postgres", "--db-dsn", "postgres://u:p@127.0.0.1:1/x?sslmode=disable&connect_timeout=1", "status"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), "Store is not reachable.")
}

func TestDefaultConfigWrittenOnFirstRun(t *testing.T) {
	dbPath := setupTestEnv(t)
	mustRun(t, dbPath, "status")
	_, err := os.Stat(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "stockmaster", "stockmaster.yaml"))
	assert.NoError(t, err)
}

func TestInitDBAndMaintenance(t *testing.T) {
	dbPath := setupTestEnv(t)
	assert.Contains(t, mustRun(t, dbPath, "init-db"), "Schema is up to date (sqlite).")
	assert.Contains(t, mustRun(t, dbPath, "maintenance"), "Maintenance finished.")

	_, err := executeCommand(t, dbPath, "", "--offline", "init-db")
	assert.Error(t, err)
}

func TestSupplierCommands(t *testing.T) {
	dbPath := setupTestEnv(t)

	out := mustRun(t, dbPath, "supplier", "add", "Acme", "--phone", "555-1111")
	assert.Contains(t, out, "Supplier 'Acme' created with id 1.")
	mustRun(t, dbPath, "supplier", "add", "Bolt & Nut", "--email", "sales@bolt.example")

	_, err := executeCommand(t, dbPath, "", "supplier", "add", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out = mustRun(t, dbPath, "supplier", "list")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Bolt & Nut")
	assert.Less(t, strings.Index(out, "Acme"), strings.Index(out, "Bolt & Nut"))

	out = mustRun(t, dbPath, "supplier", "update", "1", "--address", "1 Main St")
	assert.Contains(t, out, "Supplier 1 updated.")
	out = mustRun(t, dbPath, "supplier", "show", "1")
	assert.Contains(t, out, "555-1111")
	assert.Contains(t, out, "Address: 1 Main St")

	_, err = executeCommand(t, dbPath, "", "supplier", "show", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Supplier 99 not found.")

	_, err = executeCommand(t, dbPath, "", "supplier", "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid id")
}

func TestOfflineCommands(t *testing.T) {
	dbPath := setupTestEnv(t)

	out := mustRun(t, dbPath, "--offline", "supplier", "add", "Acme")
	assert.Contains(t, out, "Supplier 'Acme' created with id")

	out = mustRun(t, dbPath, "--offline", "supplier", "list")
	assert.Contains(t, out, "No entries.")

	_, err := executeCommand(t, dbPath, "", "--offline", "supplier", "update", "5", "--phone", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "live database connection")

	out = mustRun(t, dbPath, "--offline", "sale", "record", "3", "1")
	assert.Contains(t, out, "recorded")

	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "offline mode must not create the database")
}

func TestProductSaleAlertFlow(t *testing.T) {
	dbPath := setupTestEnv(t)

	mustRun(t, dbPath, "supplier", "add", "Acme")
	out := mustRun(t, dbPath, "product", "add", "CAF-1", "Coffee",
		"--price", "3.50", "--quantity", "6", "--reorder-level", "4", "--supplier", "1")
	assert.Contains(t, out, "Product 'CAF-1' created with id 1.")

	_, err := executeCommand(t, dbPath, "", "product", "add", "X-1", "Ghost", "--supplier", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Supplier 42 not found.")

	out = mustRun(t, dbPath, "product", "low-stock")
	assert.Contains(t, out, "No entries.")

	out = mustRun(t, dbPath, "sale", "record", "1", "2", "--receipt", "R-100")
	assert.Contains(t, out, "Sale R-100 recorded, total 7.00.")
	assert.Contains(t, out, "Low-stock alert")

	out = mustRun(t, dbPath, "product", "low-stock")
	assert.Contains(t, out, "CAF-1")

	out = mustRun(t, dbPath, "alert", "list")
	assert.Contains(t, out, "open")

	out = mustRun(t, dbPath, "alert", "resolve", "1")
	assert.Contains(t, out, "Alert 1 resolved.")
	out = mustRun(t, dbPath, "alert", "list")
	assert.Contains(t, out, "No entries.")
	out = mustRun(t, dbPath, "alert", "list", "--all")
	assert.Contains(t, out, "resolved")

	out = mustRun(t, dbPath, "stock", "receive", "1", "10", "--reason", "delivery")
	assert.Contains(t, out, "Received 10 units of product 1")
	out = mustRun(t, dbPath, "stock", "adjust", "1", "-1")
	assert.Contains(t, out, "adjusted by -1")
	out = mustRun(t, dbPath, "product", "show", "1")
	assert.Contains(t, out, "13")
	out = mustRun(t, dbPath, "stock", "adjust", "--reason", "shrinkage", "1", "-2")
	assert.Contains(t, out, "adjusted by -2")
	out = mustRun(t, dbPath, "product", "show", "1")
	assert.Contains(t, out, "11")

	out = mustRun(t, dbPath, "stock", "history", "1")
	assert.Contains(t, out, "OUT")
	assert.Contains(t, out, "IN")
	assert.Contains(t, out, "ADJUST")
	assert.Contains(t, out, "shrinkage")

	out = mustRun(t, dbPath, "sale", "list")
	assert.Contains(t, out, "R-100")
	out = mustRun(t, dbPath, "sale", "list", "--from", "2000-01-01", "--to", "2000-01-02")
	assert.Contains(t, out, "No entries.")

	_, err = executeCommand(t, dbPath, "", "sale", "list", "--from", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid date")

	_, err = executeCommand(t, dbPath, "", "sale", "record", "1", "0")
	assert.Error(t, err)
}

func TestUserCommands(t *testing.T) {
	dbPath := setupTestEnv(t)

	out, err := executeCommand(t, dbPath, "hunter22hunter\n", "user", "add", "alice", "--full-name", "Alice Doe")
	require.NoError(t, err)
	assert.Contains(t, out, "User 'alice' created with id 1.")

	_, err = executeCommand(t, dbPath, "hunter22hunter\n", "user", "add", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCommand(t, dbPath, "short\n", "user", "add", "bob")
	assert.Error(t, err)

	out = mustRun(t, dbPath, "user", "list")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "cashier")
	assert.NotContains(t, out, "bob")

	out = mustRun(t, dbPath, "sale", "list")
	assert.Contains(t, out, "No entries.")
	_, err = executeCommand(t, dbPath, "", "sale", "record", "1", "1", "--cashier", "nobody")
	assert.Error(t, err)
}

func TestBackupAndInspect(t *testing.T) {
	dbPath := setupTestEnv(t)
	mustRun(t, dbPath, "supplier", "add", "Acme")
	mustRun(t, dbPath, "product", "add", "S-1", "Widget", "--quantity", "3")
	_, err := executeCommand(t, dbPath, "longenough\n", "user", "add", "root")
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "snapshot.json")
	out := mustRun(t, dbPath, "backup", target)
	assert.Contains(t, out, "Backup written to "+target+".zst.")

	data, err := readCompressedBackup(target + ".zst")
	require.NoError(t, err)
	assert.Equal(t, model.BackupSchemaVersion, data.SchemaVersion)
	assert.Len(t, data.Suppliers, 1)
	assert.Len(t, data.Products, 1)
	require.Len(t, data.Users, 1)
	assert.Empty(t, data.Users[0].PasswordHash)

	out = mustRun(t, dbPath, "backup", "--inspect", target+".zst")
	assert.Contains(t, out, "1 suppliers, 1 products, 0 sales")

	_, err = executeCommand(t, dbPath, "", "backup", "--inspect")
	assert.Error(t, err)

	fresh := filepath.Join(t.TempDir(), "restored.db")
	out = mustRun(t, fresh, "restore", target+".zst")
	assert.Contains(t, out, "added 1 suppliers, 1 products, 0 sales, 0 stock movements, 0 alerts, 1 users; 0 records skipped.")
	out = mustRun(t, fresh, "product", "show", "1")
	assert.Contains(t, out, "Widget")

	out = mustRun(t, dbPath, "restore", target+".zst")
	assert.Contains(t, out, "added 0 suppliers, 0 products, 0 sales, 0 stock movements, 0 alerts, 0 users; 3 records skipped.")

	_, err = executeCommand(t, dbPath, "", "restore", filepath.Join(t.TempDir(), "missing.zst"))
	assert.Error(t, err)
}

func TestWriteCompressedBackup_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.json.zst")
	in := &model.BackupData{
		SchemaVersion: model.BackupSchemaVersion,
		Suppliers:     []model.Supplier{{ID: 1, Name: "Acme"}},
	}
	require.NoError(t, writeCompressedBackup(path, in))
	got, err := readCompressedBackup(path)
	require.NoError(t, err)
	assert.Equal(t, in.Suppliers, got.Suppliers)

	future := &model.BackupData{SchemaVersion: model.BackupSchemaVersion + 1}
	require.NoError(t, writeCompressedBackup(path, future))
	_, err = readCompressedBackup(path)
	assert.Error(t, err)
}

func TestDateRange(t *testing.T) {
	start, end, err := dateRange("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01T00:00:00Z", start.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, "2025-02-01T00:00:00Z", end.Format("2006-01-02T15:04:05Z07:00"))

	_, _, err = dateRange("", "31.01.2025")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	setupTestEnv(t)
	a := newApp()
	root := a.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "version: ")
	assert.Contains(t, out.String(), "commit: ")
}
