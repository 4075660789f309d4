// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/toeirei/stockmaster/internal/config"
	"github.com/toeirei/stockmaster/internal/db"
)

// TestRunSeedsDemoData runs the seeder against an in-memory database and
// checks the printed summary.
func TestRunSeedsDemoData(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Database{Type: db.DialectSQLite, Dsn: "file:seedtest?mode=memory&cache=shared"}
	if err := run(context.Background(), &buf, cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"products: 3", "COF-250", "alerts raised: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
	if strings.Count(out, "sale: ") != 2 {
		t.Fatalf("expected two sales, got %q", out)
	}
}
