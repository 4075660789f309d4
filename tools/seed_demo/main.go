// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

// seed_demo fills a store with a small demo data set (suppliers, products,
// a cashier and a few sales) through the regular DAOs and prints what it
// created. Without arguments it uses a throwaway in-memory SQLite database.
//
//	go run ./tools/seed_demo [sqlite|postgres|mysql] [dsn]
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/toeirei/stockmaster/internal/config"
	"github.com/toeirei/stockmaster/internal/db"
	"github.com/toeirei/stockmaster/internal/inventory"
	"github.com/toeirei/stockmaster/internal/model"
	"github.com/toeirei/stockmaster/internal/security"
)

func main() {
	cfg := config.Database{Type: db.DialectSQLite, Dsn: "file:seeddemo?mode=memory&cache=shared"}
	if len(os.Args) > 2 {
		cfg.Type, cfg.Dsn = os.Args[1], os.Args[2]
	}
	if err := run(context.Background(), os.Stdout, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "seed_demo: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, cfg config.Database) error {
	cm := db.NewConnectionManager(cfg)
	defer cm.CloseConnection()

	bdb, err := cm.GetConnection(ctx)
	if err != nil {
		return err
	}
	if err := db.EnsureSchema(ctx, bdb); err != nil {
		return err
	}
	d := db.NewDAOs(bdb)
	svc := inventory.NewService(d)

	suppliers := []model.Supplier{
		{Name: "Bean Brothers", ContactPerson: "Ana Bean", Phone: "555-0101"},
		{Name: "Crunch Co", Email: "orders@crunch.example"},
	}
	for i := range suppliers {
		if err := createUnlessExists(ctx, d.Suppliers.ExistsByName, suppliers[i].Name, d.Suppliers.Create, &suppliers[i]); err != nil {
			return err
		}
	}

	products := []model.Product{
		{SKU: "COF-250", Name: "Coffee 250g", Category: "Coffee", Price: 6.90, Quantity: 12, ReorderLevel: 10, SupplierID: suppliers[0].ID},
		{SKU: "COF-1K", Name: "Coffee 1kg", Category: "Coffee", Price: 22.50, Quantity: 4, ReorderLevel: 2, SupplierID: suppliers[0].ID},
		{SKU: "CRK-SALT", Name: "Salted Crackers", Category: "Snacks", Price: 1.99, Quantity: 40, ReorderLevel: 8, SupplierID: suppliers[1].ID},
	}
	for i := range products {
		if err := createUnlessExists(ctx, d.Products.ExistsBySKU, products[i].SKU, d.Products.Create, &products[i]); err != nil {
			return err
		}
	}

	hash, err := security.HashPassword(security.FromString("demo-cashier"))
	if err != nil {
		return err
	}
	cashier := model.User{Username: "demo", PasswordHash: hash, FullName: "Demo Cashier", Role: "cashier", Active: true}
	if err := createUnlessExists(ctx, d.Users.ExistsByUsername, cashier.Username, d.Users.Create, &cashier); err != nil {
		return err
	}

	alerts := 0
	for _, s := range []model.Sale{
		{ProductID: products[0].ID, UserID: cashier.ID, Quantity: 3},
		{ProductID: products[2].ID, UserID: cashier.ID, Quantity: 5},
	} {
		if s.ProductID == 0 {
			continue
		}
		a, err := svc.RecordSale(ctx, &s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "sale: %s %d x product %d = %.2f\n", s.ReceiptNo, s.Quantity, s.ProductID, s.Total)
		if a != nil {
			alerts++
		}
	}

	all, err := d.Products.GetAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "products: %d\n", len(all))
	for _, p := range all {
		fmt.Fprintf(w, "product: %s\n", p)
	}
	fmt.Fprintf(w, "alerts raised: %d\n", alerts)
	return nil
}

// createUnlessExists creates rec unless its unique key is already taken, so
// the tool can run repeatedly against the same store. A skipped record keeps
// a zero id.
func createUnlessExists[T any](ctx context.Context, exists func(context.Context, string) (bool, error), key string, create func(context.Context, *T) (bool, error), rec *T) error {
	taken, err := exists(ctx, key)
	if err != nil {
		return err
	}
	if taken {
		return nil
	}
	_, err = create(ctx, rec)
	return err
}
