// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/toeirei/stockmaster/internal/i18n"
	"github.com/toeirei/stockmaster/internal/model"
)

var productHeaders = []string{
	"product.header.id", "product.header.sku", "product.header.name",
	"product.header.category", "product.header.price", "product.header.quantity",
	"product.header.reorder", "product.header.supplier",
}

func productRow(p model.Product) []string {
	return []string{
		fmtID(p.ID), p.SKU, p.Name, p.Category, money(p.Price),
		strconv.Itoa(p.Quantity), strconv.Itoa(p.ReorderLevel), fmtID(p.SupplierID),
	}
}

func productRows(ps []model.Product) [][]string {
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, productRow(p))
	}
	return rows
}

func newProductCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "List, show and add products",
	}

	var bySupplier int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List products by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			var ps []model.Product
			if bySupplier > 0 {
				ps, err = d.Products.GetBySupplier(cmd.Context(), bySupplier)
			} else {
				ps, err = d.Products.GetAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), productHeaders, productRows(ps))
			return nil
		},
	}
	list.Flags().Int64Var(&bySupplier, "supplier", 0, "only products of this supplier id")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			p, err := d.Products.GetByID(cmd.Context(), productID)
			if err != nil {
				return err
			}
			if p == nil {
				return errors.New(i18n.T("product.not_found", productID))
			}
			out := cmd.OutOrStdout()
			renderTable(out, productHeaders, [][]string{productRow(*p)})
			if p.Description != "" {
				fmt.Fprintln(out, p.Description)
			}
			if p.IsLowStock() {
				fmt.Fprintln(out, i18n.T("product.low_stock_note"))
			}
			return nil
		},
	}

	var fields model.Product
	add := &cobra.Command{
		Use:   "add <sku> <name>",
		Short: "Add a product; SKUs must be unique",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			p := fields
			p.SKU, p.Name = args[0], args[1]
			if p.Price < 0 || p.Quantity < 0 || p.ReorderLevel < 0 {
				return errors.New(i18n.T("product.error_negative"))
			}
			exists, err := d.Products.ExistsBySKU(cmd.Context(), p.SKU)
			if err != nil {
				return err
			}
			if exists {
				return errors.New(i18n.T("product.error_exists", p.SKU))
			}
			if p.SupplierID != 0 {
				s, err := d.Suppliers.GetByID(cmd.Context(), p.SupplierID)
				if err != nil {
					return err
				}
				if s == nil {
					return errors.New(i18n.T("supplier.not_found", p.SupplierID))
				}
			}
			ok, err := d.Products.Create(cmd.Context(), &p)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(i18n.T("cli.error_not_stored"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("product.created", p.SKU, p.ID))
			return nil
		},
	}
	f := add.Flags()
	f.StringVar(&fields.Description, "description", "", "free-text description")
	f.StringVar(&fields.Category, "category", "", "category")
	f.Float64Var(&fields.Price, "price", 0, "unit price")
	f.IntVar(&fields.Quantity, "quantity", 0, "initial quantity on hand")
	f.IntVar(&fields.ReorderLevel, "reorder-level", 0, "quantity at or below which an alert is raised")
	f.Int64Var(&fields.SupplierID, "supplier", 0, "supplier id")

	lowStock := &cobra.Command{
		Use:   "low-stock",
		Short: "List products at or below their reorder level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			ps, err := d.Products.GetLowStock(cmd.Context())
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), productHeaders, productRows(ps))
			return nil
		},
	}

	cmd.AddCommand(list, show, add, lowStock)
	return cmd
}
