// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/stockmaster/internal/i18n"
	"github.com/toeirei/stockmaster/internal/model"
)

const dateLayout = "2006-01-02"

func newSaleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Record and list sales",
	}

	var sale model.Sale
	var cashier string
	record := &cobra.Command{
		Use:   "record <product-id> <qty>",
		Short: "Record a sale, book the stock movement and check the reorder level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty, err := parseQty(args[1])
			if err != nil {
				return err
			}
			svc, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			s := sale
			s.ProductID, s.Quantity = productID, qty
			if cashier != "" {
				u, err := svc.DAOs.Users.GetByUsername(cmd.Context(), cashier)
				if err != nil {
					return err
				}
				if u == nil {
					return errors.New(i18n.T("user.not_found", cashier))
				}
				s.UserID = u.ID
			}
			alert, err := svc.RecordSale(cmd.Context(), &s)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("sale.recorded", s.ReceiptNo, money(s.Total)))
			if alert != nil {
				fmt.Fprintln(out, i18n.T("alert.raised", alert.Message))
			}
			return nil
		},
	}
	record.Flags().StringVar(&sale.ReceiptNo, "receipt", "", "receipt number (generated when empty)")
	record.Flags().Float64Var(&sale.UnitPrice, "unit-price", 0, "price per unit (defaults to the product price)")
	record.Flags().StringVar(&cashier, "cashier", "", "username of the cashier")

	var from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List sales, optionally within a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			var sales []model.Sale
			if from == "" && to == "" {
				sales, err = d.Sales.GetAll(cmd.Context())
			} else {
				start, end, rerr := dateRange(from, to)
				if rerr != nil {
					return rerr
				}
				sales, err = d.Sales.GetBetween(cmd.Context(), start, end)
			}
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(sales))
			for _, s := range sales {
				rows = append(rows, []string{
					fmtID(s.ID), s.ReceiptNo, stamp(s.SoldAt), fmtID(s.ProductID),
					strconv.Itoa(s.Quantity), money(s.UnitPrice), money(s.Total),
				})
			}
			renderTable(cmd.OutOrStdout(), []string{
				"sale.header.id", "sale.header.receipt", "sale.header.time", "sale.header.product",
				"sale.header.quantity", "sale.header.unit_price", "sale.header.total",
			}, rows)
			return nil
		},
	}
	list.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD (UTC)")
	list.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD (UTC), inclusive")

	cmd.AddCommand(record, list)
	return cmd
}

// dateRange turns inclusive calendar days into the half-open interval
// GetBetween expects. An empty bound is open.
func dateRange(from, to string) (time.Time, time.Time, error) {
	start := time.Unix(0, 0).UTC()
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, time.UTC)
		if err != nil {
			return start, end, errors.New(i18n.T("cli.error_invalid_date", from))
		}
		start = t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, time.UTC)
		if err != nil {
			return start, end, errors.New(i18n.T("cli.error_invalid_date", to))
		}
		end = t.AddDate(0, 0, 1)
	}
	return start, end, nil
}
