// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/toeirei/stockmaster/internal/i18n"
	"github.com/toeirei/stockmaster/internal/model"
)

func newStockCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Receive, correct and inspect stock",
	}

	var reason string
	receive := &cobra.Command{
		Use:   "receive <product-id> <qty>",
		Short: "Book incoming goods",
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
			mv, err := svc.ReceiveStock(cmd.Context(), productID, qty, reason)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("stock.received", qty, productID, mv.ID))
			return nil
		},
	}
	receive.Flags().StringVar(&reason, "reason", "", "note stored with the movement")

	var adjustReason string
	adjust := &cobra.Command{
		Use:   "adjust [--reason text] <product-id> <delta>",
		Short: "Correct the quantity on hand by a signed delta",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}
			delta, err := parseQty(args[1])
			if err != nil {
				return err
			}
			svc, err := a.inventory(cmd.Context())
			if err != nil {
				return err
			}
			mv, err := svc.AdjustStock(cmd.Context(), productID, delta, adjustReason)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("stock.adjusted", productID, delta, mv.ID))
			return nil
		},
	}
	adjust.Flags().StringVar(&adjustReason, "reason", "", "note stored with the movement")
	// A negative delta such as -3 must reach RunE as an argument, so flags
	// are only accepted before the first positional.
	adjust.Flags().SetInterspersed(false)

	history := &cobra.Command{
		Use:   "history <product-id>",
		Short: "List the stock movements of a product",
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
			mvs, err := d.Movements.GetByProduct(cmd.Context(), productID)
			if err != nil {
				return err
			}
			renderMovements(cmd.OutOrStdout(), mvs)
			return nil
		},
	}

	cmd.AddCommand(receive, adjust, history)
	return cmd
}

func renderMovements(w io.Writer, mvs []model.StockMovement) {
	rows := make([][]string, 0, len(mvs))
	for _, m := range mvs {
		rows = append(rows, []string{
			fmtID(m.ID), stamp(m.CreatedAt), string(m.Type),
			strconv.Itoa(m.Delta()), m.Reason,
		})
	}
	renderTable(w, []string{
		"movement.header.id", "movement.header.time", "movement.header.type",
		"movement.header.delta", "movement.header.reason",
	}, rows)
}
