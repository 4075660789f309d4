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

func newAlertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Inspect and resolve low-stock alerts",
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List open alerts (--all includes resolved ones)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			var alerts []model.Alert
			if all {
				alerts, err = d.Alerts.GetAll(cmd.Context())
			} else {
				alerts, err = d.Alerts.GetOpen(cmd.Context())
			}
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(alerts))
			for _, al := range alerts {
				state := i18n.T("alert.state_open")
				if al.Resolved {
					state = i18n.T("alert.state_resolved")
				}
				rows = append(rows, []string{
					fmtID(al.ID), stamp(al.CreatedAt), fmtID(al.ProductID),
					strconv.Itoa(al.Quantity), strconv.Itoa(al.Threshold), state, al.Message,
				})
			}
			renderTable(cmd.OutOrStdout(), []string{
				"alert.header.id", "alert.header.time", "alert.header.product",
				"alert.header.quantity", "alert.header.threshold", "alert.header.state",
				"alert.header.message",
			}, rows)
			return nil
		},
	}
	list.Flags().BoolVar(&all, "all", false, "include resolved alerts")

	resolve := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Mark an alert as resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alertID, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := d.Alerts.Resolve(cmd.Context(), alertID)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(i18n.T("alert.not_found", alertID))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("alert.resolved", alertID))
			return nil
		},
	}

	cmd.AddCommand(list, resolve)
	return cmd
}
