// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/stockmaster/internal/i18n"
	"github.com/toeirei/stockmaster/internal/model"
)

var supplierHeaders = []string{
	"supplier.header.id", "supplier.header.name", "supplier.header.contact",
	"supplier.header.phone", "supplier.header.email",
}

func supplierRow(s model.Supplier) []string {
	return []string{fmtID(s.ID), s.Name, s.ContactPerson, s.Phone, s.Email}
}

func newSupplierCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supplier",
		Short: "List, show, add and update suppliers",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all suppliers by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			all, err := d.Suppliers.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(all))
			for _, s := range all {
				rows = append(rows, supplierRow(s))
			}
			renderTable(cmd.OutOrStdout(), supplierHeaders, rows)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			supplierID, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			s, err := d.Suppliers.GetByID(cmd.Context(), supplierID)
			if err != nil {
				return err
			}
			if s == nil {
				return errors.New(i18n.T("supplier.not_found", supplierID))
			}
			out := cmd.OutOrStdout()
			renderTable(out, supplierHeaders, [][]string{supplierRow(*s)})
			if s.Address != "" {
				fmt.Fprintln(out, i18n.T("supplier.address", s.Address))
			}
			return nil
		},
	}

	var fields model.Supplier
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a supplier; names must be unique",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			s := fields
			s.Name = args[0]
			exists, err := d.Suppliers.ExistsByName(cmd.Context(), s.Name)
			if err != nil {
				return err
			}
			if exists {
				return errors.New(i18n.T("supplier.error_exists", s.Name))
			}
			ok, err := d.Suppliers.Create(cmd.Context(), &s)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(i18n.T("cli.error_not_stored"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("supplier.created", s.Name, s.ID))
			return nil
		},
	}
	addSupplierFlags(add, &fields)

	var changes model.Supplier
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an existing supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			supplierID, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			s, err := d.Suppliers.GetByID(cmd.Context(), supplierID)
			if err != nil {
				return err
			}
			if s == nil {
				return errors.New(i18n.T("supplier.not_found", supplierID))
			}
			f := cmd.Flags()
			if f.Changed("name") {
				s.Name = changes.Name
			}
			if f.Changed("contact") {
				s.ContactPerson = changes.ContactPerson
			}
			if f.Changed("phone") {
				s.Phone = changes.Phone
			}
			if f.Changed("email") {
				s.Email = changes.Email
			}
			if f.Changed("address") {
				s.Address = changes.Address
			}
			ok, err := d.Suppliers.Update(cmd.Context(), s)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(i18n.T("supplier.not_found", supplierID))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("supplier.updated", s.ID))
			return nil
		},
	}
	update.Flags().StringVar(&changes.Name, "name", "", "new supplier name")
	addSupplierFlags(update, &changes)

	cmd.AddCommand(list, show, add, update)
	return cmd
}

func addSupplierFlags(cmd *cobra.Command, s *model.Supplier) {
	cmd.Flags().StringVar(&s.ContactPerson, "contact", "", "contact person")
	cmd.Flags().StringVar(&s.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&s.Email, "email", "", "e-mail address")
	cmd.Flags().StringVar(&s.Address, "address", "", "postal address")
}
