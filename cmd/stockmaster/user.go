// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/stockmaster/internal/i18n"
	"github.com/toeirei/stockmaster/internal/model"
	"github.com/toeirei/stockmaster/internal/security"
	"golang.org/x/term"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the users recorded with sales",
	}

	var fields model.User
	var inactive bool
	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Add a user; the password is read from the terminal or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			u := fields
			u.Username = args[0]
			u.Active = !inactive
			exists, err := d.Users.ExistsByUsername(cmd.Context(), u.Username)
			if err != nil {
				return err
			}
			if exists {
				return errors.New(i18n.T("user.error_exists", u.Username))
			}
			password, err := readPassword(cmd.ErrOrStderr(), a.stdin)
			if err != nil {
				return err
			}
			u.PasswordHash, err = security.HashPassword(password)
			password.Zero()
			if err != nil {
				return err
			}
			ok, err := d.Users.Create(cmd.Context(), &u)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(i18n.T("cli.error_not_stored"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("user.created", u.Username, u.ID))
			return nil
		},
	}
	add.Flags().StringVar(&fields.FullName, "full-name", "", "display name")
	add.Flags().StringVar(&fields.Role, "role", "cashier", "role, e.g. cashier or manager")
	add.Flags().BoolVar(&inactive, "inactive", false, "create the user disabled")

	list := &cobra.Command{
		Use:   "list",
		Short: "List users by username",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dao(cmd.Context())
			if err != nil {
				return err
			}
			users, err := d.Users.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				active := i18n.T("user.active_yes")
				if !u.Active {
					active = i18n.T("user.active_no")
				}
				rows = append(rows, []string{fmtID(u.ID), u.Username, u.FullName, u.Role, active})
			}
			renderTable(cmd.OutOrStdout(), []string{
				"user.header.id", "user.header.username", "user.header.full_name",
				"user.header.role", "user.header.active",
			}, rows)
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

// readPassword prompts twice without echo when in is a terminal. Otherwise
// it reads the first line of in, which lets scripts pipe the password.
func readPassword(prompt io.Writer, in io.Reader) (security.Secret, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, i18n.T("user.password_prompt"))
		first, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return nil, errors.New(i18n.T("user.error_read_password", err))
		}
		fmt.Fprint(prompt, i18n.T("user.password_confirm"))
		second, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return nil, errors.New(i18n.T("user.error_read_password", err))
		}
		pw := security.FromBytes(first)
		match := bytes.Equal(first, second)
		clear(first)
		clear(second)
		if !match {
			pw.Zero()
			return nil, errors.New(i18n.T("user.error_password_mismatch"))
		}
		return pw, nil
	}

	line, err := bufio.NewReader(in).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.New(i18n.T("user.error_read_password", err))
	}
	pw := security.FromBytes(bytes.TrimRight(line, "\r\n"))
	clear(line)
	return pw, nil
}
