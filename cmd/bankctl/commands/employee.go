package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newEmployeeCmd(open Opener) *cobra.Command {
	employeeCmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage back-office employees",
	}

	var name, email, passwordFlag string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register an employee",
		Long: `Register an employee with a bcrypt-hashed password.

Examples:
  bankctl employee add --name "Asha Rao" --email asha@bank.test            # prompts for the password
  bankctl employee add --name "Asha Rao" --email asha@bank.test --password s3cret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plain := passwordFlag
			if plain == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				var err error
				plain, err = readPassword(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if strings.TrimSpace(plain) == "" {
				return fmt.Errorf("password cannot be empty")
			}

			return withServices(cmd, open, func(ctx context.Context, svc *Services) error {
				e, err := svc.Employees.Register(ctx, name, email, plain)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Employee %s registered with ID %d\n", e.Email, e.ID)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Employee's display name")
	addCmd.Flags().StringVar(&email, "email", "", "Login email")
	addCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (prompted for when omitted)")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("email")

	employeeCmd.AddCommand(addCmd)
	return employeeCmd
}

func readPassword(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Piped input.
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
