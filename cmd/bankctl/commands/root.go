package commands

import (
	"bank-backoffice/internal/config"
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/event"
	"bank-backoffice/internal/infrastructure/database/postgres"
	"bank-backoffice/internal/infrastructure/logging"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Services is what the commands operate on. Close releases whatever backs them.
type Services struct {
	Employees employee.EmployeeService
	Customers customer.CustomerService
	Close     func()
}

// Opener builds Services from the config found in configDir.
type Opener func(ctx context.Context, configDir string) (*Services, error)

var configDir string

// Execute runs bankctl against the service's own database.
func Execute() {
	if err := NewRootCmd(OpenDatabase, os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCmd(open Opener, in io.Reader, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bankctl",
		Short: "Administrative tasks for the bank back-office service",
		Long: `bankctl shares the service's configuration and database.

Commands:
  employee add   - Register an employee who can log in to the back office
  accounts next  - Print the account number the next approval would receive`,
		SilenceUsage: true,
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding config.yml")

	rootCmd.AddCommand(newEmployeeCmd(open), newAccountsCmd(open))
	return rootCmd
}

// OpenDatabase wires the Postgres repositories the same way the service does.
func OpenDatabase(ctx context.Context, dir string) (*Services, error) {
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := logging.NewLogger(config.LoggerConfig{Level: "warn", Encoding: cfg.Logger.Encoding})

	pool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	customerRepo := postgres.NewCustomerRepository(pool, logger)
	loanRepo := postgres.NewLoanRepository(pool, logger)
	requestRepo := postgres.NewAccountRequestRepository(pool, logger)
	employeeRepo := postgres.NewEmployeeRepository(pool, logger)
	publisher := event.NewNoopPublisher(logger)

	return &Services{
		Employees: employee.NewEmployeeService(employeeRepo, requestRepo, customerRepo, loanRepo, publisher, logger),
		Customers: customer.NewCustomerService(customerRepo, loanRepo, publisher, logger),
		Close:     pool.Close,
	}, nil
}

func withServices(cmd *cobra.Command, open Opener, fn func(ctx context.Context, svc *Services) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := open(ctx, configDir)
	if err != nil {
		return err
	}
	if svc.Close != nil {
		defer svc.Close()
	}
	return fn(ctx, svc)
}
