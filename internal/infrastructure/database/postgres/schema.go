package postgres

import (
	"context"
	"fmt"
	"log/slog"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		account_number BIGINT PRIMARY KEY,
		first_name     TEXT NOT NULL,
		last_name      TEXT NOT NULL,
		mobile_number  TEXT NOT NULL,
		email          TEXT NOT NULL,
		password_hash  TEXT NOT NULL,
		balance        NUMERIC(15, 2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_email ON customers (email)`,
	`CREATE TABLE IF NOT EXISTS account_requests (
		request_id       BIGSERIAL PRIMARY KEY,
		first_name       TEXT NOT NULL,
		last_name        TEXT NOT NULL,
		mobile_number    TEXT NOT NULL,
		email            TEXT NOT NULL,
		starting_deposit NUMERIC(15, 2) NOT NULL CHECK (starting_deposit >= 0),
		password_hash    TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'denied')),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_account_requests_status ON account_requests (status)`,
	`CREATE TABLE IF NOT EXISTS loans (
		loan_id         BIGSERIAL PRIMARY KEY,
		account_number  BIGINT NOT NULL REFERENCES customers (account_number) ON DELETE CASCADE,
		amount          NUMERIC(15, 2) NOT NULL CHECK (amount > 0),
		tenure          INTEGER NOT NULL CHECK (tenure > 0),
		interest_rate   NUMERIC(7, 4) NOT NULL CHECK (interest_rate >= 0),
		total_repayment NUMERIC(15, 2) NOT NULL,
		repayment_paid  NUMERIC(15, 2) NOT NULL DEFAULT 0 CHECK (repayment_paid >= 0),
		status          TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'denied')),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (repayment_paid <= total_repayment)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_account_number ON loans (account_number)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_status ON loans (status)`,
	`CREATE TABLE IF NOT EXISTS employees (
		employee_id       BIGSERIAL PRIMARY KEY,
		name              TEXT NOT NULL,
		email             TEXT NOT NULL UNIQUE,
		password_hash     TEXT NOT NULL,
		requests_approved INTEGER NOT NULL DEFAULT 0,
		requests_denied   INTEGER NOT NULL DEFAULT 0
	)`,
}

// EnsureSchema creates the tables the service needs when they are missing.
func EnsureSchema(ctx context.Context, db DBPool, logger *slog.Logger) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			logger.ErrorContext(ctx, "Failed to apply schema statement", "index", i, "error", err)
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	logger.InfoContext(ctx, "Database schema is up to date", "statements", len(schemaStatements))
	return nil
}
