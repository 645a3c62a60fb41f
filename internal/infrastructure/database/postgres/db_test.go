package postgres

import (
	"bank-backoffice/internal/pkg/apperrors"
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateDBError(t *testing.T) {
	assert.NoError(t, translateDBError(nil, logger))
	assert.ErrorIs(t, translateDBError(pgx.ErrNoRows, logger), apperrors.ErrNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"}
	err := translateDBError(unique, logger)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "employees_email_key")

	check := &pgconn.PgError{Code: "23514", Message: "violates check constraint"}
	err = translateDBError(check, logger)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.Contains(t, err.Error(), "23514")

	overflow := &pgconn.PgError{Code: "22003", Message: "numeric field overflow"}
	assert.ErrorIs(t, translateDBError(overflow, logger), apperrors.ErrValidation)

	assert.ErrorIs(t, translateDBError(errors.New("boom"), logger), apperrors.ErrDatabase)
}

func TestTxManager(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	ctx := context.Background()
	m := txManager{db: mockPool, logger: logger}

	t.Run("commit", func(t *testing.T) {
		mockPool.ExpectBegin()
		mockPool.ExpectCommit()

		tx, err := m.BeginTx(ctx)
		require.NoError(t, err)
		assert.NoError(t, m.CommitTx(ctx, tx))
	})

	t.Run("rollback", func(t *testing.T) {
		mockPool.ExpectBegin()
		mockPool.ExpectRollback()

		tx, err := m.BeginTx(ctx)
		require.NoError(t, err)
		assert.NoError(t, m.RollbackTx(ctx, tx))
	})

	t.Run("begin failure", func(t *testing.T) {
		mockPool.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		tx, err := m.BeginTx(ctx)
		assert.Nil(t, tx)
		assert.ErrorIs(t, err, apperrors.ErrDatabase)
	})

	t.Run("commit failure", func(t *testing.T) {
		mockPool.ExpectBegin()
		mockPool.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		tx, err := m.BeginTx(ctx)
		require.NoError(t, err)
		assert.ErrorIs(t, m.CommitTx(ctx, tx), apperrors.ErrDatabase)
	})

	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestEnsureSchema(t *testing.T) {
	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mockPool.Close()

	for _, stmt := range schemaStatements {
		mockPool.ExpectExec(stmt).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	}

	assert.NoError(t, EnsureSchema(context.Background(), mockPool, logger))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestEnsureSchemaStopsOnFailure(t *testing.T) {
	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectExec(schemaStatements[0]).WillReturnError(errors.New("permission denied"))

	err = EnsureSchema(context.Background(), mockPool, logger)
	assert.ErrorContains(t, err, "failed to apply schema statement 0")
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
