package mocks

import (
	"github.com/jackc/pgx/v5"
)

// Tx is an inert pgx.Tx handed out by mocked BeginTx calls. Services only pass it back to
// repositories, so calling any of its methods is a test bug and panics.
type Tx struct {
	pgx.Tx
}

func NewTx() *Tx {
	return &Tx{}
}
