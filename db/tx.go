package db

import (
	"context"
	"database/sql"

	"github.com/0xPolygon/msgbridge/log"
)

// Tx is a sql.Tx running the registered callbacks once committed
type Tx struct {
	*sql.Tx
	onCommit []func()
}

func NewTx(ctx context.Context, db *sql.DB) (*Tx, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx}, nil
}

// OnCommit registers cb to run after a successful commit
func (t *Tx) OnCommit(cb func()) {
	t.onCommit = append(t.onCommit, cb)
}

func (t *Tx) Commit() error {
	if err := t.Tx.Commit(); err != nil {
		return err
	}
	for _, cb := range t.onCommit {
		cb()
	}
	return nil
}

// RollbackIfError is meant to be deferred right after NewTx with a pointer to the
// named error of the caller. The rollback error, if any, is only logged.
func (t *Tx) RollbackIfError(logger *log.Logger, err *error) {
	if err == nil || *err == nil {
		return
	}
	if errRllbck := t.Rollback(); errRllbck != nil {
		logger.Errorf("error while rolling back tx: %v", errRllbck)
	}
}
