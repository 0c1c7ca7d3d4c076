package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	maxTxAttempts  = 5
	initialBackoff = 50 * time.Millisecond
)

// isTransient reports whether the error is a serialization failure or
// deadlock, the only class worth retrying. Logical errors never are.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// runTx executes fn inside a transaction, committing on success. Transient
// conflicts are retried with exponential backoff up to maxTxAttempts.
func (s *OrderService) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	backoff := initialBackoff
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.attemptTx(ctx, fn)
		if err == nil || !isTransient(err) {
			return err
		}
		log.Printf("transient store conflict (attempt %d/%d): %v", attempt, maxTxAttempts, err)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
	}
	return err
}

func (s *OrderService) attemptTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
