package store

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrCalendarNotFound = errors.New("calendar entry not found")
	ErrChoreNotFound    = errors.New("chore not found")
	ErrChildNotFound    = errors.New("child not found")
	ErrNotAssignee      = errors.New("child is not the assignee for this day")
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type scanner interface{ Scan(...any) error }

// withTx runs fn inside a transaction. The transaction is committed only if fn
// returns nil and is rolled back on every other path.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
