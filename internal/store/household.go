package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorechart/internal/model"
)

type HouseholdStore struct {
	db *sql.DB
}

func NewHouseholdStore(db *sql.DB) *HouseholdStore {
	return &HouseholdStore{db: db}
}

const (
	householdCols = `id, created_at`
	parentCols    = `id, username, household_id`
)

func scanHousehold(s scanner) (*model.Household, error) {
	var h model.Household
	if err := s.Scan(&h.ID, &h.CreatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

func scanParent(s scanner) (*model.Parent, error) {
	var p model.Parent
	if err := s.Scan(&p.ID, &p.Username, &p.HouseholdID); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a household, its parent and all of its children in a single
// transaction. Nothing persists if any insert fails.
func (s *HouseholdStore) Create(householdID string, parent model.Parent, children []model.Child) error {
	return withTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO households (id) VALUES (?)`, householdID); err != nil {
			return fmt.Errorf("insert household: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO parents (id, username, household_id) VALUES (?, ?, ?)`,
			parent.ID, parent.Username, householdID,
		); err != nil {
			return fmt.Errorf("insert parent: %w", err)
		}
		for _, c := range children {
			if _, err := tx.Exec(
				`INSERT INTO children (id, username, household_id, total_points) VALUES (?, ?, ?, 0)`,
				c.ID, c.Username, householdID,
			); err != nil {
				return fmt.Errorf("insert child %q: %w", c.Username, err)
			}
		}
		return nil
	})
}

func (s *HouseholdStore) GetByID(id string) (*model.Household, error) {
	row := s.db.QueryRow(`SELECT `+householdCols+` FROM households WHERE id = ?`, id)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}
	return h, nil
}

func (s *HouseholdStore) GetParent(id string) (*model.Parent, error) {
	row := s.db.QueryRow(`SELECT `+parentCols+` FROM parents WHERE id = ?`, id)
	p, err := scanParent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get parent: %w", err)
	}
	return p, nil
}

// ParentForHousehold returns the first parent registered for the household.
func (s *HouseholdStore) ParentForHousehold(householdID string) (*model.Parent, error) {
	row := s.db.QueryRow(
		`SELECT `+parentCols+` FROM parents WHERE household_id = ? ORDER BY username ASC LIMIT 1`,
		householdID,
	)
	p, err := scanParent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household parent: %w", err)
	}
	return p, nil
}
