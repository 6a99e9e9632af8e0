package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorechart/internal/model"
)

type ChildStore struct {
	db *sql.DB
}

func NewChildStore(db *sql.DB) *ChildStore {
	return &ChildStore{db: db}
}

const childCols = `id, username, household_id, age, total_points`

func scanChild(s scanner) (*model.Child, error) {
	var c model.Child
	var age sql.NullInt64
	if err := s.Scan(&c.ID, &c.Username, &c.HouseholdID, &age, &c.TotalPoints); err != nil {
		return nil, err
	}
	if age.Valid {
		a := int(age.Int64)
		c.Age = &a
	}
	return &c, nil
}

func (s *ChildStore) GetByID(id string) (*model.Child, error) {
	row := s.db.QueryRow(`SELECT `+childCols+` FROM children WHERE id = ?`, id)
	c, err := scanChild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	return c, nil
}

func (s *ChildStore) GetByUsername(householdID, username string) (*model.Child, error) {
	row := s.db.QueryRow(
		`SELECT `+childCols+` FROM children WHERE household_id = ? AND username = ? ORDER BY id ASC LIMIT 1`,
		householdID, username,
	)
	c, err := scanChild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get child by username: %w", err)
	}
	return c, nil
}

// List returns the children of a household, or of every household when
// householdID is empty.
func (s *ChildStore) List(householdID string) ([]model.Child, error) {
	rows, err := s.db.Query(
		`SELECT `+childCols+` FROM children WHERE (? = '' OR household_id = ?) ORDER BY username ASC, id ASC`,
		householdID, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var children []model.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, *c)
	}
	return children, rows.Err()
}

func (s *ChildStore) ListPoints(householdID string) ([]model.ChildPoints, error) {
	rows, err := s.db.Query(
		`SELECT id, username, total_points FROM children WHERE (? = '' OR household_id = ?) ORDER BY username ASC, id ASC`,
		householdID, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list child points: %w", err)
	}
	defer rows.Close()

	var points []model.ChildPoints
	for rows.Next() {
		var p model.ChildPoints
		if err := rows.Scan(&p.ID, &p.Username, &p.TotalPoints); err != nil {
			return nil, fmt.Errorf("scan child points: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
