package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorechart/internal/model"
	"github.com/dukerupert/chorechart/internal/weekday"
)

type ChoreStore struct {
	db *sql.DB
}

func NewChoreStore(db *sql.DB) *ChoreStore {
	return &ChoreStore{db: db}
}

const choreCols = `id, chore_type, amount, calendar_id, assigned_by`

func scanChore(s scanner) (*model.Chore, error) {
	var c model.Chore
	if err := s.Scan(&c.ID, &c.ChoreType, &c.Amount, &c.Schedule, &c.AssignedBy); err != nil {
		return nil, err
	}
	return &c, nil
}

func listChores(q querier, where string, args ...any) ([]model.Chore, error) {
	rows, err := q.Query(`SELECT `+choreCols+` FROM chores WHERE `+where+` ORDER BY id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

// Create inserts a calendar entry with its seven day slots and the chore that
// references it, all in one transaction.
func (s *ChoreStore) Create(householdID, parentID, choreType string, amount int, days model.Assignments) (*model.ChoreWithSchedule, error) {
	var choreID int64
	err := withTx(s.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`INSERT INTO calendar_entries (household_id, label) VALUES (?, ?)`,
			householdID, choreType,
		)
		if err != nil {
			return fmt.Errorf("insert calendar entry: %w", err)
		}
		calendarID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}

		for _, d := range weekday.All {
			if _, err := tx.Exec(
				`INSERT INTO calendar_days (calendar_id, day_index, assignee_id, completed) VALUES (?, ?, ?, 0)`,
				calendarID, int(d), nullString(days[d]),
			); err != nil {
				return fmt.Errorf("insert %s slot: %w", d, err)
			}
		}

		res, err = tx.Exec(
			`INSERT INTO chores (chore_type, amount, calendar_id, assigned_by) VALUES (?, ?, ?, ?)`,
			choreType, amount, calendarID, parentID,
		)
		if err != nil {
			return fmt.Errorf("insert chore: %w", err)
		}
		choreID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(choreID)
}

// GetByID returns the chore with its calendar entry, or nil if it does not exist.
func (s *ChoreStore) GetByID(id int64) (*model.ChoreWithSchedule, error) {
	row := s.db.QueryRow(`SELECT `+choreCols+` FROM chores WHERE id = ?`, id)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}

	entry, err := getEntry(s.db, c.Schedule)
	if err != nil {
		return nil, fmt.Errorf("get chore schedule: %w", err)
	}
	out := &model.ChoreWithSchedule{Chore: *c}
	if entry != nil {
		out.Calendar = *entry
	}
	return out, nil
}

// List returns a household's chores with their schedules. An empty
// householdID matches every household.
func (s *ChoreStore) List(householdID string) ([]model.ChoreWithSchedule, error) {
	chores, err := listChores(s.db,
		`calendar_id IN (SELECT id FROM calendar_entries WHERE (? = '' OR household_id = ?))`,
		householdID, householdID,
	)
	if err != nil {
		return nil, err
	}
	entries, err := queryEntries(s.db, `(? = '' OR ce.household_id = ?)`, householdID, householdID)
	if err != nil {
		return nil, fmt.Errorf("list chore schedules: %w", err)
	}

	byID := make(map[int64]model.CalendarEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	out := make([]model.ChoreWithSchedule, 0, len(chores))
	for _, c := range chores {
		out = append(out, model.ChoreWithSchedule{Chore: c, Calendar: byID[c.Schedule]})
	}
	return out, nil
}

// ListForAssignee returns the chores whose schedule assigns childID on any day.
func (s *ChoreStore) ListForAssignee(childID string) ([]model.Chore, error) {
	return listChores(s.db,
		`calendar_id IN (SELECT calendar_id FROM calendar_days WHERE assignee_id = ?)`,
		childID,
	)
}

func scheduleFor(tx *sql.Tx, choreID int64) (int64, error) {
	var calendarID int64
	err := tx.QueryRow(`SELECT calendar_id FROM chores WHERE id = ?`, choreID).Scan(&calendarID)
	if err == sql.ErrNoRows {
		return 0, ErrChoreNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get chore schedule: %w", err)
	}
	return calendarID, nil
}

// Update overwrites the chore's type and amount and every day's assignee.
// Completed flags are not touched.
func (s *ChoreStore) Update(id int64, choreType string, amount int, days model.Assignments) (*model.ChoreWithSchedule, error) {
	err := withTx(s.db, func(tx *sql.Tx) error {
		calendarID, err := scheduleFor(tx, id)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`UPDATE calendar_entries SET label = ? WHERE id = ?`, choreType, calendarID); err != nil {
			return fmt.Errorf("update calendar entry: %w", err)
		}
		for _, d := range weekday.All {
			if _, err := tx.Exec(
				`UPDATE calendar_days SET assignee_id = ? WHERE calendar_id = ? AND day_index = ?`,
				nullString(days[d]), calendarID, int(d),
			); err != nil {
				return fmt.Errorf("update %s slot: %w", d, err)
			}
		}
		if _, err := tx.Exec(
			`UPDATE chores SET chore_type = ?, amount = ? WHERE id = ?`,
			choreType, amount, id,
		); err != nil {
			return fmt.Errorf("update chore: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the chore and its calendar entry in one transaction.
func (s *ChoreStore) Delete(id int64) error {
	return withTx(s.db, func(tx *sql.Tx) error {
		calendarID, err := scheduleFor(tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM chores WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete chore: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM calendar_days WHERE calendar_id = ?`, calendarID); err != nil {
			return fmt.Errorf("delete calendar days: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM calendar_entries WHERE id = ?`, calendarID); err != nil {
			return fmt.Errorf("delete calendar entry: %w", err)
		}
		return nil
	})
}
