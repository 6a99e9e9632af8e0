package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorechart/internal/model"
	"github.com/dukerupert/chorechart/internal/weekday"
)

type CalendarStore struct {
	db *sql.DB
}

func NewCalendarStore(db *sql.DB) *CalendarStore {
	return &CalendarStore{db: db}
}

const entryDayQuery = `SELECT ce.id, ce.household_id, ce.label, cd.day_index, cd.assignee_id, cd.completed
	FROM calendar_entries ce
	JOIN calendar_days cd ON cd.calendar_id = ce.id`

func newEntry(id int64, householdID, text string) *model.CalendarEntry {
	e := &model.CalendarEntry{ID: id, HouseholdID: householdID, Text: text}
	for _, d := range weekday.All {
		e.Days[d].Day = d
	}
	return e
}

// queryEntries runs entryDayQuery with the given filter and folds the day rows
// into calendar entries, preserving entry id order.
func queryEntries(q querier, where string, args ...any) ([]model.CalendarEntry, error) {
	rows, err := q.Query(entryDayQuery+` WHERE `+where+` ORDER BY ce.id ASC, cd.day_index ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query calendar entries: %w", err)
	}
	defer rows.Close()

	var order []int64
	byID := make(map[int64]*model.CalendarEntry)
	for rows.Next() {
		var (
			id          int64
			householdID string
			label       string
			dayIndex    int
			assignee    sql.NullString
			completed   bool
		)
		if err := rows.Scan(&id, &householdID, &label, &dayIndex, &assignee, &completed); err != nil {
			return nil, fmt.Errorf("scan calendar day: %w", err)
		}
		e, ok := byID[id]
		if !ok {
			e = newEntry(id, householdID, label)
			byID[id] = e
			order = append(order, id)
		}
		d, err := weekday.FromIndex(dayIndex)
		if err != nil {
			return nil, fmt.Errorf("calendar %d: %w", id, err)
		}
		e.Days[d].Assignee = stringPtr(assignee)
		e.Days[d].Completed = completed
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := make([]model.CalendarEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *byID[id])
	}
	return entries, nil
}

func getEntry(q querier, id int64) (*model.CalendarEntry, error) {
	entries, err := queryEntries(q, `ce.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *CalendarStore) GetByID(id int64) (*model.CalendarEntry, error) {
	e, err := getEntry(s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get calendar entry: %w", err)
	}
	return e, nil
}

// ListForAssignee returns every entry the child is assigned to on at least one day.
func (s *CalendarStore) ListForAssignee(childID string) ([]model.CalendarEntry, error) {
	entries, err := queryEntries(s.db,
		`ce.id IN (SELECT calendar_id FROM calendar_days WHERE assignee_id = ?)`,
		childID,
	)
	if err != nil {
		return nil, fmt.Errorf("list calendar for assignee: %w", err)
	}
	return entries, nil
}

// ListForDay returns the chores assigned to childID on day.
func (s *CalendarStore) ListForDay(childID string, day weekday.Day) ([]model.TodayChore, error) {
	rows, err := s.db.Query(
		`SELECT ce.id, ce.label, cd.completed, c.id, c.chore_type, c.amount
		 FROM calendar_entries ce
		 JOIN calendar_days cd ON cd.calendar_id = ce.id AND cd.day_index = ?
		 JOIN chores c ON c.calendar_id = ce.id
		 WHERE cd.assignee_id = ?
		 ORDER BY ce.id ASC`,
		int(day), childID,
	)
	if err != nil {
		return nil, fmt.Errorf("list chores for day: %w", err)
	}
	defer rows.Close()

	var chores []model.TodayChore
	for rows.Next() {
		var tc model.TodayChore
		if err := rows.Scan(&tc.CalendarID, &tc.Text, &tc.Completed, &tc.ChoreID, &tc.ChoreType, &tc.Amount); err != nil {
			return nil, fmt.Errorf("scan chore for day: %w", err)
		}
		chores = append(chores, tc)
	}
	return chores, rows.Err()
}

// ListActive returns chores with an assignee on day. An empty householdID
// matches every household.
func (s *CalendarStore) ListActive(householdID string, day weekday.Day) ([]model.ActiveChore, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.chore_type, c.amount, ce.id, cd.assignee_id, ch.username, cd.completed
		 FROM chores c
		 JOIN calendar_entries ce ON ce.id = c.calendar_id
		 JOIN calendar_days cd ON cd.calendar_id = ce.id AND cd.day_index = ?
		 JOIN children ch ON ch.id = cd.assignee_id
		 WHERE (? = '' OR ce.household_id = ?)
		 ORDER BY ch.username ASC, c.id ASC`,
		int(day), householdID, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list active chores: %w", err)
	}
	defer rows.Close()

	var chores []model.ActiveChore
	for rows.Next() {
		var ac model.ActiveChore
		if err := rows.Scan(&ac.ChoreID, &ac.ChoreType, &ac.Amount, &ac.CalendarID, &ac.Assignee, &ac.ChildName, &ac.Completed); err != nil {
			return nil, fmt.Errorf("scan active chore: %w", err)
		}
		chores = append(chores, ac)
	}
	return chores, rows.Err()
}

// ListInactive returns chores nobody is assigned to on day that are not completed.
func (s *CalendarStore) ListInactive(householdID string, day weekday.Day) ([]model.InactiveChore, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.chore_type, c.amount, ce.id
		 FROM chores c
		 JOIN calendar_entries ce ON ce.id = c.calendar_id
		 JOIN calendar_days cd ON cd.calendar_id = ce.id AND cd.day_index = ?
		 WHERE cd.assignee_id IS NULL AND cd.completed = 0
		   AND (? = '' OR ce.household_id = ?)
		 ORDER BY c.id ASC`,
		int(day), householdID, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list inactive chores: %w", err)
	}
	defer rows.Close()

	var chores []model.InactiveChore
	for rows.Next() {
		var ic model.InactiveChore
		if err := rows.Scan(&ic.ChoreID, &ic.ChoreType, &ic.Amount, &ic.CalendarID); err != nil {
			return nil, fmt.Errorf("scan inactive chore: %w", err)
		}
		chores = append(chores, ic)
	}
	return chores, rows.Err()
}

// CompleteDay marks day complete on the calendar entry and awards the chore's
// points to childID in one transaction. A day that is already complete is left
// alone and awards nothing.
func (s *CalendarStore) CompleteDay(calendarID int64, childID string, day weekday.Day) (*model.Completion, error) {
	result := &model.Completion{CalendarID: calendarID, ChildID: childID, Day: day.String()}

	err := withTx(s.db, func(tx *sql.Tx) error {
		var assignee sql.NullString
		err := tx.QueryRow(
			`SELECT ce.household_id, cd.assignee_id FROM calendar_entries ce
			 JOIN calendar_days cd ON cd.calendar_id = ce.id AND cd.day_index = ?
			 WHERE ce.id = ?`,
			int(day), calendarID,
		).Scan(&result.HouseholdID, &assignee)
		if err == sql.ErrNoRows {
			return ErrCalendarNotFound
		}
		if err != nil {
			return fmt.Errorf("get assignee: %w", err)
		}
		if !assignee.Valid || assignee.String != childID {
			return ErrNotAssignee
		}

		var amount int
		err = tx.QueryRow(`SELECT amount FROM chores WHERE calendar_id = ? ORDER BY id ASC LIMIT 1`, calendarID).Scan(&amount)
		if err == sql.ErrNoRows {
			return ErrChoreNotFound
		}
		if err != nil {
			return fmt.Errorf("get chore amount: %w", err)
		}

		res, err := tx.Exec(
			`UPDATE calendar_days SET completed = 1 WHERE calendar_id = ? AND day_index = ? AND completed = 0`,
			calendarID, int(day),
		)
		if err != nil {
			return fmt.Errorf("mark completed: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			result.AlreadyCompleted = true
			return nil
		}

		res, err = tx.Exec(`UPDATE children SET total_points = total_points + ? WHERE id = ?`, amount, childID)
		if err != nil {
			return fmt.Errorf("award points: %w", err)
		}
		if n, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return ErrChildNotFound
		}
		result.PointsAwarded = amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
