package model

import (
	"encoding/json"

	"github.com/dukerupert/chorechart/internal/weekday"
)

// DaySlot is one weekday of a calendar entry.
type DaySlot struct {
	Day       weekday.Day `json:"-"`
	Assignee  *string     `json:"assignee"`
	Completed bool        `json:"completed"`
}

type CalendarEntry struct {
	ID          int64      `json:"calendarId"`
	HouseholdID string     `json:"householdId"`
	Text        string     `json:"text"`
	Days        [7]DaySlot `json:"-"`
}

// MarshalJSON flattens the day slots into their assignee/completed column keys.
func (c CalendarEntry) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"calendarId":  c.ID,
		"householdId": c.HouseholdID,
		"text":        c.Text,
	}
	for _, d := range weekday.All {
		cols := d.Columns()
		out[cols.Assignee] = c.Days[d].Assignee
		out[cols.Completed] = c.Days[d].Completed
	}
	return json.Marshal(out)
}

// Assignments maps each day to its assignee, nil meaning unassigned.
type Assignments [7]*string

// WeekDay is a day of a child's weekly view.
type WeekDay struct {
	Day       string `json:"day"`
	DayIndex  int    `json:"dayIndex"`
	Assigned  bool   `json:"assigned"`
	Completed bool   `json:"completed"`
}

// WeekEntry is a calendar entry as seen by one child across the week.
type WeekEntry struct {
	CalendarID int64     `json:"calendarId"`
	Text       string    `json:"text"`
	Days       []WeekDay `json:"days"`
	Chores     []Chore   `json:"chores"`
}

// MarshalJSON adds flat <day>Assigned and <day>Completed keys (1 or 0) next to
// the days list, the shape dashboards index by day name.
func (e WeekEntry) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"calendarId": e.CalendarID,
		"text":       e.Text,
		"days":       e.Days,
		"chores":     e.Chores,
	}
	for _, wd := range e.Days {
		d, err := weekday.FromIndex(wd.DayIndex)
		if err != nil {
			return nil, err
		}
		out[d.Key()+"Assigned"] = flag(wd.Assigned)
		out[d.Key()+"Completed"] = flag(wd.Completed)
	}
	return json.Marshal(out)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
