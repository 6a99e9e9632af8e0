// Package weekday maps day selectors to the per-weekday slots of a calendar
// entry. It is the only place a day index or name is interpreted.
package weekday

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Day is a day of the week, 0 = Sunday through 6 = Saturday.
type Day int

const (
	Sunday Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// All lists every day in index order.
var All = [7]Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var dayKeys = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

var byName = map[string]Day{
	"sunday":    Sunday,
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
}

// Columns holds the logical identifiers of a day's assignee and completed
// fields on a calendar entry.
type Columns struct {
	Assignee  string
	Completed string
}

// InvalidDayError reports a selector that is not an index 0-6 or a weekday name.
type InvalidDayError struct {
	Value any
}

func (e *InvalidDayError) Error() string {
	return fmt.Sprintf("invalid day %v", e.Value)
}

// FromIndex returns the day for a 0-based index.
func FromIndex(i int) (Day, error) {
	if i < 0 || i > 6 {
		return 0, &InvalidDayError{Value: i}
	}
	return Day(i), nil
}

// FromName returns the day for a case-insensitive English weekday name.
func FromName(name string) (Day, error) {
	d, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, &InvalidDayError{Value: name}
	}
	return d, nil
}

// Parse resolves a selector that is either an integer index or a weekday name.
// Integral float64 values are accepted so selectors decoded from JSON numbers work.
func Parse(selector any) (Day, error) {
	switch v := selector.(type) {
	case Day:
		return FromIndex(int(v))
	case int:
		return FromIndex(v)
	case int64:
		if v < 0 || v > 6 {
			return 0, &InvalidDayError{Value: v}
		}
		return Day(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, &InvalidDayError{Value: v}
		}
		if v < 0 || v > 6 {
			return 0, &InvalidDayError{Value: v}
		}
		return Day(v), nil
	case string:
		return FromName(v)
	case time.Weekday:
		return FromIndex(int(v))
	default:
		return 0, &InvalidDayError{Value: selector}
	}
}

// Of returns the weekday of t in t's location.
func Of(t time.Time) Day {
	return Day(t.Weekday())
}

// Valid reports whether d is one of the seven days.
func (d Day) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// Key is the lowercase name, used as the JSON key for day assignments.
func (d Day) Key() string {
	if !d.Valid() {
		return ""
	}
	return dayKeys[d]
}

// String returns the capitalized English name.
func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return time.Weekday(d).String()
}

// Columns returns the assignee/completed identifier pair for d.
func (d Day) Columns() Columns {
	k := d.Key()
	return Columns{Assignee: k + "assignee", Completed: k + "completed"}
}
