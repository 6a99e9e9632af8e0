// Package service implements the household and chore operations on top of
// the stores. Every operation returns one of the typed errors in errors.go.
package service

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/dukerupert/chorechart/internal/store"
	"github.com/dukerupert/chorechart/internal/weekday"
	"github.com/google/uuid"
)

type Service struct {
	households *store.HouseholdStore
	children   *store.ChildStore
	calendar   *store.CalendarStore
	chores     *store.ChoreStore
	loc        *time.Location
	now        func() time.Time
	newID      func() string
	logger     *slog.Logger
}

func New(db *sql.DB, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		households: store.NewHouseholdStore(db),
		children:   store.NewChildStore(db),
		calendar:   store.NewCalendarStore(db),
		chores:     store.NewChoreStore(db),
		loc:        loc,
		now:        time.Now,
		newID:      uuid.NewString,
		logger:     logger,
	}
}

// WithClock replaces the clock used to resolve today.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the current weekday in the service's location.
func (s *Service) Today() weekday.Day {
	return weekday.Of(s.now().In(s.loc))
}
