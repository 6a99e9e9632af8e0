package service

import (
	"errors"
	"strings"

	"github.com/dukerupert/chorechart/internal/model"
	"github.com/dukerupert/chorechart/internal/store"
	"github.com/dukerupert/chorechart/internal/weekday"
)

func (s *Service) Child(id string) (*model.Child, error) {
	c, err := s.children.GetByID(id)
	if err != nil {
		return nil, storeErr("Failed to get child", err)
	}
	if c == nil {
		return nil, notFound("Child")
	}
	return c, nil
}

func (s *Service) Children(householdID string) ([]model.Child, error) {
	children, err := s.children.List(householdID)
	if err != nil {
		return nil, storeErr("Failed to list children", err)
	}
	if children == nil {
		children = []model.Child{}
	}
	return children, nil
}

// TodayChores lists the chores childID is assigned to today.
func (s *Service) TodayChores(childID string) ([]model.TodayChore, error) {
	if _, err := s.Child(childID); err != nil {
		return nil, err
	}
	chores, err := s.calendar.ListForDay(childID, s.Today())
	if err != nil {
		return nil, storeErr("Failed to load today's chores", err)
	}
	if chores == nil {
		chores = []model.TodayChore{}
	}
	return chores, nil
}

// WeeklyCalendar lists every calendar entry childID is assigned to on at
// least one day, with per-day assigned and completed flags.
func (s *Service) WeeklyCalendar(childID string) ([]model.WeekEntry, error) {
	if _, err := s.Child(childID); err != nil {
		return nil, err
	}
	entries, err := s.calendar.ListForAssignee(childID)
	if err != nil {
		return nil, storeErr("Failed to load calendar", err)
	}
	chores, err := s.chores.ListForAssignee(childID)
	if err != nil {
		return nil, storeErr("Failed to load calendar", err)
	}

	bySchedule := make(map[int64][]model.Chore)
	for _, c := range chores {
		bySchedule[c.Schedule] = append(bySchedule[c.Schedule], c)
	}

	week := make([]model.WeekEntry, 0, len(entries))
	for _, e := range entries {
		we := model.WeekEntry{
			CalendarID: e.ID,
			Text:       e.Text,
			Days:       make([]model.WeekDay, 0, len(weekday.All)),
			Chores:     bySchedule[e.ID],
		}
		if we.Chores == nil {
			we.Chores = []model.Chore{}
		}
		for _, d := range weekday.All {
			slot := e.Days[d]
			we.Days = append(we.Days, model.WeekDay{
				Day:       d.String(),
				DayIndex:  int(d),
				Assigned:  slot.Assignee != nil && *slot.Assignee == childID,
				Completed: slot.Completed,
			})
		}
		week = append(week, we)
	}
	return week, nil
}

func (s *Service) CalendarEntry(id int64) (*model.CalendarEntry, error) {
	e, err := s.calendar.GetByID(id)
	if err != nil {
		return nil, storeErr("Failed to get calendar entry", err)
	}
	if e == nil {
		return nil, notFound("Calendar entry")
	}
	return e, nil
}

// MarkComplete marks the day complete for childID and awards the chore's
// points. day is an index 0-6 or a weekday name.
func (s *Service) MarkComplete(calendarID int64, childID string, day any) (*model.Completion, error) {
	childID = strings.TrimSpace(childID)
	if childID == "" {
		return nil, invalid("userId is required")
	}
	if day == nil {
		return nil, invalid("Day parameter is required")
	}
	if str, ok := day.(string); ok && strings.TrimSpace(str) == "" {
		return nil, invalid("Day parameter is required")
	}
	d, err := weekday.Parse(day)
	if err != nil {
		return nil, err
	}

	res, err := s.calendar.CompleteDay(calendarID, childID, d)
	switch {
	case errors.Is(err, store.ErrCalendarNotFound):
		return nil, notFound("Calendar entry")
	case errors.Is(err, store.ErrChoreNotFound):
		return nil, notFound("Chore for this calendar entry")
	case errors.Is(err, store.ErrChildNotFound):
		return nil, notFound("Child")
	case errors.Is(err, store.ErrNotAssignee):
		return nil, &ForbiddenError{Msg: "This child is not assigned to this chore on this day"}
	case err != nil:
		return nil, storeErr("Failed to complete chore", err)
	}

	if res.AlreadyCompleted {
		s.logger.Debug("chore already completed", "calendar_id", calendarID, "day", d.String())
	}
	return res, nil
}

// ActiveToday lists today's assigned chores, optionally within one household.
func (s *Service) ActiveToday(householdID string) ([]model.ActiveChore, error) {
	chores, err := s.calendar.ListActive(householdID, s.Today())
	if err != nil {
		return nil, storeErr("Failed to load active chores", err)
	}
	if chores == nil {
		chores = []model.ActiveChore{}
	}
	return chores, nil
}

// InactiveToday lists today's unassigned chores that are not completed.
func (s *Service) InactiveToday(householdID string) ([]model.InactiveChore, error) {
	chores, err := s.calendar.ListInactive(householdID, s.Today())
	if err != nil {
		return nil, storeErr("Failed to load inactive chores", err)
	}
	if chores == nil {
		chores = []model.InactiveChore{}
	}
	return chores, nil
}
