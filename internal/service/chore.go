package service

import (
	"errors"
	"strings"

	"github.com/dukerupert/chorechart/internal/model"
	"github.com/dukerupert/chorechart/internal/store"
	"github.com/dukerupert/chorechart/internal/weekday"
)

const unassigned = "unassigned"

// ChoreInput is the writable part of a chore. Days maps weekday names to a
// child id; a missing, empty or "unassigned" value leaves that day open.
type ChoreInput struct {
	ChoreType   string
	Amount      int
	Days        map[string]string
	HouseholdID string
	ParentID    string
}

func (in *ChoreInput) normalize() error {
	in.ChoreType = strings.TrimSpace(in.ChoreType)
	if in.ChoreType == "" {
		return invalid("choreType is required")
	}
	if in.Amount <= 0 {
		return invalid("amount must be greater than 0")
	}
	if in.Days == nil {
		return invalid("days is required")
	}
	return nil
}

// assignments resolves the day map into one optional assignee per weekday.
func assignments(days map[string]string) (model.Assignments, error) {
	var a model.Assignments
	var seen [7]bool
	for name, childID := range days {
		d, err := weekday.FromName(name)
		if err != nil {
			return a, &ValidationError{
				Msg:    "days contains an unknown day",
				Fields: map[string]string{"days": name},
			}
		}
		if seen[d] {
			return a, &ValidationError{
				Msg:    "days names " + d.String() + " more than once",
				Fields: map[string]string{"days": d.Key()},
			}
		}
		seen[d] = true
		childID = strings.TrimSpace(childID)
		if childID == "" || strings.EqualFold(childID, unassigned) {
			a[d] = nil
			continue
		}
		a[d] = &childID
	}
	return a, nil
}

// checkAssignees verifies every assignee is a child of householdID.
func (s *Service) checkAssignees(householdID string, a model.Assignments) error {
	seen := make(map[string]bool)
	for _, d := range weekday.All {
		id := a[d]
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		c, err := s.children.GetByID(*id)
		if err != nil {
			return storeErr("Failed to check assignee", err)
		}
		if c == nil || c.HouseholdID != householdID {
			return &ValidationError{
				Msg:    "assignee is not a child of this household",
				Fields: map[string]string{d.Key(): *id},
			}
		}
	}
	return nil
}

func (s *Service) CreateChore(in ChoreInput) (*model.ChoreWithSchedule, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	in.HouseholdID = strings.TrimSpace(in.HouseholdID)
	in.ParentID = strings.TrimSpace(in.ParentID)
	if in.HouseholdID == "" || in.ParentID == "" {
		return nil, invalid("householdId and parentId are required")
	}
	a, err := assignments(in.Days)
	if err != nil {
		return nil, err
	}

	parent, err := s.households.GetParent(in.ParentID)
	if err != nil {
		return nil, storeErr("Failed to create chore", err)
	}
	if parent == nil || parent.HouseholdID != in.HouseholdID {
		return nil, notFound("Parent in this household")
	}
	if err := s.checkAssignees(in.HouseholdID, a); err != nil {
		return nil, err
	}

	chore, err := s.chores.Create(in.HouseholdID, in.ParentID, in.ChoreType, in.Amount, a)
	if err != nil {
		return nil, storeErr("Failed to create chore", err)
	}
	return chore, nil
}

func (s *Service) Chore(id int64) (*model.ChoreWithSchedule, error) {
	chore, err := s.chores.GetByID(id)
	if err != nil {
		return nil, storeErr("Failed to get chore", err)
	}
	if chore == nil {
		return nil, notFound("Chore")
	}
	return chore, nil
}

func (s *Service) Chores(householdID string) ([]model.ChoreWithSchedule, error) {
	chores, err := s.chores.List(householdID)
	if err != nil {
		return nil, storeErr("Failed to list chores", err)
	}
	if chores == nil {
		chores = []model.ChoreWithSchedule{}
	}
	return chores, nil
}

// UpdateChore overwrites the chore's type, amount and all seven day
// assignments. Days missing from in.Days become unassigned.
func (s *Service) UpdateChore(id int64, in ChoreInput) (*model.ChoreWithSchedule, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	a, err := assignments(in.Days)
	if err != nil {
		return nil, err
	}

	existing, err := s.Chore(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkAssignees(existing.Calendar.HouseholdID, a); err != nil {
		return nil, err
	}

	chore, err := s.chores.Update(id, in.ChoreType, in.Amount, a)
	if errors.Is(err, store.ErrChoreNotFound) {
		return nil, notFound("Chore")
	}
	if err != nil {
		return nil, storeErr("Failed to update chore", err)
	}
	return chore, nil
}

// DeleteChore removes the chore and its calendar entry and returns what was
// deleted.
func (s *Service) DeleteChore(id int64) (*model.ChoreWithSchedule, error) {
	existing, err := s.Chore(id)
	if err != nil {
		return nil, err
	}
	err = s.chores.Delete(id)
	if errors.Is(err, store.ErrChoreNotFound) {
		return nil, notFound("Chore")
	}
	if err != nil {
		return nil, storeErr("Failed to delete chore", err)
	}
	return existing, nil
}
