package service

import (
	"strconv"
	"strings"

	"github.com/dukerupert/chorechart/internal/model"
)

// NewHousehold is the result of creating a household.
type NewHousehold struct {
	HouseholdID string        `json:"householdId"`
	Parent      model.Parent  `json:"parent"`
	Children    []model.Child `json:"children"`
}

// CreateHousehold creates a household with one parent and at least one child.
func (s *Service) CreateHousehold(parentUsername string, childUsernames []string) (*NewHousehold, error) {
	parentUsername = strings.TrimSpace(parentUsername)
	if parentUsername == "" {
		return nil, invalid("Parent username is required.")
	}
	if len(childUsernames) == 0 {
		return nil, invalid("At least one child username is required.")
	}

	householdID := s.newID()
	out := &NewHousehold{
		HouseholdID: householdID,
		Parent:      model.Parent{ID: s.newID(), Username: parentUsername, HouseholdID: householdID},
		Children:    make([]model.Child, 0, len(childUsernames)),
	}
	for i, name := range childUsernames {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &ValidationError{
				Msg:    "Child usernames must not be empty.",
				Fields: map[string]string{"children": "entry " + strconv.Itoa(i) + " is empty"},
			}
		}
		out.Children = append(out.Children, model.Child{ID: s.newID(), Username: name, HouseholdID: householdID})
	}

	if err := s.households.Create(householdID, out.Parent, out.Children); err != nil {
		return nil, storeErr("Failed to create household", err)
	}
	s.logger.Info("household created", "household_id", householdID, "children", len(out.Children))
	return out, nil
}

// LoginParent checks that the household exists and returns its parent.
func (s *Service) LoginParent(householdID string) (*model.Parent, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, invalid("householdId is required")
	}
	h, err := s.households.GetByID(householdID)
	if err != nil {
		return nil, storeErr("Login failed", err)
	}
	if h == nil {
		return nil, notFound("Household")
	}
	p, err := s.households.ParentForHousehold(householdID)
	if err != nil {
		return nil, storeErr("Login failed", err)
	}
	if p == nil {
		return nil, notFound("Parent")
	}
	return p, nil
}

// LoginChild checks that the username belongs to a child of the household.
func (s *Service) LoginChild(householdID, username string) (*model.Child, error) {
	householdID = strings.TrimSpace(householdID)
	username = strings.TrimSpace(username)
	if householdID == "" || username == "" {
		return nil, invalid("householdId and childUsername are required")
	}
	c, err := s.children.GetByUsername(householdID, username)
	if err != nil {
		return nil, storeErr("Login failed", err)
	}
	if c == nil {
		return nil, notFound("Child in this household")
	}
	return c, nil
}

// ParentOverview lists every child's points, optionally within one household.
func (s *Service) ParentOverview(householdID string) ([]model.ChildPoints, error) {
	points, err := s.children.ListPoints(householdID)
	if err != nil {
		return nil, storeErr("Failed to load overview", err)
	}
	if points == nil {
		points = []model.ChildPoints{}
	}
	return points, nil
}
