package model

type Chore struct {
	ID         int64  `json:"choreId"`
	ChoreType  string `json:"choreType"`
	Amount     int    `json:"amount"`
	Schedule   int64  `json:"schedule"`
	AssignedBy string `json:"assignedBy"`
}

// ChoreWithSchedule is a chore joined to its calendar entry.
type ChoreWithSchedule struct {
	Chore
	Calendar CalendarEntry `json:"calendar"`
}

// TodayChore is a chore a child is assigned to today.
type TodayChore struct {
	CalendarID int64  `json:"calendarId"`
	Text       string `json:"text"`
	Completed  bool   `json:"completed"`
	ChoreID    int64  `json:"choreId"`
	ChoreType  string `json:"choreType"`
	Amount     int    `json:"amount"`
}

// ActiveChore is an assigned chore in the household-wide listing for a day.
type ActiveChore struct {
	ChoreID    int64  `json:"choreId"`
	ChoreType  string `json:"choreType"`
	Amount     int    `json:"amount"`
	CalendarID int64  `json:"calendarId"`
	Assignee   string `json:"assignee"`
	ChildName  string `json:"childName"`
	Completed  bool   `json:"completed"`
}

// InactiveChore is an unassigned, not completed chore for a day.
type InactiveChore struct {
	ChoreID    int64  `json:"choreId"`
	ChoreType  string `json:"choreType"`
	Amount     int    `json:"amount"`
	CalendarID int64  `json:"calendarId"`
}

// Completion is the outcome of marking a day complete.
type Completion struct {
	CalendarID       int64  `json:"calendarId"`
	HouseholdID      string `json:"householdId"`
	ChildID          string `json:"childId"`
	Day              string `json:"day"`
	PointsAwarded    int    `json:"pointsAwarded"`
	AlreadyCompleted bool   `json:"alreadyCompleted"`
}
