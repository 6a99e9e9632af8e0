package model

import "time"

type Household struct {
	ID        string    `json:"householdId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Parent struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	HouseholdID string `json:"householdId"`
}

type Child struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	HouseholdID string `json:"householdId"`
	Age         *int   `json:"age"`
	TotalPoints int    `json:"totalPoints"`
}

// ChildPoints is a row of the parent overview.
type ChildPoints struct {
	ID          string `json:"userid"`
	Username    string `json:"username"`
	TotalPoints int    `json:"totalpoints"`
}
