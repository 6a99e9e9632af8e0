package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/dukerupert/chorechart/internal/database"
	"github.com/dukerupert/chorechart/internal/model"
	"github.com/dukerupert/chorechart/internal/service"
	"github.com/dukerupert/chorechart/internal/websocket"
)

// monday is 2026-10-12, a Monday.
var monday = time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	mux *http.ServeMux
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(db, time.UTC, logger).WithClock(func() time.Time { return monday })
	hub := websocket.NewHub(logger)

	hh := NewHouseholdHandler(svc, logger)
	ch := NewChildHandler(svc, logger)
	cal := NewCalendarHandler(svc, hub, logger)
	chore := NewChoreHandler(svc, hub, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /households", hh.Create)
	mux.HandleFunc("POST /login/parent", hh.LoginParent)
	mux.HandleFunc("POST /login/child", hh.LoginChild)
	mux.HandleFunc("GET /parent-overview", hh.ParentOverview)
	mux.HandleFunc("GET /children", ch.List)
	mux.HandleFunc("GET /children/{id}", ch.Get)
	mux.HandleFunc("GET /children/{id}/today-chores", ch.TodayChores)
	mux.HandleFunc("GET /children/{id}/calendar", ch.Calendar)
	mux.HandleFunc("GET /calendar/{id}", cal.Get)
	mux.HandleFunc("PUT /calendar/{id}/complete", cal.Complete)
	mux.HandleFunc("GET /today", cal.Today)
	mux.HandleFunc("GET /chores", chore.List)
	mux.HandleFunc("POST /chores", chore.Create)
	mux.HandleFunc("GET /chores/active", chore.Active)
	mux.HandleFunc("GET /chores/inactive", chore.Inactive)
	mux.HandleFunc("GET /chores/{id}", chore.Get)
	mux.HandleFunc("PUT /chores/{id}", chore.Update)
	mux.HandleFunc("DELETE /chores/{id}", chore.Delete)
	return &testEnv{mux: mux}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	decodeBody(t, rec, &body)
	return body.Error
}

func createHousehold(t *testing.T, e *testEnv) service.NewHousehold {
	t.Helper()
	rec := e.do(t, "POST", "/households", map[string]any{
		"parentUsername": "alice",
		"children":       []string{"bob", "cara"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create household: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var h service.NewHousehold
	decodeBody(t, rec, &h)
	return h
}

func createChore(t *testing.T, e *testEnv, h service.NewHousehold, days map[string]any) model.ChoreWithSchedule {
	t.Helper()
	rec := e.do(t, "POST", "/chores", map[string]any{
		"choreType":   "Dishes",
		"amount":      10,
		"days":        days,
		"householdId": h.HouseholdID,
		"parentId":    h.Parent.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create chore: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var c model.ChoreWithSchedule
	decodeBody(t, rec, &c)
	return c
}

func TestCreateHousehold(t *testing.T) {
	e := setup(t)
	h := createHousehold(t, e)

	if h.HouseholdID == "" || len(h.Children) != 2 {
		t.Fatalf("household = %+v", h)
	}
	for _, c := range h.Children {
		if c.TotalPoints != 0 {
			t.Errorf("child %s starts with %d points", c.Username, c.TotalPoints)
		}
	}
}

func TestCreateHouseholdValidation(t *testing.T) {
	e := setup(t)

	tests := []struct {
		name string
		body any
		want string
	}{
		{"missing parent", map[string]any{"children": []string{"bob"}}, "Parent username is required."},
		{"no children", map[string]any{"parentUsername": "alice", "children": []string{}}, "At least one child username is required."},
		{"malformed", "{not json", "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, "POST", "/households", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if got := errorMessage(t, rec); got != tt.want {
				t.Errorf("error = %q, want %q", got, tt.want)
			}
		})
	}

	rec := e.do(t, "GET", "/children", nil)
	var children []model.Child
	decodeBody(t, rec, &children)
	if len(children) != 0 {
		t.Errorf("failed creates left %d children", len(children))
	}
}

func TestLogin(t *testing.T) {
	e := setup(t)
	h := createHousehold(t, e)

	rec := e.do(t, "POST", "/login/parent", map[string]string{"householdId": h.HouseholdID})
	if rec.Code != http.StatusOK {
		t.Fatalf("parent login: status = %d", rec.Code)
	}
	var parent map[string]string
	decodeBody(t, rec, &parent)
	if parent["parentId"] != h.Parent.ID || parent["username"] != "alice" {
		t.Errorf("parent login = %v", parent)
	}

	rec = e.do(t, "POST", "/login/child", map[string]string{"householdId": h.HouseholdID, "childUsername": "cara"})
	if rec.Code != http.StatusOK {
		t.Fatalf("child login: status = %d", rec.Code)
	}
	var child map[string]string
	decodeBody(t, rec, &child)
	if child["childId"] != h.Children[1].ID {
		t.Errorf("child login = %v", child)
	}

	rec = e.do(t, "POST", "/login/child", map[string]string{"householdId": h.HouseholdID, "childUsername": "zed"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown child: status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = e.do(t, "POST", "/login/parent", map[string]string{"householdId": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank household: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got := errorMessage(t, rec); got != "householdId cannot be blank" {
		t.Errorf("error = %q", got)
	}
}

func TestCompleteChore(t *testing.T) {
	e := setup(t)
	h := createHousehold(t, e)
	bob, cara := h.Children[0].ID, h.Children[1].ID
	chore := createChore(t, e, h, map[string]any{"monday": bob, "tuesday": nil})
	path := "/calendar/" + strconv.FormatInt(chore.Schedule, 10) + "/complete"

	rec := e.do(t, "PUT", path, map[string]any{"userId": cara, "day": "Monday"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong child: status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	rec = e.do(t, "PUT", path, map[string]any{"userId": bob, "day": "funday"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid day: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = e.do(t, "PUT", path, map[string]any{"userId": bob, "day": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res struct {
		PointsAwarded    int  `json:"pointsAwarded"`
		AlreadyCompleted bool `json:"alreadyCompleted"`
	}
	decodeBody(t, rec, &res)
	if res.PointsAwarded != 10 || res.AlreadyCompleted {
		t.Errorf("first completion = %+v", res)
	}

	rec = e.do(t, "PUT", path, map[string]any{"userId": bob, "day": "monday"})
	decodeBody(t, rec, &res)
	if res.PointsAwarded != 0 || !res.AlreadyCompleted {
		t.Errorf("second completion = %+v", res)
	}

	rec = e.do(t, "GET", "/children/"+bob, nil)
	var child model.Child
	decodeBody(t, rec, &child)
	if child.TotalPoints != 10 {
		t.Errorf("total points = %d, want 10", child.TotalPoints)
	}

	rec = e.do(t, "PUT", "/calendar/9999/complete", map[string]any{"userId": bob, "day": "monday"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown entry: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestChoreCRUD(t *testing.T) {
	e := setup(t)
	h := createHousehold(t, e)
	bob := h.Children[0].ID
	chore := createChore(t, e, h, map[string]any{"monday": bob, "friday": "unassigned"})
	path := "/chores/" + strconv.FormatInt(chore.ID, 10)

	rec := e.do(t, "GET", path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	var raw map[string]any
	decodeBody(t, rec, &raw)
	cal, _ := raw["calendar"].(map[string]any)
	if cal["mondayassignee"] != bob || cal["fridayassignee"] != nil {
		t.Errorf("calendar = %v", cal)
	}

	rec = e.do(t, "PUT", path, map[string]any{
		"choreType": "Laundry",
		"amount":    5,
		"days":      map[string]any{"wednesday": bob},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated model.ChoreWithSchedule
	decodeBody(t, rec, &updated)
	if updated.ChoreType != "Laundry" || updated.Amount != 5 {
		t.Errorf("updated = %+v", updated.Chore)
	}

	rec = e.do(t, "DELETE", path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	rec = e.do(t, "GET", path, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	rec = e.do(t, "GET", "/calendar/"+strconv.FormatInt(chore.Schedule, 10), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("calendar after delete: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	rec = e.do(t, "DELETE", path, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCreateChoreValidation(t *testing.T) {
	e := setup(t)
	h := createHousehold(t, e)

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"blank type", map[string]any{"choreType": " ", "amount": 1, "days": map[string]any{}, "householdId": h.HouseholdID, "parentId": h.Parent.ID}, "choreType"},
		{"zero amount", map[string]any{"choreType": "Dishes", "amount": 0, "days": map[string]any{}, "householdId": h.HouseholdID, "parentId": h.Parent.ID}, "amount"},
		{"no days", map[string]any{"choreType": "Dishes", "amount": 1, "householdId": h.HouseholdID, "parentId": h.Parent.ID}, "days"},
		{"no parent", map[string]any{"choreType": "Dishes", "amount": 1, "days": map[string]any{}, "householdId": h.HouseholdID}, "parentId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, "POST", "/chores", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			var body errorBody
			decodeBody(t, rec, &body)
			if _, ok := body.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want %s", body.Fields, tt.field)
			}
		})
	}

	rec := e.do(t, "POST", "/chores", map[string]any{
		"choreType": "Dishes", "amount": 1, "days": map[string]any{"someday": nil},
		"householdId": h.HouseholdID, "parentId": h.Parent.ID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown day: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestTodayListings(t *testing.T) {
	e := setup(t)
	h := createHousehold(t, e)
	bob := h.Children[0].ID
	createChore(t, e, h, map[string]any{"monday": bob})
	createChore(t, e, h, map[string]any{"tuesday": bob})

	rec := e.do(t, "GET", "/today", nil)
	var today struct {
		Day      string `json:"day"`
		DayIndex int    `json:"dayIndex"`
	}
	decodeBody(t, rec, &today)
	if today.Day != "Monday" || today.DayIndex != 1 {
		t.Errorf("today = %+v", today)
	}

	rec = e.do(t, "GET", "/children/"+bob+"/today-chores", nil)
	var todays []model.TodayChore
	decodeBody(t, rec, &todays)
	if len(todays) != 1 {
		t.Errorf("today chores = %d, want 1", len(todays))
	}

	rec = e.do(t, "GET", "/chores/active?householdId="+h.HouseholdID, nil)
	var active []model.ActiveChore
	decodeBody(t, rec, &active)
	if len(active) != 1 || active[0].ChildName != "bob" {
		t.Errorf("active = %+v", active)
	}

	rec = e.do(t, "GET", "/chores/inactive?householdId="+h.HouseholdID, nil)
	var inactive []model.InactiveChore
	decodeBody(t, rec, &inactive)
	if len(inactive) != 1 {
		t.Errorf("inactive = %+v", inactive)
	}

	rec = e.do(t, "GET", "/children/"+bob+"/calendar", nil)
	var week []model.WeekEntry
	decodeBody(t, rec, &week)
	if len(week) != 2 {
		t.Fatalf("week entries = %d, want 2", len(week))
	}
	if len(week[0].Days) != 7 || !week[0].Days[1].Assigned {
		t.Errorf("week[0] days = %+v", week[0].Days)
	}

	rec = e.do(t, "GET", "/children/nobody/calendar", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown child calendar: status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = e.do(t, "GET", "/parent-overview?householdId="+h.HouseholdID, nil)
	var points []model.ChildPoints
	decodeBody(t, rec, &points)
	if len(points) != 2 {
		t.Errorf("overview = %+v", points)
	}
}
