package store

import (
	"errors"
	"testing"

	"github.com/dukerupert/chorechart/internal/model"
	"github.com/dukerupert/chorechart/internal/weekday"
	"github.com/google/go-cmp/cmp"
)

func strp(s string) *string { return &s }

func assign(pairs map[weekday.Day]string) model.Assignments {
	var a model.Assignments
	for d, id := range pairs {
		a[d] = strp(id)
	}
	return a
}

func TestChoreCreate(t *testing.T) {
	db := setupTestDB(t)
	seedHousehold(t, db)
	cs := NewChoreStore(db)

	chore, err := cs.Create("h1", "p1", "Dishes", 10, assign(map[weekday.Day]string{
		weekday.Monday:    "c1",
		weekday.Wednesday: "c2",
	}))
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}
	if chore.ChoreType != "Dishes" || chore.Amount != 10 || chore.AssignedBy != "p1" {
		t.Errorf("chore = %+v", chore.Chore)
	}
	if chore.Schedule == 0 || chore.Calendar.ID != chore.Schedule {
		t.Errorf("schedule = %d, calendar id = %d", chore.Schedule, chore.Calendar.ID)
	}
	if chore.Calendar.Text != "Dishes" {
		t.Errorf("calendar text = %q, want Dishes", chore.Calendar.Text)
	}

	for _, d := range weekday.All {
		slot := chore.Calendar.Days[d]
		if slot.Day != d {
			t.Errorf("slot %d has day %v", d, slot.Day)
		}
		if slot.Completed {
			t.Errorf("%s should not be completed", d)
		}
		switch d {
		case weekday.Monday:
			if slot.Assignee == nil || *slot.Assignee != "c1" {
				t.Errorf("monday assignee = %v, want c1", slot.Assignee)
			}
		case weekday.Wednesday:
			if slot.Assignee == nil || *slot.Assignee != "c2" {
				t.Errorf("wednesday assignee = %v, want c2", slot.Assignee)
			}
		default:
			if slot.Assignee != nil {
				t.Errorf("%s assignee = %q, want unassigned", d, *slot.Assignee)
			}
		}
	}
}

func TestChoreCreateUnknownAssigneeRollsBack(t *testing.T) {
	db := setupTestDB(t)
	seedHousehold(t, db)
	cs := NewChoreStore(db)

	_, err := cs.Create("h1", "p1", "Dishes", 10, assign(map[weekday.Day]string{weekday.Friday: "ghost"}))
	if err == nil {
		t.Fatal("expected foreign key error for unknown assignee")
	}

	chores, err := cs.List("h1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(chores) != 0 {
		t.Errorf("expected no chores after rollback, got %d", len(chores))
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM calendar_entries`).Scan(&n); err != nil {
		t.Fatalf("count calendar: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no calendar entries after rollback, got %d", n)
	}
}

func TestChoreUpdateKeepsCompletion(t *testing.T) {
	db := setupTestDB(t)
	seedHousehold(t, db)
	cs := NewChoreStore(db)
	cal := NewCalendarStore(db)

	chore, err := cs.Create("h1", "p1", "Dishes", 10, assign(map[weekday.Day]string{
		weekday.Monday:  "c1",
		weekday.Tuesday: "c1",
	}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cal.CompleteDay(chore.Schedule, "c1", weekday.Monday); err != nil {
		t.Fatalf("complete: %v", err)
	}

	updated, err := cs.Update(chore.ID, "Dishes and pans", 15, assign(map[weekday.Day]string{
		weekday.Monday:   "c2",
		weekday.Thursday: "c2",
	}))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ChoreType != "Dishes and pans" || updated.Amount != 15 {
		t.Errorf("updated chore = %+v", updated.Chore)
	}
	if updated.Calendar.Text != "Dishes and pans" {
		t.Errorf("calendar text = %q", updated.Calendar.Text)
	}

	days := updated.Calendar.Days
	if days[weekday.Tuesday].Assignee != nil {
		t.Error("tuesday should be unassigned after update")
	}
	if days[weekday.Monday].Assignee == nil || *days[weekday.Monday].Assignee != "c2" {
		t.Errorf("monday assignee = %v, want c2", days[weekday.Monday].Assignee)
	}
	if !days[weekday.Monday].Completed {
		t.Error("monday completion must survive an update")
	}
	if days[weekday.Thursday].Completed {
		t.Error("thursday should not be completed")
	}
}

func TestChoreUpdateNotFound(t *testing.T) {
	db := setupTestDB(t)
	cs := NewChoreStore(db)

	_, err := cs.Update(999, "x", 1, model.Assignments{})
	if !errors.Is(err, ErrChoreNotFound) {
		t.Errorf("err = %v, want ErrChoreNotFound", err)
	}
}

func TestChoreDelete(t *testing.T) {
	db := setupTestDB(t)
	seedHousehold(t, db)
	cs := NewChoreStore(db)
	cal := NewCalendarStore(db)

	chore, err := cs.Create("h1", "p1", "Trash", 5, assign(map[weekday.Day]string{weekday.Sunday: "c2"}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := cs.Delete(chore.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := cs.GetByID(chore.ID)
	if err != nil {
		t.Fatalf("get chore: %v", err)
	}
	if got != nil {
		t.Error("expected chore to be deleted")
	}
	entry, err := cal.GetByID(chore.Schedule)
	if err != nil {
		t.Fatalf("get calendar: %v", err)
	}
	if entry != nil {
		t.Error("expected calendar entry to be deleted")
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM calendar_days WHERE calendar_id = ?`, chore.Schedule).Scan(&n); err != nil {
		t.Fatalf("count days: %v", err)
	}
	if n != 0 {
		t.Errorf("expected day slots to be deleted, got %d", n)
	}

	if err := cs.Delete(chore.ID); !errors.Is(err, ErrChoreNotFound) {
		t.Errorf("second delete err = %v, want ErrChoreNotFound", err)
	}
}

func TestChoreListHousehold(t *testing.T) {
	db := setupTestDB(t)
	seedHousehold(t, db)
	hs := NewHouseholdStore(db)
	if err := hs.Create("h2", model.Parent{ID: "p2", Username: "dan"}, []model.Child{{ID: "c3", Username: "eve"}}); err != nil {
		t.Fatalf("create h2: %v", err)
	}
	cs := NewChoreStore(db)

	a, err := cs.Create("h1", "p1", "Dishes", 10, assign(map[weekday.Day]string{weekday.Monday: "c1"}))
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	if _, err := cs.Create("h2", "p2", "Lawn", 20, model.Assignments{}); err != nil {
		t.Fatalf("create b: %v", err)
	}

	h1, err := cs.List("h1")
	if err != nil {
		t.Fatalf("list h1: %v", err)
	}
	if len(h1) != 1 {
		t.Fatalf("expected 1 chore in h1, got %d", len(h1))
	}
	if diff := cmp.Diff(a, &h1[0]); diff != "" {
		t.Errorf("listed chore mismatch (-want +got):\n%s", diff)
	}

	all, err := cs.List("")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 chores overall, got %d", len(all))
	}

	mine, err := cs.ListForAssignee("c1")
	if err != nil {
		t.Fatalf("list for assignee: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != a.ID {
		t.Errorf("chores for c1 = %+v", mine)
	}
}
