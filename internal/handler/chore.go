package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/chorechart/internal/service"
	"github.com/dukerupert/chorechart/internal/websocket"
)

type ChoreHandler struct {
	svc    *service.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewChoreHandler(svc *service.Service, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{svc: svc, hub: hub, logger: logger}
}

// choreRequest maps weekday names to a child id. null, "" and "unassigned"
// all leave the day open.
type choreRequest struct {
	ChoreType string             `json:"choreType" validate:"notblank"`
	Amount    int                `json:"amount" validate:"gt=0"`
	Days      map[string]*string `json:"days" validate:"required"`
}

func (req choreRequest) input() service.ChoreInput {
	days := make(map[string]string, len(req.Days))
	for name, childID := range req.Days {
		if childID != nil {
			days[name] = *childID
		} else {
			days[name] = ""
		}
	}
	return service.ChoreInput{
		ChoreType: req.ChoreType,
		Amount:    req.Amount,
		Days:      days,
	}
}

type createChoreRequest struct {
	choreRequest
	HouseholdID string `json:"householdId" validate:"notblank"`
	ParentID    string `json:"parentId" validate:"notblank"`
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createChoreRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	in := req.input()
	in.HouseholdID, in.ParentID = req.HouseholdID, req.ParentID

	chore, err := h.svc.CreateChore(in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	broadcast(h.hub, chore.Calendar.HouseholdID, websocket.NewMessage("chore", "created", chore.ID, nil))
	writeJSON(w, http.StatusCreated, chore)
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	chores, err := h.svc.Chores(r.URL.Query().Get("householdId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, chores)
}

func (h *ChoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid id"})
		return
	}
	chore, err := h.svc.Chore(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid id"})
		return
	}
	var req choreRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	chore, err := h.svc.UpdateChore(id, req.input())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	broadcast(h.hub, chore.Calendar.HouseholdID, websocket.NewMessage("chore", "updated", chore.ID, nil))
	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid id"})
		return
	}

	chore, err := h.svc.DeleteChore(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	broadcast(h.hub, chore.Calendar.HouseholdID, websocket.NewMessage("chore", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chore and calendar entry deleted"})
}

func (h *ChoreHandler) Active(w http.ResponseWriter, r *http.Request) {
	chores, err := h.svc.ActiveToday(r.URL.Query().Get("householdId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, chores)
}

func (h *ChoreHandler) Inactive(w http.ResponseWriter, r *http.Request) {
	chores, err := h.svc.InactiveToday(r.URL.Query().Get("householdId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, chores)
}
