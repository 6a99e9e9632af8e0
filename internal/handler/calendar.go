package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/chorechart/internal/service"
	"github.com/dukerupert/chorechart/internal/websocket"
)

type CalendarHandler struct {
	svc    *service.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewCalendarHandler(svc *service.Service, hub *websocket.Hub, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{svc: svc, hub: hub, logger: logger}
}

func (h *CalendarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid id"})
		return
	}
	entry, err := h.svc.CalendarEntry(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// completeRequest carries the day as a raw JSON value: a name or an index.
type completeRequest struct {
	UserID string `json:"userId" validate:"notblank"`
	Day    any    `json:"day"`
}

func (h *CalendarHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid id"})
		return
	}
	var req completeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.svc.MarkComplete(id, req.UserID, req.Day)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	msg := "Chore marked as completed"
	if res.AlreadyCompleted {
		msg = "Chore was already completed"
	} else {
		broadcast(h.hub, res.HouseholdID, websocket.NewMessage("calendar", "completed", res.CalendarID, map[string]any{
			"childId":       res.ChildID,
			"day":           res.Day,
			"pointsAwarded": res.PointsAwarded,
		}))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":          msg,
		"pointsAwarded":    res.PointsAwarded,
		"alreadyCompleted": res.AlreadyCompleted,
	})
}

func (h *CalendarHandler) Today(w http.ResponseWriter, r *http.Request) {
	d := h.svc.Today()
	writeJSON(w, http.StatusOK, map[string]any{
		"day":      d.String(),
		"dayIndex": int(d),
	})
}
