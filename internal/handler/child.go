package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/chorechart/internal/service"
)

type ChildHandler struct {
	svc    *service.Service
	logger *slog.Logger
}

func NewChildHandler(svc *service.Service, logger *slog.Logger) *ChildHandler {
	return &ChildHandler{svc: svc, logger: logger}
}

func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	children, err := h.svc.Children(r.URL.Query().Get("householdId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, children)
}

func (h *ChildHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Child(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ChildHandler) TodayChores(w http.ResponseWriter, r *http.Request) {
	chores, err := h.svc.TodayChores(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, chores)
}

func (h *ChildHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	week, err := h.svc.WeeklyCalendar(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}
