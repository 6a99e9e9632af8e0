package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/chorechart/internal/service"
)

type HouseholdHandler struct {
	svc    *service.Service
	logger *slog.Logger
}

func NewHouseholdHandler(svc *service.Service, logger *slog.Logger) *HouseholdHandler {
	return &HouseholdHandler{svc: svc, logger: logger}
}

type createHouseholdRequest struct {
	ParentUsername string   `json:"parentUsername"`
	Children       []string `json:"children"`
}

func (h *HouseholdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHouseholdRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.svc.CreateHousehold(req.ParentUsername, req.Children)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type parentLoginRequest struct {
	HouseholdID string `json:"householdId" validate:"notblank"`
}

func (h *HouseholdHandler) LoginParent(w http.ResponseWriter, r *http.Request) {
	var req parentLoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.svc.LoginParent(req.HouseholdID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":     "Login successful",
		"householdId": p.HouseholdID,
		"parentId":    p.ID,
		"username":    p.Username,
	})
}

type childLoginRequest struct {
	HouseholdID   string `json:"householdId" validate:"notblank"`
	ChildUsername string `json:"childUsername" validate:"notblank"`
}

func (h *HouseholdHandler) LoginChild(w http.ResponseWriter, r *http.Request) {
	var req childLoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	c, err := h.svc.LoginChild(req.HouseholdID, req.ChildUsername)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Login successful",
		"childId":  c.ID,
		"username": c.Username,
	})
}

func (h *HouseholdHandler) ParentOverview(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.ParentOverview(r.URL.Query().Get("householdId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}
