package api

import (
	"net/http"
	"time"

	"rentbridge-backend/internal/service"
)

func (h *Handler) listPickups(w http.ResponseWriter, r *http.Request) {
	orders, err := h.pickups.ListPickups(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type schedulePickupRequest struct {
	PickupDate time.Time `json:"pickup_date"`
	PickupTime string    `json:"pickup_time,omitempty"`
}

func (h *Handler) schedulePickup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	var req schedulePickupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PickupDate.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "pickup_date is required"})
		return
	}
	order, err := h.pickups.SchedulePickup(r.Context(), actorFrom(r), id, req.PickupDate, req.PickupTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type processPickupRequest struct {
	Items []service.PickupItemInput `json:"items,omitempty"`
}

func (h *Handler) processPickup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	var req processPickupRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}
	order, err := h.pickups.ProcessPickup(r.Context(), actorFrom(r), id, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelPickup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	order, err := h.pickups.CancelPickup(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
