package api

import (
	"net/http"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/service"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOrderInput
	if !decodeBody(w, r, &input) {
		return
	}
	order, err := h.orders.CreateOrder(r.Context(), actorFrom(r), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	order, err := h.orders.GetOrder(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type updateOrderStatusRequest struct {
	Status           domain.OrderStatus `json:"status"`
	ActualReturnDate *time.Time         `json:"actual_return_date,omitempty"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	var req updateOrderStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	order, err := h.orders.UpdateOrderStatus(r.Context(), actorFrom(r), id, req.Status, req.ActualReturnDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
