package api

import (
	"net/http"

	"rentbridge-backend/internal/service"
)

func (h *Handler) listReturns(w http.ResponseWriter, r *http.Request) {
	orders, err := h.returns.ListReturns(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) processReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	var input service.ProcessReturnInput
	if r.ContentLength > 0 && !decodeBody(w, r, &input) {
		return
	}
	order, err := h.returns.ProcessReturn(r.Context(), actorFrom(r), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) calculateLateFee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	result, err := h.returns.CalculateLateFee(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) createReturnRequest(w http.ResponseWriter, r *http.Request) {
	var input service.CreateReturnRequestInput
	if !decodeBody(w, r, &input) {
		return
	}
	req, err := h.returns.CreateReturnRequest(r.Context(), actorFrom(r), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) getReturnRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	req, err := h.returns.GetReturnRequest(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) listMyReturnRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.returns.ListMyReturnRequests(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *Handler) listVendorReturnRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.returns.ListVendorReturnRequests(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *Handler) listEligibleOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.returns.ListEligibleOrders(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) updateReturnRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	var input service.UpdateReturnRequestInput
	if !decodeBody(w, r, &input) {
		return
	}
	req, err := h.returns.UpdateReturnRequestStatus(r.Context(), actorFrom(r), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
