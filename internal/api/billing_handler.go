package api

import (
	"net/http"

	"rentbridge-backend/internal/domain"
)

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.ListInvoices(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid invoice id"})
		return
	}
	inv, err := h.invoices.GetInvoice(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

type payInvoiceRequest struct {
	Method domain.PaymentMethod `json:"method"`
	Notes  string               `json:"notes,omitempty"`
}

func (h *Handler) payInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid invoice id"})
		return
	}
	var req payInvoiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Method == "" {
		req.Method = domain.PaymentMethodCard
	}
	inv, err := h.invoices.PayInvoice(r.Context(), actorFrom(r), id, req.Method, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) getEarnings(w http.ResponseWriter, r *http.Request) {
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = "6m"
	}
	report, err := h.earnings.GetEarnings(r.Context(), actorFrom(r), rng)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
