package api

import (
	"net/http"
	"strconv"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/service"
)

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decodeBody(w, r, &product) {
		return
	}
	if err := h.products.AddProduct(r.Context(), actorFrom(r), &product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}
	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}
	var req service.UpdateProductInput
	if !decodeBody(w, r, &req) {
		return
	}
	product, err := h.products.UpdateProduct(r.Context(), actorFrom(r), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

type productListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int32            `json:"total"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vendorID, _ := strconv.ParseInt(q.Get("vendor_id"), 10, 32)
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(q.Get("page_size"), 10, 32)

	products, total, err := h.products.ListProducts(r.Context(), int32(vendorID), int32(page), int32(pageSize))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productListResponse{Products: products, Total: total})
}

type createQuotationRequest struct {
	Items      []service.OrderItemInput `json:"items"`
	ValidUntil *time.Time               `json:"valid_until,omitempty"`
	Notes      string                   `json:"notes,omitempty"`
}

func (h *Handler) createQuotation(w http.ResponseWriter, r *http.Request) {
	var req createQuotationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := h.quotations.CreateQuotation(r.Context(), actorFrom(r), req.Items, req.ValidUntil, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (h *Handler) getQuotation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quotation id"})
		return
	}
	q, err := h.quotations.GetQuotation(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) listQuotations(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quotations.ListQuotations(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (h *Handler) updateQuotationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quotation id"})
		return
	}
	var req struct {
		Status domain.QuotationStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.quotations.UpdateQuotationStatus(r.Context(), actorFrom(r), id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}
