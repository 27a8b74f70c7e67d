package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/security"
	"rentbridge-backend/internal/service"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	auth       service.AuthService
	products   service.ProductService
	quotations service.QuotationService
	orders     service.OrderService
	pickups    service.PickupService
	returns    service.ReturnService
	invoices   service.InvoiceService
	earnings   service.EarningsService
}

func NewHandler(
	auth service.AuthService,
	products service.ProductService,
	quotations service.QuotationService,
	orders service.OrderService,
	pickups service.PickupService,
	returns service.ReturnService,
	invoices service.InvoiceService,
	earnings service.EarningsService,
) *Handler {
	return &Handler{
		auth:       auth,
		products:   products,
		quotations: quotations,
		orders:     orders,
		pickups:    pickups,
		returns:    returns,
		invoices:   invoices,
		earnings:   earnings,
	}
}

// NewRouter wires every route. Vendor-only lifecycle routes sit behind a
// role gate; ownership checks happen in the services.
func (h *Handler) NewRouter(tokens security.TokenManager) http.Handler {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc("/api/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.login).Methods(http.MethodPost)

	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(mux.MiddlewareFunc(authMiddleware(tokens)))

	authed.HandleFunc("/auth/profile", h.profile).Methods(http.MethodGet)
	authed.HandleFunc("/auth/profile", h.updateProfile).Methods(http.MethodPut)

	authed.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	authed.HandleFunc("/products", h.addProduct).Methods(http.MethodPost)
	authed.HandleFunc("/products/{id:[0-9]+}", h.getProduct).Methods(http.MethodGet)
	authed.HandleFunc("/products/{id:[0-9]+}", h.updateProduct).Methods(http.MethodPut)

	authed.HandleFunc("/quotations", h.createQuotation).Methods(http.MethodPost)
	authed.HandleFunc("/quotations", h.listQuotations).Methods(http.MethodGet)
	authed.HandleFunc("/quotations/{id:[0-9]+}", h.getQuotation).Methods(http.MethodGet)
	authed.HandleFunc("/quotations/{id:[0-9]+}/status", h.updateQuotationStatus).Methods(http.MethodPatch)

	authed.HandleFunc("/orders", h.createOrder).Methods(http.MethodPost)
	authed.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id:[0-9]+}", h.getOrder).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id:[0-9]+}/status", h.updateOrderStatus).Methods(http.MethodPatch)

	vendor := authed.NewRoute().Subrouter()
	vendor.Use(mux.MiddlewareFunc(requireRole(domain.RoleVendor, domain.RoleAdmin)))
	vendor.HandleFunc("/pickups", h.listPickups).Methods(http.MethodGet)
	vendor.HandleFunc("/pickups/{id:[0-9]+}/schedule", h.schedulePickup).Methods(http.MethodPost)
	vendor.HandleFunc("/pickups/{id:[0-9]+}/process", h.processPickup).Methods(http.MethodPost)
	vendor.HandleFunc("/pickups/{id:[0-9]+}/cancel", h.cancelPickup).Methods(http.MethodPost)
	vendor.HandleFunc("/returns", h.listReturns).Methods(http.MethodGet)
	vendor.HandleFunc("/returns/{id:[0-9]+}/process", h.processReturn).Methods(http.MethodPost)
	vendor.HandleFunc("/returns/{id:[0-9]+}/late-fee", h.calculateLateFee).Methods(http.MethodGet)
	vendor.HandleFunc("/return-requests/vendor", h.listVendorReturnRequests).Methods(http.MethodGet)
	vendor.HandleFunc("/return-requests/{id:[0-9]+}/status", h.updateReturnRequestStatus).Methods(http.MethodPatch)
	vendor.HandleFunc("/earnings", h.getEarnings).Methods(http.MethodGet)

	authed.HandleFunc("/return-requests", h.createReturnRequest).Methods(http.MethodPost)
	authed.HandleFunc("/return-requests/my", h.listMyReturnRequests).Methods(http.MethodGet)
	authed.HandleFunc("/return-requests/eligible-orders", h.listEligibleOrders).Methods(http.MethodGet)
	authed.HandleFunc("/return-requests/{id:[0-9]+}", h.getReturnRequest).Methods(http.MethodGet)

	authed.HandleFunc("/invoices", h.listInvoices).Methods(http.MethodGet)
	authed.HandleFunc("/invoices/{id:[0-9]+}", h.getInvoice).Methods(http.MethodGet)
	authed.HandleFunc("/invoices/{id:[0-9]+}/pay", h.payInvoice).Methods(http.MethodPost)

	return r
}
