package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/partshub/autoparts-backend/internal/modules/auth"
	"github.com/partshub/autoparts-backend/internal/modules/catalog"
	"github.com/partshub/autoparts-backend/internal/modules/directory"
	"github.com/partshub/autoparts-backend/internal/modules/inventory"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.checkout)                                // POST /api/v1/orders
		r.Post("/checkout", h.checkoutCart)                    // POST /api/v1/orders/checkout
		r.Get("/{id}", h.getOrder)                             // GET  /api/v1/orders/{id}
		r.Post("/{id}/status", h.updateStatus)                 // POST /api/v1/orders/{id}/status
		r.Get("/store/{store_id}", h.listStoreOrders)          // GET  /api/v1/orders/store/{store_id}?status=
		r.Get("/customer/{customer_id}", h.listCustomerOrders) // GET  /api/v1/orders/customer/{customer_id}
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.Checkout(r.Context(), req)
	if err != nil {
		respondCheckoutError(w, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) checkoutCart(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionKeyFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "login or session required"})
		return
	}
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// An authenticated customer wins over whatever the body claims.
	if customerID, ok := auth.CustomerIDFromContext(r.Context()); ok {
		req.CustomerID = customerID
	}
	o, err := h.service.CheckoutCart(r.Context(), session, req)
	if err != nil {
		respondCheckoutError(w, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func respondCheckoutError(w http.ResponseWriter, err error) {
	var stockErr *inventory.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		respond(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":     stockErr.Error(),
			"part_id":   stockErr.PartID,
			"available": stockErr.Available,
		})
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrEmptyOrder), errors.Is(err, ErrNoStoreConfigured):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, catalog.ErrPartNotFound), errors.Is(err, directory.ErrStoreNotFound):
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}
	o, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrOrderNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		var statusErr *InvalidStatusError
		switch {
		case errors.As(err, &statusErr), errors.Is(err, directory.ErrEmployeeNotFound):
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrOrderNotFound):
			respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listStoreOrders(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "store_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}
	orders, err := h.service.ListStoreOrders(r.Context(), storeID, r.URL.Query().Get("status"))
	if err != nil {
		var statusErr *InvalidStatusError
		if errors.As(err, &statusErr) {
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customer_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid customer id"})
		return
	}
	orders, err := h.service.ListCustomerOrders(r.Context(), customerID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
