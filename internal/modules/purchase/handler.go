package purchase

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/partshub/autoparts-backend/internal/modules/catalog"
	"github.com/partshub/autoparts-backend/internal/modules/directory"
)

// Handler exposes supplier and purchase-order endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/suppliers", func(r chi.Router) {
		r.Post("/", h.createSupplier) // POST /api/v1/suppliers
		r.Get("/", h.listSuppliers)   // GET  /api/v1/suppliers
	})
	r.Route("/api/v1/purchase-orders", func(r chi.Router) {
		r.Post("/", h.createPO)                       // POST /api/v1/purchase-orders
		r.Get("/{id}", h.getPO)                       // GET  /api/v1/purchase-orders/{id}
		r.Post("/{id}/line-items", h.addLineItem)     // POST /api/v1/purchase-orders/{id}/line-items
		r.Post("/{id}/receive", h.receive)            // POST /api/v1/purchase-orders/{id}/receive
		r.Get("/store/{store_id}", h.listStorePOs)    // GET  /api/v1/purchase-orders/store/{store_id}?status=
	})
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	supplier, err := h.service.CreateSupplier(r.Context(), req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, supplier)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, suppliers)
}

func (h *Handler) createPO(w http.ResponseWriter, r *http.Request) {
	var req CreatePORequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	po, err := h.service.CreatePO(r.Context(), req)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, directory.ErrStoreNotFound) || errors.Is(err, ErrSupplierNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, po)
}

func (h *Handler) getPO(w http.ResponseWriter, r *http.Request) {
	id, err := poID(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	po, err := h.service.GetPO(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrPONotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, po)
}

func (h *Handler) addLineItem(w http.ResponseWriter, r *http.Request) {
	id, err := poID(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var req AddLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.AddLineItem(r.Context(), id, req)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, ErrPONotFound) || errors.Is(err, catalog.ErrPartNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	id, err := poID(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	po, err := h.service.Receive(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrPONotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, ErrAlreadyReceived) {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, po)
}

func (h *Handler) listStorePOs(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "store_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}
	status := strings.ToUpper(r.URL.Query().Get("status"))
	pos, err := h.service.ListPOs(r.Context(), storeID, status)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, pos)
}

func poID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid purchase order id")
	}
	return id, nil
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
