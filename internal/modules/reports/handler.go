package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/partshub/autoparts-backend/internal/modules/directory"
	"github.com/partshub/autoparts-backend/internal/modules/order"
)

// Handler exposes reporting endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/sales/store/{store_id}", h.dailySales)              // GET /api/v1/reports/sales/store/{store_id}?from=&to=&status=
		r.Get("/inventory/store/{store_id}", h.inventory)           // GET /api/v1/reports/inventory/store/{store_id}
		r.Get("/employees/store/{store_id}", h.employeePerformance) // GET /api/v1/reports/employees/store/{store_id}?from=&to=
	})
}

func (h *Handler) dailySales(w http.ResponseWriter, r *http.Request) {
	storeID, window, err := reportParams(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rows, err := h.service.DailySales(r.Context(), storeID, r.URL.Query().Get("status"), window)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (h *Handler) inventory(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "store_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}
	report, err := h.service.Inventory(r.Context(), storeID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, report)
}

func (h *Handler) employeePerformance(w http.ResponseWriter, r *http.Request) {
	storeID, window, err := reportParams(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rows, err := h.service.EmployeePerformance(r.Context(), storeID, window)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, rows)
}

// reportParams parses the store id path segment and the optional
// from/to query bounds, both YYYY-MM-DD.
func reportParams(r *http.Request) (int64, Window, error) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "store_id"), 10, 64)
	if err != nil {
		return 0, Window{}, errors.New("invalid store id")
	}

	var window Window
	if from := r.URL.Query().Get("from"); from != "" {
		window.From, err = time.Parse("2006-01-02", from)
		if err != nil {
			return 0, Window{}, errors.New("invalid from date, want YYYY-MM-DD")
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		window.To, err = time.Parse("2006-01-02", to)
		if err != nil {
			return 0, Window{}, errors.New("invalid to date, want YYYY-MM-DD")
		}
		// Inclusive upper bound: the queries compare with an exclusive <.
		window.To = window.To.AddDate(0, 0, 1)
	}
	return storeID, window, nil
}

func respondError(w http.ResponseWriter, err error) {
	var statusErr *order.InvalidStatusError
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, directory.ErrStoreNotFound):
		code = http.StatusNotFound
	case errors.As(err, &statusErr):
		code = http.StatusBadRequest
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
