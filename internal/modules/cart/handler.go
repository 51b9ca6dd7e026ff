package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/partshub/autoparts-backend/internal/modules/auth"
)

// Handler exposes session cart endpoints. The session key comes from
// the auth middleware: the caller's identity when logged in, the
// X-Session-ID header otherwise.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Post("/add", h.add)        // POST /api/v1/cart/add
		r.Get("/summary", h.summary) // GET  /api/v1/cart/summary
		r.Post("/remove", h.remove)  // POST /api/v1/cart/remove
		r.Post("/clear", h.clear)    // POST /api/v1/cart/clear
	})
}

func session(r *http.Request) (string, bool) {
	return auth.SessionKeyFromContext(r.Context())
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(r)
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "login or session required"})
		return
	}
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	count, err := h.service.Add(r.Context(), sess, req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "cart_count": count})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(r)
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "login or session required"})
		return
	}
	summary, err := h.service.Summary(r.Context(), sess)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, summary)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(r)
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "login or session required"})
		return
	}
	var req struct {
		PartID string `json:"part_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	count, err := h.service.Remove(r.Context(), sess, req.PartID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "cart_count": count})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(r)
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "login or session required"})
		return
	}
	if err := h.service.Clear(r.Context(), sess); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "cart_count": 0})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
