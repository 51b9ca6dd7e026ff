package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/parts", func(r chi.Router) {
		r.Post("/", h.createPart)          // POST   /api/v1/parts
		r.Get("/", h.search)               // GET    /api/v1/parts?q=&category=&condition=
		r.Get("/categories", h.categories) // GET    /api/v1/parts/categories
		r.Get("/find/{key}", h.find)       // GET    /api/v1/parts/find/{key}
		r.Get("/{id}", h.getPart)          // GET    /api/v1/parts/{id}
		r.Put("/{id}", h.updatePart)       // PUT    /api/v1/parts/{id}
		r.Delete("/{id}", h.deletePart)    // DELETE /api/v1/parts/{id}
	})
}

func (h *Handler) createPart(w http.ResponseWriter, r *http.Request) {
	var req CreatePartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.CreatePart(r.Context(), req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	filter := SearchFilter{
		Query:     r.URL.Query().Get("q"),
		Category:  r.URL.Query().Get("category"),
		Condition: Condition(strings.ToUpper(r.URL.Query().Get("condition"))),
	}
	parts, err := h.service.Search(r.Context(), filter)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, parts)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string][]string{"categories": categories})
}

func (h *Handler) find(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Find(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) getPart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid part id"})
		return
	}
	p, err := h.service.GetPart(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) updatePart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid part id"})
		return
	}
	var req CreatePartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.UpdatePart(r.Context(), id, req)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, ErrPartNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deletePart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid part id"})
		return
	}
	if err := h.service.DeletePart(r.Context(), id); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrPartNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "part deleted"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
