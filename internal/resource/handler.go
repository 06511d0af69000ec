package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gestionrecursos/internal/resource/service"
	"gestionrecursos/internal/shared"
	"gestionrecursos/middleware"
	"gestionrecursos/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())

	records, err := h.Service.List(r.Context(), identity.Email)
	if err != nil {
		logger.Sugar.Errorf("Failed to list %s: %v", h.Service.Kind.Collection, err)
		respondError(w, http.StatusInternalServerError, "Error al obtener "+h.Service.Kind.Collection)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	record, created, err := h.Service.Upsert(r.Context(), identity.Email, payload)
	if err != nil {
		h.respondServiceError(w, err, "Error al crear/actualizar "+h.singular())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, record)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), identity.Email, id); err != nil {
		h.respondServiceError(w, err, "Error al eliminar "+h.singular())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": h.Service.Kind.Singular + " eliminado correctamente",
	})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *shared.ValidationError
	var forbiddenErr *shared.ForbiddenError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &forbiddenErr):
		respondJSON(w, http.StatusForbidden, map[string]string{
			"error":   forbiddenErr.Reason,
			"message": forbiddenErr.Message,
		})
	case errors.Is(err, shared.ErrNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf("%s no encontrado", h.Service.Kind.Singular))
	default:
		logger.Sugar.Errorf("Unexpected error on %s: %v", h.Service.Kind.Collection, err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func (h *Handler) singular() string {
	return strings.ToLower(h.Service.Kind.Singular)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
