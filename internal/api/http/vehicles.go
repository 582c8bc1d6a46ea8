package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	cat, err := h.svc.Fleet.ListVehicles(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *Handler) searchVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.svc.Fleet.SearchVehicles(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

func (h *Handler) listAllVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.svc.Fleet.ListAllVehicles(r.Context(), OperatorFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

type vehicleBody struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Plate    string   `json:"plate"`
	DayRate  *float64 `json:"day_rate"`
}

func (h *Handler) addVehicle(w http.ResponseWriter, r *http.Request) {
	var body vehicleBody
	if !decodeJSON(w, r, &body) {
		return
	}
	v := &domain.Vehicle{Name: body.Name, Category: body.Category, Plate: body.Plate, DayRate: body.DayRate}
	if err := h.svc.Fleet.AddVehicle(r.Context(), OperatorFromContext(r.Context()), v); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// uploadImage takes the raw picture as the request body; its type comes from
// the Content-Type header.
func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		writeError(w, http.StatusBadRequest, "missing Content-Type header")
		return
	}
	v, err := h.svc.Fleet.SetVehicleImage(r.Context(), OperatorFromContext(r.Context()), id, contentType, r.Body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) downloadImage(w http.ResponseWriter, r *http.Request) {
	rc, contentType, err := h.svc.Fleet.OpenVehicleImage(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, rc); err != nil {
		logger.Warn("Image download interrupted", "key", mux.Vars(r)["key"], "error", err)
	}
}
