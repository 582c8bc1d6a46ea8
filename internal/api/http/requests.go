package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/report"
)

func (h *Handler) createRequest(w http.ResponseWriter, r *http.Request) {
	var draft domain.RequestDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	req, err := h.svc.Booking.CreateRequest(r.Context(), draft)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) listRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.RequestFilter{
		Client:  q.Get("client"),
		Vehicle: q.Get("vehicle"),
		Date:    q.Get("date"),
	}
	requests, err := h.svc.Booking.ListRequests(r.Context(), OperatorFromContext(r.Context()), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (h *Handler) requestDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	detail, err := h.svc.Booking.GetRequestDetail(r.Context(), OperatorFromContext(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) setRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, err := h.svc.Booking.SetStatus(r.Context(), OperatorFromContext(r.Context()), id, mux.Vars(r)["status"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	inv, err := h.svc.Booking.Invoice(r.Context(), OperatorFromContext(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if r.URL.Query().Get("format") != "xlsx" {
		writeJSON(w, http.StatusOK, inv)
		return
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, inv.Number))
	if err := report.WriteInvoice(w, inv); err != nil {
		writeServiceError(w, r, err)
	}
}
