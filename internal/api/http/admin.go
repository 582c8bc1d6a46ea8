package http

import (
	"net/http"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/report"
)

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if !decodeJSON(w, r, &body) {
		return
	}
	token, expiresAt, err := h.svc.Auth.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Admin.Dashboard(r.Context(), OperatorFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.CRM.ListClients(r.Context(), OperatorFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": clients})
}

func (h *Handler) addClient(w http.ResponseWriter, r *http.Request) {
	var c domain.Client
	if !decodeJSON(w, r, &c) {
		return
	}
	if err := h.svc.CRM.AddClient(r.Context(), OperatorFromContext(r.Context()), &c); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if !decodeJSON(w, r, &msg) {
		return
	}
	if err := h.svc.CRM.SubmitContact(r.Context(), &msg); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": msg.ID})
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.CRM.ListContacts(r.Context(), OperatorFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": msgs})
}

func (h *Handler) listContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.svc.Contracts.ListContracts(r.Context(), OperatorFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contracts": contracts})
}

func (h *Handler) newContract(w http.ResponseWriter, r *http.Request) {
	var draft domain.ContractDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	c, err := h.svc.Contracts.NewDirectContract(r.Context(), OperatorFromContext(r.Context()), draft)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) exportContracts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="contracts.xlsx"`)
	if err := h.svc.Contracts.ExportContracts(r.Context(), OperatorFromContext(r.Context()), w); err != nil {
		w.Header().Del("Content-Disposition")
		writeServiceError(w, r, err)
	}
}
