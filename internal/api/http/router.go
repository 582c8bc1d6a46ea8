package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/metrics"
	"carrental-backend/internal/service"
)

// Services are the operations exposed over HTTP.
type Services struct {
	Booking   service.BookingService
	Contracts service.ContractService
	Fleet     service.FleetService
	CRM       service.CRMService
	Admin     service.AdminService
	Auth      service.AuthService
}

type Options struct {
	// Metrics mounts /metrics.
	Metrics bool
	// Health is probed by /healthz when set.
	Health func(ctx context.Context) error
}

type Handler struct {
	svc  Services
	opts Options
}

// NewRouter builds the API router. Every route is named after its entry in
// config.RouteSecurityConfig; the auth middleware looks routes up by name.
func NewRouter(svc Services, opts Options) *mux.Router {
	h := &Handler{svc: svc, opts: opts}
	router := mux.NewRouter()

	router.HandleFunc("/healthz", h.health).Methods(http.MethodGet).Name("health")
	if opts.Metrics {
		router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet).Name("metrics")
	}

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/vehicles", h.listVehicles).Methods(http.MethodGet).Name("vehicles.list")
	v1.HandleFunc("/vehicles/search", h.searchVehicles).Methods(http.MethodGet).Name("vehicles.find")
	v1.HandleFunc("/vehicles/images/{key}", h.downloadImage).Methods(http.MethodGet).Name("vehicles.image")
	v1.HandleFunc("/requests", h.createRequest).Methods(http.MethodPost).Name("requests.new")
	v1.HandleFunc("/contact", h.submitContact).Methods(http.MethodPost).Name("contact.new")
	v1.HandleFunc("/admin/login", h.login).Methods(http.MethodPost).Name("admin.login")

	admin := v1.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/dashboard", h.dashboard).Methods(http.MethodGet).Name("admin.dashboard")
	admin.HandleFunc("/requests", h.listRequests).Methods(http.MethodGet).Name("admin.requests")
	admin.HandleFunc("/requests/{id:[0-9]+}", h.requestDetail).Methods(http.MethodGet).Name("admin.request")
	admin.HandleFunc("/requests/{id:[0-9]+}/status/{status}", h.setRequestStatus).Methods(http.MethodPost).Name("admin.request.status")
	admin.HandleFunc("/requests/{id:[0-9]+}/invoice", h.invoice).Methods(http.MethodGet).Name("admin.request.invoice")
	admin.HandleFunc("/vehicles", h.listAllVehicles).Methods(http.MethodGet).Name("admin.vehicles")
	admin.HandleFunc("/vehicles", h.addVehicle).Methods(http.MethodPost).Name("admin.vehicles.new")
	admin.HandleFunc("/vehicles/{id:[0-9]+}/image", h.uploadImage).Methods(http.MethodPut).Name("admin.vehicle.image")
	admin.HandleFunc("/clients", h.listClients).Methods(http.MethodGet).Name("admin.clients")
	admin.HandleFunc("/clients", h.addClient).Methods(http.MethodPost).Name("admin.clients.new")
	admin.HandleFunc("/contacts", h.listContacts).Methods(http.MethodGet).Name("admin.contacts")
	admin.HandleFunc("/contracts", h.listContracts).Methods(http.MethodGet).Name("admin.contracts")
	admin.HandleFunc("/contracts", h.newContract).Methods(http.MethodPost).Name("admin.contracts.new")
	admin.HandleFunc("/contracts/export", h.exportContracts).Methods(http.MethodGet).Name("admin.contracts.export")

	router.Use(requestIDMiddleware, metricsMiddleware, NewAuthMiddleware(svc.Auth).Handler)
	return router
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.opts.Health != nil {
		if err := h.opts.Health(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
