package http

import (
	"net/http"

	"clinic-admin-api/internal/delivery/http/handler"
	"clinic-admin-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router             *mux.Router
	log                *logrus.Logger
	authHandler        *handler.AuthHandler
	patientHandler     *handler.PatientHandler
	appointmentHandler *handler.AppointmentHandler
	medicationHandler  *handler.MedicationHandler
	auditLogHandler    *handler.AuditLogHandler
	fingerprintHandler *handler.FingerprintHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loginLimiter       *middleware.RateLimiter
	deviceAPIKey       string
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	medicationHandler *handler.MedicationHandler,
	auditLogHandler *handler.AuditLogHandler,
	fingerprintHandler *handler.FingerprintHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loginLimiter *middleware.RateLimiter,
	deviceAPIKey string,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		log:                log,
		authHandler:        authHandler,
		patientHandler:     patientHandler,
		appointmentHandler: appointmentHandler,
		medicationHandler:  medicationHandler,
		auditLogHandler:    auditLogHandler,
		fingerprintHandler: fingerprintHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		loginLimiter:       loginLimiter,
		deviceAPIKey:       deviceAPIKey,
	}
}

// Setup registers every route and returns the root handler. CORS and the
// access log wrap the router itself, so preflight requests are answered before
// route matching and unmatched requests are still logged.
func (r *Router) Setup() http.Handler {
	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	r.router.Handle("/admin/login", r.loginLimiter.Limit(http.HandlerFunc(r.authHandler.Login))).Methods(http.MethodPost)

	// Everything else requires an admin token
	protected := r.router.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/admin/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/admin/me", r.authHandler.Me).Methods(http.MethodGet)

	// Patient management
	protected.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/patients", r.patientHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/patients/search/{name}", r.patientHandler.Search).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/patients/{id}/fingerprint", r.fingerprintHandler.Start).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}/fingerprint", r.fingerprintHandler.Get).Methods(http.MethodGet)

	// Appointment management
	protected.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/search/{patientName}", r.appointmentHandler.Search).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}/link", r.appointmentHandler.UpdateLink).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Medication management
	protected.HandleFunc("/medications", r.medicationHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/medications", r.medicationHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/medications/search/{name}", r.medicationHandler.Search).Methods(http.MethodGet)
	protected.HandleFunc("/medications/{id}", r.medicationHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/medications/{id}", r.medicationHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/medications/{id}", r.medicationHandler.Delete).Methods(http.MethodDelete)

	// Audit trail
	protected.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	protected.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Scanner routes, only mounted when a device key is configured
	if r.deviceAPIKey != "" {
		device := r.router.PathPrefix("/device").Subrouter()
		device.Use(middleware.RequireDeviceKey(r.deviceAPIKey))
		device.HandleFunc("/mode", r.fingerprintHandler.DeviceMode).Methods(http.MethodGet)
		device.HandleFunc("/fingerprint", r.fingerprintHandler.DeviceResult).Methods(http.MethodPost)
	}

	return r.corsMiddleware.Handle(middleware.RequestLogger(r.log)(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
