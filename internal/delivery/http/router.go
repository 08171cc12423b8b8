package http

import (
	"net/http"

	"medical-imaging-backend/internal/delivery/http/handler"
	"medical-imaging-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	patientHandler    *handler.PatientHandler
	imageHandler      *handler.ImageHandler
	reportHandler     *handler.ReportHandler
	annotationHandler *handler.AnnotationHandler
	adminHandler      *handler.AdminHandler
	aiHandler         *handler.AIHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	policy            middleware.Policy
	uploadDir         string
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	imageHandler *handler.ImageHandler,
	reportHandler *handler.ReportHandler,
	annotationHandler *handler.AnnotationHandler,
	adminHandler *handler.AdminHandler,
	aiHandler *handler.AIHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	policy middleware.Policy,
	uploadDir string,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		patientHandler:    patientHandler,
		imageHandler:      imageHandler,
		reportHandler:     reportHandler,
		annotationHandler: annotationHandler,
		adminHandler:      adminHandler,
		aiHandler:         aiHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		policy:            policy,
		uploadDir:         uploadDir,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := r.router.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", r.authHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/oauth/github", r.authHandler.OAuthStart).Methods(http.MethodGet)
	auth.HandleFunc("/oauth/github/callback", r.authHandler.OAuthCallback).Methods(http.MethodGet)

	// Auth routes (protected)
	authProtected := r.router.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Patients
	patients := r.router.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Handle("", r.gate(middleware.ResourcePatients, middleware.ActionWrite, r.patientHandler.Create)).Methods(http.MethodPost)
	patients.Handle("", r.gate(middleware.ResourcePatients, middleware.ActionRead, r.patientHandler.List)).Methods(http.MethodGet)
	patients.Handle("/{id}", r.gate(middleware.ResourcePatients, middleware.ActionRead, r.patientHandler.Get)).Methods(http.MethodGet)
	patients.Handle("/{id}", r.gate(middleware.ResourcePatients, middleware.ActionWrite, r.patientHandler.Update)).Methods(http.MethodPut)
	patients.Handle("/{id}", r.gate(middleware.ResourcePatients, middleware.ActionDelete, r.patientHandler.Delete)).Methods(http.MethodDelete)

	// Images
	images := r.router.PathPrefix("/images").Subrouter()
	images.Use(r.authMiddleware.Authenticate)
	images.Handle("", r.gate(middleware.ResourceImages, middleware.ActionWrite, r.imageHandler.Upload)).Methods(http.MethodPost)
	images.Handle("", r.gate(middleware.ResourceImages, middleware.ActionRead, r.imageHandler.List)).Methods(http.MethodGet)
	images.Handle("/patient/{id}", r.gate(middleware.ResourceImages, middleware.ActionRead, r.imageHandler.ListByPatient)).Methods(http.MethodGet)

	// Reports
	reports := r.router.PathPrefix("/reports").Subrouter()
	reports.Use(r.authMiddleware.Authenticate)
	reports.Handle("", r.gate(middleware.ResourceReports, middleware.ActionWrite, r.reportHandler.Create)).Methods(http.MethodPost)
	reports.Handle("", r.gate(middleware.ResourceReports, middleware.ActionRead, r.reportHandler.List)).Methods(http.MethodGet)
	reports.Handle("/{id}", r.gate(middleware.ResourceReports, middleware.ActionRead, r.reportHandler.Get)).Methods(http.MethodGet)
	reports.Handle("/{id}", r.gate(middleware.ResourceReports, middleware.ActionWrite, r.reportHandler.Update)).Methods(http.MethodPut)
	reports.Handle("/{id}", r.gate(middleware.ResourceReports, middleware.ActionDelete, r.reportHandler.Delete)).Methods(http.MethodDelete)

	// AI drafting
	ai := r.router.PathPrefix("/ai").Subrouter()
	ai.Use(r.authMiddleware.Authenticate)
	ai.Handle("/generate-report/{image_id}", r.gate(middleware.ResourceReports, middleware.ActionWrite, r.aiHandler.GenerateReport)).Methods(http.MethodPost)

	// Annotations
	annotations := r.router.PathPrefix("/annotations").Subrouter()
	annotations.Use(r.authMiddleware.Authenticate)
	annotations.Handle("", r.gate(middleware.ResourceAnnotations, middleware.ActionWrite, r.annotationHandler.Create)).Methods(http.MethodPost)
	annotations.Handle("/image/{id}", r.gate(middleware.ResourceAnnotations, middleware.ActionRead, r.annotationHandler.ListByImage)).Methods(http.MethodGet)

	// Admin (admin role only)
	admin := r.router.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Handle("/users", r.gate(middleware.ResourceUsers, middleware.ActionManage, r.adminHandler.ListUsers)).Methods(http.MethodGet)
	admin.Handle("/users/{id}", r.gate(middleware.ResourceUsers, middleware.ActionManage, r.adminHandler.GetUser)).Methods(http.MethodGet)
	admin.Handle("/users/{id}/role", r.gate(middleware.ResourceUsers, middleware.ActionManage, r.adminHandler.UpdateUserRole)).Methods(http.MethodPut)
	admin.Handle("/users/{id}", r.gate(middleware.ResourceUsers, middleware.ActionManage, r.adminHandler.DeleteUser)).Methods(http.MethodDelete)
	admin.Handle("/dashboard", r.gate(middleware.ResourceDashboard, middleware.ActionRead, r.adminHandler.Dashboard)).Methods(http.MethodGet)

	// Static serving of stored uploads
	r.router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.uploadDir))),
	).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

// gate wraps a handler func with the policy check for one rule.
func (r *Router) gate(resource, action string, h http.HandlerFunc) http.Handler {
	return r.policy.Require(resource, action)(h)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
