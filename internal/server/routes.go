package server

import "net/http"

// GET routes are public; every mutating route sits behind requireAuth.
func registerAPIRoutes(mux *http.ServeMux, srv *Server) {
	mux.HandleFunc("POST /api/auth/login", srv.handleLogin)
	mux.Handle("POST /api/auth/change-password", srv.requireAuth(srv.handleChangePassword))

	mux.HandleFunc("GET /api/profile", srv.handleGetProfile)
	mux.Handle("PUT /api/profile", srv.requireAuth(srv.handleUpdateProfile))

	mux.HandleFunc("GET /api/experiences", srv.handleListExperiences)
	mux.Handle("POST /api/experiences", srv.requireAuth(srv.handleCreateExperience))
	mux.Handle("PUT /api/experiences/{id}", srv.requireAuth(srv.handleUpdateExperience))
	mux.Handle("DELETE /api/experiences/{id}", srv.requireAuth(srv.handleDeleteExperience))

	mux.HandleFunc("GET /api/projects", srv.handleListProjects)
	mux.Handle("POST /api/projects", srv.requireAuth(srv.handleCreateProject))
	mux.Handle("PUT /api/projects/{id}", srv.requireAuth(srv.handleUpdateProject))
	mux.Handle("DELETE /api/projects/{id}", srv.requireAuth(srv.handleDeleteProject))
	mux.Handle("POST /api/upload", srv.requireAuth(srv.handleProjectImageUpload))
	mux.Handle("DELETE /api/images/{id}", srv.requireAuth(srv.handleDeleteProjectImage))

	mux.HandleFunc("GET /api/skills", srv.handleListSkills)
	mux.Handle("POST /api/skills", srv.requireAuth(srv.handleCreateSkill))
	mux.Handle("PUT /api/skills/{id}", srv.requireAuth(srv.handleUpdateSkill))
	mux.Handle("DELETE /api/skills/{id}", srv.requireAuth(srv.handleDeleteSkill))

	mux.HandleFunc("GET /api/tech-stack", srv.handleListTechStack)
	mux.Handle("POST /api/tech-stack", srv.requireAuth(srv.handleCreateTechStack))
	mux.Handle("PUT /api/tech-stack/{id}", srv.requireAuth(srv.handleUpdateTechStack))
	mux.Handle("DELETE /api/tech-stack/{id}", srv.requireAuth(srv.handleDeleteTechStack))

	mux.HandleFunc("GET /api/certifications", srv.handleListCertifications)
	mux.Handle("POST /api/certifications", srv.requireAuth(srv.handleCreateCertification))
	mux.Handle("PUT /api/certifications/{id}", srv.requireAuth(srv.handleUpdateCertification))
	mux.Handle("DELETE /api/certifications/{id}", srv.requireAuth(srv.handleDeleteCertification))
	mux.Handle("POST /api/certifications/{id}/upload", srv.requireAuth(srv.handleCertificationUpload))

	mux.HandleFunc("GET /api/deliveries", srv.handleListDeliveries)
	mux.Handle("POST /api/deliveries", srv.requireAuth(srv.handleCreateDelivery))
	mux.Handle("PUT /api/deliveries/{id}", srv.requireAuth(srv.handleUpdateDelivery))
	mux.Handle("DELETE /api/deliveries/{id}", srv.requireAuth(srv.handleDeleteDelivery))
	mux.Handle("POST /api/deliveries/{id}/images", srv.requireAuth(srv.handleDeliveryImageUpload))
	mux.Handle("DELETE /api/delivery-images/{id}", srv.requireAuth(srv.handleDeleteDeliveryImage))

	mux.HandleFunc("GET /api/settings", srv.handleGetSettings)
	mux.Handle("PUT /api/settings", srv.requireAuth(srv.handleUpdateSettings))

	mux.Handle("GET /api/activity-log", srv.requireAuth(srv.handleActivityLog))
	mux.HandleFunc("GET /api/stats", srv.handleStats)
	mux.HandleFunc("GET /api/portfolio", srv.handlePortfolio)
	mux.HandleFunc("GET /api/health", srv.handleHealth)
}
