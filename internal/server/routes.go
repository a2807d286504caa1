package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page routes (HTML templates)
	mux.HandleFunc("/{$}", s.app.DashboardHandler.ServeHTTP)
	mux.HandleFunc("/players", s.app.PlayersHandler.ServeHTTP)
	mux.HandleFunc("/companies", s.app.CompaniesHandler.ServeHTTP)
	mux.HandleFunc("/portfolios", s.app.PortfoliosHandler.ServeHTTP)
	mux.HandleFunc("/about", s.app.PageHandler.ServePage("about.html", "about"))

	// Admin page and form submissions
	mux.HandleFunc("/admin", s.app.AdminHandler.HandleAdmin)
	mux.HandleFunc("/admin/players", s.app.AdminHandler.HandleAddPlayer)
	mux.HandleFunc("/admin/companies", s.app.AdminHandler.HandleAddCompany)
	mux.HandleFunc("/admin/portfolios", s.app.AdminHandler.HandleAddPortfolio)

	// Static files (CSS, JS, images)
	mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)

	// API routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)
	mux.HandleFunc("/api/players", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, s.app.PlayersHandler.HandleList, s.app.PlayersHandler.HandleCreate)
	})
	mux.HandleFunc("/api/companies", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, s.app.CompaniesHandler.HandleList, s.app.CompaniesHandler.HandleCreate)
	})
	mux.HandleFunc("/api/portfolios", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, s.app.PortfoliosHandler.HandleList, s.app.PortfoliosHandler.HandleCreate)
	})

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
