package handlers

import (
	"html/template"
	"net/http"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/config"
	"github.com/blufunnel/games-portal/internal/interfaces"
)

// DashboardHandler serves the overview page with quick stats and table snapshots.
type DashboardHandler struct {
	logger    *common.Logger
	templates *template.Template
	devMode   bool
	store     interfaces.StorageManager
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(logger *common.Logger, devMode bool, store interfaces.StorageManager) *DashboardHandler {
	return &DashboardHandler{
		logger:    logger,
		templates: LoadTemplates(),
		devMode:   devMode,
		store:     store,
	}
}

// ServeHTTP renders the dashboard page.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx := r.Context()
	players, _ := h.store.Players().List(ctx)
	companies, _ := h.store.Companies().List(ctx)
	portfolios, _ := h.store.Portfolios().List(ctx)

	data := map[string]interface{}{
		"Page":           "dashboard",
		"DevMode":        h.devMode,
		"Players":        players,
		"Companies":      companies,
		"Portfolios":     portfolios,
		"PlayerCount":    len(players),
		"CompanyCount":   len(companies),
		"PortfolioCount": len(portfolios),
		"PortalVersion":  config.GetVersion(),
	}

	if err := h.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "dashboard.html").Str("error", err.Error()).Msg("failed to render dashboard")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
