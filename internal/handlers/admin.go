package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/config"
	"github.com/blufunnel/games-portal/internal/interfaces"
)

// AdminHandler serves the admin page and its three add forms.
type AdminHandler struct {
	logger    *common.Logger
	templates *template.Template
	devMode   bool
	store     interfaces.StorageManager
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(logger *common.Logger, devMode bool, store interfaces.StorageManager) *AdminHandler {
	return &AdminHandler{
		logger:    logger,
		templates: LoadTemplates(),
		devMode:   devMode,
		store:     store,
	}
}

// HandleAdmin serves GET /admin.
func (h *AdminHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx := r.Context()
	players, _ := h.store.Players().List(ctx)
	companies, _ := h.store.Companies().List(ctx)

	playerNames := make([]string, 0, len(players))
	for _, p := range players {
		playerNames = append(playerNames, p.Name)
	}
	companyNames := make([]string, 0, len(companies))
	for _, c := range companies {
		companyNames = append(companyNames, c.Name)
	}

	data := map[string]interface{}{
		"Page":            "admin",
		"DevMode":         h.devMode,
		"PlayerNames":     sortedUnique(playerNames),
		"CompanyNames":    sortedUnique(companyNames),
		"CanAddPortfolio": len(players) > 0 && len(companies) > 0,
		"Saved":           r.URL.Query().Get("saved"),
		"Error":           r.URL.Query().Get("error"),
		"CSRFToken":       CSRFTokenFrom(r),
		"PortalVersion":   config.GetVersion(),
	}

	if err := h.templates.ExecuteTemplate(w, "admin.html", data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "admin.html").Str("error", err.Error()).Msg("failed to render admin page")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleAddPlayer handles POST /admin/players.
func (h *AdminHandler) HandleAddPlayer(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	player, errMsg := buildPlayer(
		r.FormValue("player_name"),
		r.FormValue("coach"),
		r.FormValue("batch"),
		r.FormValue("status"),
	)
	if errMsg != "" {
		redirectAdminError(w, r, errMsg)
		return
	}

	if _, err := h.store.Players().Add(r.Context(), player); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to save player")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin?saved=player", http.StatusFound)
}

// HandleAddCompany handles POST /admin/companies.
func (h *AdminHandler) HandleAddCompany(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	company, errMsg := buildCompany(
		r.FormValue("company_name"),
		r.FormValue("sector"),
		r.FormValue("notes"),
	)
	if errMsg != "" {
		redirectAdminError(w, r, errMsg)
		return
	}

	if _, err := h.store.Companies().Add(r.Context(), company); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to save company")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin?saved=company", http.StatusFound)
}

// HandleAddPortfolio handles POST /admin/portfolios.
func (h *AdminHandler) HandleAddPortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	allocationPct := 0.0
	if raw := strings.TrimSpace(r.FormValue("allocation_pct")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			redirectAdminError(w, r, fmt.Sprintf("invalid allocation percent: %s", raw))
			return
		}
		allocationPct = v
	}

	entry, errMsg := buildPortfolioEntry(r.Context(), h.store,
		r.FormValue("player_name"),
		r.FormValue("company_name"),
		allocationPct,
		r.FormValue("notes"),
	)
	if errMsg != "" {
		redirectAdminError(w, r, errMsg)
		return
	}

	if _, err := h.store.Portfolios().Add(r.Context(), entry); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to save portfolio entry")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin?saved=portfolio", http.StatusFound)
}

// redirectAdminError sends the user back to the admin page with the
// validation message in the query string.
func redirectAdminError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/admin?error="+url.QueryEscape(msg), http.StatusFound)
}
