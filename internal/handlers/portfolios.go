package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/config"
	"github.com/blufunnel/games-portal/internal/interfaces"
	"github.com/blufunnel/games-portal/internal/models"
)

// PortfoliosHandler serves the model portfolios page and JSON API.
type PortfoliosHandler struct {
	logger    *common.Logger
	templates *template.Template
	devMode   bool
	store     interfaces.StorageManager
}

// portfolioCreateRequest is the JSON body for POST /api/portfolios.
type portfolioCreateRequest struct {
	PlayerName    string  `json:"player_name"`
	CompanyName   string  `json:"company_name"`
	AllocationPct float64 `json:"allocation_pct"`
	Notes         string  `json:"notes"`
}

// NewPortfoliosHandler creates a new portfolios handler.
func NewPortfoliosHandler(logger *common.Logger, devMode bool, store interfaces.StorageManager) *PortfoliosHandler {
	return &PortfoliosHandler{
		logger:    logger,
		templates: LoadTemplates(),
		devMode:   devMode,
		store:     store,
	}
}

// ServeHTTP renders the portfolios page. Query params filter the table:
// player and company match by exact name, min_alloc drops rows below the
// given allocation percent.
func (h *PortfoliosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx := r.Context()
	entries, _ := h.store.Portfolios().List(ctx)
	players, _ := h.store.Players().List(ctx)
	companies, _ := h.store.Companies().List(ctx)

	playerFilter := strings.TrimSpace(r.URL.Query().Get("player"))
	companyFilter := strings.TrimSpace(r.URL.Query().Get("company"))
	minAlloc := 0.0
	if raw := r.URL.Query().Get("min_alloc"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			minAlloc = v
		}
	}

	filtered := filterPortfolios(entries, playerFilter, companyFilter, minAlloc)

	playerNames := make([]string, 0, len(players))
	for _, p := range players {
		playerNames = append(playerNames, p.Name)
	}
	companyNames := make([]string, 0, len(companies))
	for _, c := range companies {
		companyNames = append(companyNames, c.Name)
	}

	data := map[string]interface{}{
		"Page":           "portfolios",
		"DevMode":        h.devMode,
		"Portfolios":     filtered,
		"PortfolioCount": len(entries),
		"PlayerNames":    sortedUnique(playerNames),
		"CompanyNames":   sortedUnique(companyNames),
		"PlayerFilter":   playerFilter,
		"CompanyFilter":  companyFilter,
		"MinAlloc":       minAlloc,
		"PortalVersion":  config.GetVersion(),
	}

	if err := h.templates.ExecuteTemplate(w, "portfolios.html", data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "portfolios.html").Str("error", err.Error()).Msg("failed to render portfolios page")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleList handles GET /api/portfolios.
func (h *PortfoliosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.Portfolios().List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to list portfolios")
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}

// HandleCreate handles POST /api/portfolios.
func (h *PortfoliosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req portfolioCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, errMsg := buildPortfolioEntry(r.Context(), h.store, req.PlayerName, req.CompanyName, req.AllocationPct, req.Notes)
	if errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	stored, err := h.store.Portfolios().Add(r.Context(), entry)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to add portfolio entry")
		}
		WriteError(w, http.StatusInternalServerError, "failed to add portfolio entry")
		return
	}

	WriteJSON(w, http.StatusCreated, stored)
}

// buildPortfolioEntry validates a portfolio submission and denormalizes the
// selected player and company into the stored row. Returns a non-empty
// message when validation fails.
func buildPortfolioEntry(ctx context.Context, store interfaces.StorageManager, playerName, companyName string, allocationPct float64, notes string) (models.PortfolioEntry, string) {
	playerName = strings.TrimSpace(playerName)
	companyName = strings.TrimSpace(companyName)

	if playerName == "" {
		return models.PortfolioEntry{}, "player is required"
	}
	if companyName == "" {
		return models.PortfolioEntry{}, "company is required"
	}
	if allocationPct < 0 || allocationPct > 100 {
		return models.PortfolioEntry{}, "allocation percent must be between 0 and 100"
	}

	player, err := store.Players().FindByName(ctx, playerName)
	if err != nil || player == nil {
		return models.PortfolioEntry{}, fmt.Sprintf("unknown player: %s", playerName)
	}
	company, err := store.Companies().FindByName(ctx, companyName)
	if err != nil || company == nil {
		return models.PortfolioEntry{}, fmt.Sprintf("unknown company: %s", companyName)
	}

	return models.PortfolioEntry{
		PlayerID:      player.ID,
		PlayerName:    player.Name,
		CompanyID:     company.ID,
		CompanyName:   company.Name,
		AllocationPct: allocationPct,
		Notes:         strings.TrimSpace(notes),
	}, ""
}

// filterPortfolios applies the portfolio page filters.
func filterPortfolios(entries []models.PortfolioEntry, player, company string, minAlloc float64) []models.PortfolioEntry {
	filtered := make([]models.PortfolioEntry, 0, len(entries))
	for _, e := range entries {
		if player != "" && e.PlayerName != player {
			continue
		}
		if company != "" && e.CompanyName != company {
			continue
		}
		if e.AllocationPct < minAlloc {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// sortedUnique returns the sorted distinct non-empty values.
func sortedUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
