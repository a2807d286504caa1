package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/config"
	"github.com/blufunnel/games-portal/internal/interfaces"
	"github.com/blufunnel/games-portal/internal/models"
)

// PlayersHandler serves the players page and JSON API.
type PlayersHandler struct {
	logger    *common.Logger
	templates *template.Template
	devMode   bool
	store     interfaces.PlayerStorage
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(logger *common.Logger, devMode bool, store interfaces.PlayerStorage) *PlayersHandler {
	return &PlayersHandler{
		logger:    logger,
		templates: LoadTemplates(),
		devMode:   devMode,
		store:     store,
	}
}

// ServeHTTP renders the players page.
func (h *PlayersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	players, _ := h.store.List(r.Context())

	data := map[string]interface{}{
		"Page":          "players",
		"DevMode":       h.devMode,
		"Players":       players,
		"PlayerCount":   len(players),
		"PortalVersion": config.GetVersion(),
	}

	if err := h.templates.ExecuteTemplate(w, "players.html", data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "players.html").Str("error", err.Error()).Msg("failed to render players page")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleList handles GET /api/players.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	players, err := h.store.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to list players")
		return
	}
	WriteJSON(w, http.StatusOK, players)
}

// HandleCreate handles POST /api/players.
func (h *PlayersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.Player
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	player, errMsg := buildPlayer(req.Name, req.Coach, req.Batch, req.Status)
	if errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	stored, err := h.store.Add(r.Context(), player)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to add player")
		}
		WriteError(w, http.StatusInternalServerError, "failed to add player")
		return
	}

	WriteJSON(w, http.StatusCreated, stored)
}

// buildPlayer trims inputs and validates the mandatory name field.
// Returns a non-empty message when validation fails.
func buildPlayer(name, coach, batch, status string) (models.Player, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Player{}, "player name is required"
	}
	return models.Player{
		Name:   name,
		Coach:  strings.TrimSpace(coach),
		Batch:  strings.TrimSpace(batch),
		Status: strings.TrimSpace(status),
	}, ""
}
