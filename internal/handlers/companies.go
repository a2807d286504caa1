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

// CompaniesHandler serves the companies page and JSON API.
type CompaniesHandler struct {
	logger    *common.Logger
	templates *template.Template
	devMode   bool
	store     interfaces.CompanyStorage
}

// NewCompaniesHandler creates a new companies handler.
func NewCompaniesHandler(logger *common.Logger, devMode bool, store interfaces.CompanyStorage) *CompaniesHandler {
	return &CompaniesHandler{
		logger:    logger,
		templates: LoadTemplates(),
		devMode:   devMode,
		store:     store,
	}
}

// ServeHTTP renders the companies page.
func (h *CompaniesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	companies, _ := h.store.List(r.Context())

	data := map[string]interface{}{
		"Page":          "companies",
		"DevMode":       h.devMode,
		"Companies":     companies,
		"CompanyCount":  len(companies),
		"PortalVersion": config.GetVersion(),
	}

	if err := h.templates.ExecuteTemplate(w, "companies.html", data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "companies.html").Str("error", err.Error()).Msg("failed to render companies page")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleList handles GET /api/companies.
func (h *CompaniesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}
	WriteJSON(w, http.StatusOK, companies)
}

// HandleCreate handles POST /api/companies.
func (h *CompaniesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.Company
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	company, errMsg := buildCompany(req.Name, req.Sector, req.Notes)
	if errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	stored, err := h.store.Add(r.Context(), company)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to add company")
		}
		WriteError(w, http.StatusInternalServerError, "failed to add company")
		return
	}

	WriteJSON(w, http.StatusCreated, stored)
}

// buildCompany trims inputs and validates the mandatory name field.
func buildCompany(name, sector, notes string) (models.Company, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Company{}, "company name is required"
	}
	return models.Company{
		Name:   name,
		Sector: strings.TrimSpace(sector),
		Notes:  strings.TrimSpace(notes),
	}, ""
}
