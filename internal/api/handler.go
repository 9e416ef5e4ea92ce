// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	custom_errors "github-outreach/internal/errors"
	"github-outreach/internal/model"
	"github-outreach/internal/pipeline"
	"github-outreach/internal/store"
)

// Handler is the container for API dependencies.
type Handler struct {
	db     store.Querier
	logger *slog.Logger
}

// companyResponse is the wire shape of a stored company record.
type companyResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Website     string          `json:"website"`
	ManagerName *string         `json:"manager_name,omitempty"`
	ScrapedData json.RawMessage `json:"scraped_data,omitempty"`
	NiceData    json.RawMessage `json:"nice_data,omitempty"`
	Email       *string         `json:"email,omitempty"`
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(db store.Querier, logger *slog.Logger) http.Handler {
	h := &Handler{
		db:     db,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/companies/{id}", h.getCompany)
		r.Get("/companies/{id}/digest", h.getDigest)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getCompany returns the stored record for one company.
// GET /v1/companies/{id}
func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	company, ok := h.lookupCompany(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, toCompanyResponse(company))
}

// getDigest renders the activity digest from the company's stored sample
// set.
// GET /v1/companies/{id}/digest
func (h *Handler) getDigest(w http.ResponseWriter, r *http.Request) {
	company, ok := h.lookupCompany(w, r)
	if !ok {
		return
	}

	var samples []model.RepositorySample
	if len(company.ScrapedData) > 0 {
		if err := json.Unmarshal(company.ScrapedData, &samples); err != nil {
			h.logger.Error("Stored sample set is malformed", "company_id", company.ID, "error", err)
			samples = nil
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"digest": pipeline.Summarize(samples),
	})
}

func (h *Handler) lookupCompany(w http.ResponseWriter, r *http.Request) (*model.CompanyProfile, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company id")
		return nil, false
	}

	company, err := h.db.GetCompany(r.Context(), id)
	if err != nil {
		var notFound *custom_errors.ErrCompanyNotFound
		if errors.As(err, &notFound) {
			respondWithError(w, http.StatusNotFound, "Company not found")
			return nil, false
		}
		h.logger.Error("Failed to get company", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return company, true
}

func toCompanyResponse(c *model.CompanyProfile) companyResponse {
	return companyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Website:     c.Website,
		ManagerName: c.ManagerName,
		ScrapedData: c.ScrapedData,
		NiceData:    c.NiceData,
		Email:       c.Email,
	}
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, map[string]string{"error": message})
}
