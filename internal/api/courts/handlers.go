// internal/api/courts/handlers.go
package courts

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtreserve/internal/api/apiutil"
	dbgen "github.com/codr1/courtreserve/internal/db/generated"
)

var (
	queries     dbgen.Querier
	queriesOnce sync.Once
)

const courtsQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q dbgen.Querier) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

type complexResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type courtResponse struct {
	ID        int64  `json:"id"`
	ComplexID int64  `json:"complex_id"`
	Name      string `json:"name"`
	CourtType string `json:"court_type"`
	IsActive  bool   `json:"is_active"`
}

// GET /api/v1/complexes
func HandleListComplexes(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	rows, err := q.ListComplexes(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list complexes")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load complexes", Err: err})
		return
	}

	resp := make([]complexResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, complexResponse{ID: row.ID, Name: row.Name})
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write complexes response")
	}
}

// GET /api/v1/complexes/{id}/courts
func HandleListCourts(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return
	}

	complexID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid complex ID", Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	if _, err := q.GetComplex(ctx, complexID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Complex not found"})
			return
		}
		logger.Error().Err(err).Int64("complex_id", complexID).Msg("Failed to load complex")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load courts", Err: err})
		return
	}

	rows, err := q.ListCourtsByComplex(ctx, complexID)
	if err != nil {
		logger.Error().Err(err).Int64("complex_id", complexID).Msg("Failed to list courts")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load courts", Err: err})
		return
	}

	resp := make([]courtResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, courtResponse{
			ID:        row.ID,
			ComplexID: row.ComplexID,
			Name:      row.Name,
			CourtType: row.CourtType,
			IsActive:  row.IsActive,
		})
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write courts response")
	}
}

func loadQueries() dbgen.Querier {
	return queries
}
