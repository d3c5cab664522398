package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yourusername/prop-edge/internal/bankroll"
	"github.com/yourusername/prop-edge/internal/datasource"
	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/service"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondErr maps err onto a status code and writes it
func respondErr(w http.ResponseWriter, err error) {
	respondJSON(w, statusFor(err), errorResponse{Error: err.Error(), Code: datasource.ErrorCode(err)})
}

var badRequestErrors = []error{
	service.ErrInvalidRequest,
	engine.ErrUnsupportedStatKind,
	engine.ErrNonPositiveStdDev,
	engine.ErrNegativeRate,
	engine.ErrRateOutOfRange,
	engine.ErrInvalidOdds,
	engine.ErrDivisionByZero,
	engine.ErrInsufficientData,
	engine.ErrNonFiniteInput,
	models.ErrPlayerNameRequired,
	models.ErrInvalidBet,
	models.ErrInvalidID,
	bankroll.ErrInvalidPeriod,
	bankroll.ErrInvalidFilter,
}

func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	switch {
	case errors.Is(err, datasource.ErrPlayerNotFound), errors.Is(err, bankroll.ErrBetNotFound):
		return http.StatusNotFound
	case errors.Is(err, bankroll.ErrBetNotPending):
		return http.StatusConflict
	}
	switch datasource.ErrorCode(err) {
	case datasource.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case datasource.ErrCodeCircuitOpen:
		return http.StatusServiceUnavailable
	case datasource.ErrCodeNetworkError, datasource.ErrCodeServerError,
		datasource.ErrCodeAuthenticationFailed, datasource.ErrCodeInvalidData:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
