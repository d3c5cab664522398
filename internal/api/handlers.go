package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/yourusername/prop-edge/internal/service"
)

type kellyRequest struct {
	Odds        int     `json:"odds"`
	EdgePercent float64 `json:"edge_percent"`
}

type kellyResponse struct {
	Odds          int     `json:"odds"`
	EdgePercent   float64 `json:"edge_percent"`
	KellyFraction float64 `json:"kelly_fraction"`
}

type sharpeRequest struct {
	Values []float64 `json:"values"`
}

type sharpeResponse struct {
	SharpeRatio float64 `json:"sharpe_ratio"`
	Points      int     `json:"points"`
}

// handleEvaluateProp prices a player prop
func (s *Server) handleEvaluateProp(w http.ResponseWriter, r *http.Request) {
	var req service.PropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	result, err := s.props.Evaluate(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleImpliedProbability converts ?odds= into decimal odds and implied probability
func (s *Server) handleImpliedProbability(w http.ResponseWriter, r *http.Request) {
	odds, err := strconv.Atoi(r.URL.Query().Get("odds"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "odds must be an integer")
		return
	}

	quote, err := s.props.Quote(odds)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// handleKelly returns the capped quarter-Kelly fraction
func (s *Server) handleKelly(w http.ResponseWriter, r *http.Request) {
	var req kellyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	fraction, err := s.props.KellyFraction(req.Odds, req.EdgePercent)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, kellyResponse{Odds: req.Odds, EdgePercent: req.EdgePercent, KellyFraction: fraction})
}

// handleSharpe annualizes a series of daily bankroll values
func (s *Server) handleSharpe(w http.ResponseWriter, r *http.Request) {
	var req sharpeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	ratio, err := s.props.SharpeRatio(req.Values)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sharpeResponse{SharpeRatio: ratio, Points: len(req.Values)})
}
