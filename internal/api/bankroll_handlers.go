package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/service"
)

type settleRequest struct {
	Status     models.BetStatus `json:"status"`
	ProfitLoss decimal.Decimal  `json:"profit_loss"`
}

func (s *Server) handleBankrollSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.bankroll.Summary())
}

// handleEquityCurve returns the chart window for ?period= (default 30d)
func (s *Server) handleEquityCurve(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "30d"
	}
	curve, err := s.bankroll.Curve(period)
	if err != nil {
		respondErr(w, err)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(curve.ToCSV()))
		return
	}
	respondJSON(w, http.StatusOK, curve)
}

// handleRiskStatus checks ?daily_pnl= (or the tracked day) against the limits
func (s *Server) handleRiskStatus(w http.ResponseWriter, r *http.Request) {
	var pnl *decimal.Decimal
	if raw := r.URL.Query().Get("daily_pnl"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "daily_pnl must be a number")
			return
		}
		pnl = &d
	}
	respondJSON(w, http.StatusOK, s.bankroll.Risk(pnl))
}

// handleRecommendStake sizes a stake for ?odds=&edge=
func (s *Server) handleRecommendStake(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	odds, err := strconv.Atoi(q.Get("odds"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "odds must be an integer")
		return
	}
	edge, err := strconv.ParseFloat(q.Get("edge"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "edge must be a number")
		return
	}

	rec, err := s.bankroll.RecommendStake(odds, edge)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// handleExport downloads the bankroll snapshot
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if _, err := s.bankroll.Export(&buf); err != nil {
		respondErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.bankroll.ExportFilename()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleListBets filters the history by ?sport= and ?outcome=
func (s *Server) handleListBets(w http.ResponseWriter, r *http.Request) {
	bets, err := s.bankroll.Bets(r.URL.Query().Get("sport"), r.URL.Query().Get("outcome"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bets)
}

func (s *Server) handleRecordBet(w http.ResponseWriter, r *http.Request) {
	var req service.BetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	bet, err := s.bankroll.RecordBet(req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, bet)
}

func (s *Server) handleSettleBet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, fmt.Errorf("%w: %v", models.ErrInvalidID, err))
		return
	}

	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	bet, err := s.bankroll.SettleBet(id, req.Status, req.ProfitLoss)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bet)
}
