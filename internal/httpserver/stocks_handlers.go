package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ninotmecheast-source/trivia/internal/stocks"
)

// handleQuote serves the cached quote for one ticker symbol
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(mux.Vars(r)["symbol"])
	if symbol == "" {
		s.writeErrorResponse(w, "symbol is required", http.StatusBadRequest)
		return
	}

	quote, err := s.deps.Quotes.Quote(r.Context(), symbol)
	if err != nil {
		var fetchErr *stocks.FetchError
		switch {
		case errors.Is(err, stocks.ErrInvalidQuote):
			s.writeErrorResponse(w, "unknown symbol: "+symbol, http.StatusNotFound)
		case errors.As(err, &fetchErr):
			s.writeErrorResponse(w, "quote provider unavailable", http.StatusBadGateway)
		default:
			s.logger.Error("Quote lookup failed", zap.String("symbol", symbol), zap.Error(err))
			s.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	s.writeResponse(w, quote)
}

// handleBuy executes a buy against the portfolio ledger
func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	s.handleTrade(w, r, "buy")
}

// handleSell executes a sell against the portfolio ledger
func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	s.handleTrade(w, r, "sell")
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request, side string) {
	var req TradeRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.writeErrorResponse(w, "invalid trade: "+err.Error(), http.StatusBadRequest)
		return
	}

	trade := s.deps.Ledger.Buy
	if side == "sell" {
		trade = s.deps.Ledger.Sell
	}

	snapshot, err := trade(req.Symbol, int64(req.Shares), req.Price)
	if err != nil {
		switch {
		case errors.Is(err, stocks.ErrInvalidTrade):
			s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, stocks.ErrInsufficientFunds),
			errors.Is(err, stocks.ErrInsufficientShares):
			s.writeErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			s.logger.Error("Trade failed", zap.String("side", side), zap.Error(err))
			s.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	s.writeResponse(w, snapshot)
}

// handlePortfolio returns the current balance and positions
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, s.deps.Ledger.Snapshot())
}
