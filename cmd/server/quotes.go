package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/printquote/internal/metrics"
	"github.com/Simplici0/printquote/internal/pricing"
	"github.com/Simplici0/printquote/internal/quote"
	"github.com/Simplici0/printquote/internal/store"
)

const quoteNotFound = "Quote not found"

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	summary, ok := s.summarize(w, doc)
	if !ok {
		return
	}

	q := quote.Quote{UserID: currentUser(r).ID, Summary: summary, Document: doc}
	if err := s.store.CreateQuote(r.Context(), &q); err != nil {
		s.logger.Error("create quote", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save quote")
		return
	}

	s.logger.Info("quote created",
		zap.Int64("quote_id", q.ID),
		zap.Int64("user_id", q.UserID),
		zap.Float64("estimated_total_cost", q.Summary.EstimatedTotalCost),
	)
	writeJSON(w, http.StatusCreated, q)
}

func (s *server) handleQuoteList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.store.ListQuotes(r.Context(), currentUser(r).ID, query)
	if err != nil {
		s.logger.Error("list quotes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	q, ok := s.ownedQuote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// handleQuoteUpdate replaces the whole document and recomputes the summary.
func (s *server) handleQuoteUpdate(w http.ResponseWriter, r *http.Request) {
	q, ok := s.ownedQuote(w, r)
	if !ok {
		return
	}

	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	summary, ok := s.summarize(w, doc)
	if !ok {
		return
	}

	q.Document = doc
	q.Summary = summary
	if err := s.store.UpdateQuote(r.Context(), &q); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, quoteNotFound)
			return
		}
		s.logger.Error("update quote", zap.Int64("quote_id", q.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update quote")
		return
	}

	writeJSON(w, http.StatusOK, q)
}

func (s *server) handleQuoteDelete(w http.ResponseWriter, r *http.Request) {
	q, ok := s.ownedQuote(w, r)
	if !ok {
		return
	}

	err := s.store.DeleteQuote(r.Context(), q.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("delete quote", zap.Int64("quote_id", q.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete quote")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleQuoteOptimize projects the fast, economic and balanced variants of a
// stored quote. Unlike the other quote routes it answers 403 to non-owners.
func (s *server) handleQuoteOptimize(w http.ResponseWriter, r *http.Request) {
	id, ok := quoteID(w, r)
	if !ok {
		return
	}

	q, err := s.store.GetQuote(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, quoteNotFound)
		return
	}
	if err != nil {
		s.logger.Error("load quote", zap.Int64("quote_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load quote")
		return
	}
	if q.UserID != currentUser(r).ID {
		writeError(w, http.StatusForbidden, "Not authorized to access this quote")
		return
	}

	opt := pricing.Optimize(q.PricingInput())
	s.metrics.ObserveComputation(metrics.OpOptimize)
	writeJSON(w, http.StatusOK, opt)
}

func (s *server) readDocument(w http.ResponseWriter, r *http.Request) (quote.Document, bool) {
	var doc quote.Document
	if err := decodeJSON(w, r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return quote.Document{}, false
	}
	doc.QuoteName = strings.TrimSpace(doc.QuoteName)
	return doc, true
}

func (s *server) summarize(w http.ResponseWriter, doc quote.Document) (pricing.Summary, bool) {
	summary, err := doc.Summarize()
	if err != nil {
		if writeInvalid(w, err) {
			return pricing.Summary{}, false
		}
		if errors.Is(err, pricing.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return pricing.Summary{}, false
		}
		s.logger.Error("summarize quote", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute quote")
		return pricing.Summary{}, false
	}

	s.metrics.ObserveComputation(metrics.OpSummary)
	s.metrics.ObserveQuoteTotal(summary.EstimatedTotalCost)
	return summary, true
}

// ownedQuote loads the quote named by the URL. Quotes of other users are
// reported as missing.
func (s *server) ownedQuote(w http.ResponseWriter, r *http.Request) (quote.Quote, bool) {
	id, ok := quoteID(w, r)
	if !ok {
		return quote.Quote{}, false
	}

	q, err := s.store.GetQuote(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && q.UserID != currentUser(r).ID) {
		writeError(w, http.StatusNotFound, quoteNotFound)
		return quote.Quote{}, false
	}
	if err != nil {
		s.logger.Error("load quote", zap.Int64("quote_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load quote")
		return quote.Quote{}, false
	}
	return q, true
}

func quoteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return 0, false
	}
	return id, true
}
