package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/printquote/internal/metrics"
	"github.com/Simplici0/printquote/internal/pricing"
	"github.com/Simplici0/printquote/internal/quote"
)

func (s *server) handleInverse(w http.ResponseWriter, r *http.Request) {
	var req quote.InverseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in, err := req.Input()
	if err != nil {
		if !writeInvalid(w, err) {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	result := pricing.Inverse(in)
	s.metrics.ObserveComputation(metrics.OpInverse)

	if _, err := s.store.SaveInverseQuote(r.Context(), in, result); err != nil {
		s.logger.Error("save inverse quote", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save inverse quote")
		return
	}
	s.metrics.InverseQuoteStored()

	writeJSON(w, http.StatusOK, result)
}

// syncInverseGauge loads the number of stored inverse quotes into the metrics.
func (s *server) syncInverseGauge(ctx context.Context) error {
	n, err := s.store.CountInverseQuotes(ctx)
	if err != nil {
		return fmt.Errorf("sync inverse quote gauge: %w", err)
	}
	s.metrics.SetInverseQuotesStored(n)
	return nil
}
