package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Simplici0/printquote/internal/quote"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Detail string `json:"detail"`
}

type validationResponse struct {
	Detail []quote.FieldError `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeInvalid answers 422 with the rejected fields when err is a validation
// error and reports whether it did.
func writeInvalid(w http.ResponseWriter, err error) bool {
	var verr *quote.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Detail: verr.Fields})
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
