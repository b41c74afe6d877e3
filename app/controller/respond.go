package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"commission-catalog/pricing"
	"commission-catalog/repository"
	"commission-catalog/service"
)

// maxJSONBody bounds request bodies decoded as JSON
const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

// statusFor maps service and repository errors to HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, repository.ErrUnknownTable),
		errors.Is(err, service.ErrBlobNotFound):
		return http.StatusNotFound
	case errors.Is(err, pricing.ErrUnknownService),
		errors.Is(err, repository.ErrUnknownColumn),
		errors.Is(err, repository.ErrInvalidValue),
		errors.Is(err, service.ErrEmptyPatch),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrNotPackService),
		errors.Is(err, service.ErrInvalidUnit),
		errors.Is(err, service.ErrInvalidUpload),
		errors.Is(err, service.ErrInvalidTestimonial):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrCatalogUnavailable),
		errors.Is(err, service.ErrImportUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError logs err under op and writes it with the mapped status. Server
// errors hide the cause from the client.
func writeError(w http.ResponseWriter, log *zap.SugaredLogger, op string, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Errorf("❌ %s: %v", op, err)
		msg = "internal error"
	} else {
		log.Warnf("⚠️  %s: %v", op, err)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func badRequest(w http.ResponseWriter, log *zap.SugaredLogger, op, msg string) {
	log.Warnf("⚠️  %s: %s", op, msg)
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func orNop(logger *zap.Logger) *zap.SugaredLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}
