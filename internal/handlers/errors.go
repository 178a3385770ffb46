package handlers

import (
	"errors"
	"log"
	"net/http"

	"tracker-backend/internal/services"
	"tracker-backend/pkg/utils"
)

// handleServiceError maps service-level errors to HTTP status codes.
// Sentinels and validation errors carry user-facing messages; anything
// else is a storage or backend failure whose detail stays in the server
// log, never in the response body.
func handleServiceError(w http.ResponseWriter, err error) {
	var validationErr services.ValidationError

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidTOTPCode):
		utils.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrSelfAction),
		errors.Is(err, services.ErrNoTOTPSecret):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &validationErr):
		utils.Error(w, http.StatusBadRequest, validationErr.Error())
	default:
		log.Printf("[Handler] internal error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "terjadi kesalahan server")
	}
}
