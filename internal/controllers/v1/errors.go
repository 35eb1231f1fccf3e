package v1

import (
	"errors"
	"net/http"

	"github.com/habitat-fund/backend/internal/donations"
	"github.com/habitat-fund/backend/internal/models"
)

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, donations.ErrConcurrentUpdate) {
		return http.StatusConflict
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Animal errors
var (
	errSearchTypeInvalid = errors.New("the type query parameter must be one of NAME, SPECIES or GLOB")
	errSearchTermMissing = errors.New("the term query parameter must be set")
	errPageMissing       = errors.New("the page query parameter must be set")
)

// Favorite errors
var (
	errNoAnimalIDs = errors.New("at least one animal ID must be specified")
)
