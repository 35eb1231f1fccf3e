package donations

import (
	"errors"
	"fmt"

	"github.com/habitat-fund/backend/internal/models"
)

var (
	ErrInvalidRequest    = errors.New("the donation request is invalid")
	ErrNoHabitats        = fmt.Errorf("%w: at least one habitat name is required", ErrInvalidRequest)
	ErrAmountNotPositive = fmt.Errorf("%w: the amount must be positive", ErrInvalidRequest)
	ErrConcurrentUpdate  = errors.New("the habitat was modified by another donation, please retry")
)

// notFound returns an error for a resource of kind that could not be
// resolved by the value of attribute.
func notFound(kind, attribute, value string) error {
	return fmt.Errorf("%w %s with %s %q", models.ErrResourceNotFound, kind, attribute, value)
}

// unexpected classifies all errors that are not part of the engine's
// error taxonomy as general server errors.
func unexpected(err error) error {
	if err == nil {
		return nil
	}

	for _, known := range []error{ErrInvalidRequest, ErrConcurrentUpdate, models.ErrResourceNotFound, models.ErrGeneral} {
		if errors.Is(err, known) {
			return err
		}
	}

	// Model validation errors are client errors
	for _, validation := range []error{models.ErrDonationAmountNotPositive, models.ErrAllocationAmountNegative, models.ErrHabitatFoodSupplyNegative} {
		if errors.Is(err, validation) {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}

	return fmt.Errorf("%w: %w", models.ErrGeneral, err)
}
