package booking

import (
	"errors"
	"fmt"

	"corpay/models"
)

var (
	// ErrInvalidTransition is returned when a requested state change is
	// not in the transition table. State and timeline stay unchanged.
	ErrInvalidTransition = errors.New("invalid booking transition")

	// ErrReferenceNotFound covers unknown service or vendor ids.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrMissingField is returned for dispute creation without a reason.
	ErrMissingField = errors.New("missing required field")

	// ErrRefundPending means settlement has not confirmed (or failed);
	// the booking stays in Refund processing and the call is retryable.
	ErrRefundPending = errors.New("refund settlement pending")

	// ErrDisputeAlreadyOpen enforces the one-open-dispute invariant for
	// manual dispute creation.
	ErrDisputeAlreadyOpen = errors.New("a dispute is already open for this booking")

	// ErrPolicyBlocked is returned when a checkout is submitted while
	// the current policy decision blocks it.
	ErrPolicyBlocked = errors.New("booking blocked by corporate policy")
)

func invalidTransition(from, to models.BookingState) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
