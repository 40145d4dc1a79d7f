package settlement

import "context"

// Processor is the opaque settlement collaborator invoked at the
// confirm/cancel boundaries. Refund returns the processor's reference
// on confirmed settlement; any error means the refund is still pending
// and the caller must retry.
type Processor interface {
	Charge(ctx context.Context, bookingID string, amount float64, currency string) (string, error)
	Refund(ctx context.Context, paymentRef string, amount float64, currency string) (string, error)
}
