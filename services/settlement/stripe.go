package settlement

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// StripeProcessor settles corporate charges and refunds through Stripe.
type StripeProcessor struct {
	logger *zap.Logger
}

// NewStripeProcessor returns a Processor backed by the Stripe API.
// stripe.Key must be set by the caller before use.
func NewStripeProcessor(logger *zap.Logger) *StripeProcessor {
	return &StripeProcessor{logger: logger}
}

func (p *StripeProcessor) Charge(ctx context.Context, bookingID string, amount float64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(amount)),
		Currency: stripe.String(currency),
		Confirm:  stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bookingID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe charge failed: %w", err)
	}
	p.logger.Info("settlement charge created",
		zap.String("booking_id", bookingID),
		zap.String("payment_intent", pi.ID),
	)
	return pi.ID, nil
}

func (p *StripeProcessor) Refund(ctx context.Context, paymentRef string, amount float64, currency string) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentRef),
		Amount:        stripe.Int64(minorUnits(amount)),
	}
	params.Context = ctx

	r, err := refund.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe refund failed: %w", err)
	}
	if r.Status != stripe.RefundStatusSucceeded {
		return "", fmt.Errorf("stripe refund %s in status %s", r.ID, r.Status)
	}
	p.logger.Info("settlement refund confirmed",
		zap.String("payment_ref", paymentRef),
		zap.String("refund_id", r.ID),
	)
	return r.ID, nil
}

func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
