package models

import "time"

// BookingState is the lifecycle state of a booking aggregate.
type BookingState string

const (
	StateDraft               BookingState = "draft"
	StatePendingApproval     BookingState = "pending_approval"
	StatePendingConfirmation BookingState = "pending_confirmation"
	StateConfirmed           BookingState = "confirmed"
	StateInProgress          BookingState = "in_progress"
	StateCompleted           BookingState = "completed"
	StateNeedsChanges        BookingState = "needs_changes"
	StateCancelled           BookingState = "cancelled"
	StateRefundProcessing    BookingState = "refund_processing"
	StateRefunded            BookingState = "refunded"
	StateSLABreached         BookingState = "sla_breached"
)

// Terminal reports whether the state has no outgoing transitions.
func (s BookingState) Terminal() bool {
	return s == StateCompleted || s == StateRefunded
}

// AttachmentRef is a minimal descriptor of a stored attachment.
// Upload and storage mechanics live outside the engine.
type AttachmentRef struct {
	Name string `bson:"name" json:"name"`
	Size int64  `bson:"size" json:"size"`
	Type string `bson:"type" json:"type"`
}

// TimelineEvent is an append-only audit entry owned by the booking.
type TimelineEvent struct {
	ID        string    `bson:"id" json:"id"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Title     string    `bson:"title" json:"title"`
	Detail    string    `bson:"detail,omitempty" json:"detail,omitempty"`
	Actor     string    `bson:"actor" json:"actor"` // "operator", "vendor", "system"
}

// Booking is the aggregate owned by the lifecycle manager.
// One booking per checkout session; mutated only through transitions.
type Booking struct {
	ID            string          `bson:"id" json:"id"`
	State         BookingState    `bson:"state" json:"state"`
	ServiceID     string          `bson:"service_id" json:"service_id"`
	VendorID      string          `bson:"vendor_id" json:"vendor_id"`
	UserID        string          `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Amount        float64         `bson:"amount" json:"amount"`
	Currency      string          `bson:"currency" json:"currency"`
	PaymentMethod PaymentMethod   `bson:"payment_method" json:"payment_method"`
	CostCenter    string          `bson:"cost_center,omitempty" json:"cost_center,omitempty"`
	Purpose       string          `bson:"purpose,omitempty" json:"purpose,omitempty"`
	Notes         string          `bson:"notes,omitempty" json:"notes,omitempty"`
	Attachments   []AttachmentRef `bson:"attachments,omitempty" json:"attachments,omitempty"`
	Beneficiary   Beneficiary     `bson:"beneficiary" json:"beneficiary"`
	ScheduledAt   time.Time       `bson:"scheduled_at,omitempty" json:"scheduled_at,omitempty"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
	PaymentRef    string          `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"` // settlement processor reference, empty until charged

	// Due timestamps are fixed once, on entry to Pending confirmation,
	// and never recomputed afterward.
	ConfirmDueAt  time.Time `bson:"confirm_due_at,omitempty" json:"confirm_due_at,omitempty"`
	DeliveryDueAt time.Time `bson:"delivery_due_at,omitempty" json:"delivery_due_at,omitempty"`

	Timeline  []TimelineEvent `bson:"timeline" json:"timeline"`
	Disputes  []Dispute       `bson:"disputes,omitempty" json:"disputes,omitempty"`
	ReceiptID string          `bson:"receipt_id,omitempty" json:"receipt_id,omitempty"`
}

// OpenDispute returns the currently open dispute, if any.
func (b *Booking) OpenDispute() *Dispute {
	for i := range b.Disputes {
		if b.Disputes[i].Status == DisputeOpen {
			return &b.Disputes[i]
		}
	}
	return nil
}
