package models

import "time"

// Receipt is an immutable snapshot of a booking and its decision
// context, captured on entry to Pending confirmation. Later state
// changes never rewrite it; readers needing current status should
// read the booking, not the receipt.
type Receipt struct {
	ReceiptID       string        `bson:"receipt_id" json:"receipt_id"`
	BookingID       string        `bson:"booking_id" json:"booking_id"`
	Module          string        `bson:"module" json:"module"`
	ServiceName     string        `bson:"service_name" json:"service_name"`
	VendorName      string        `bson:"vendor_name" json:"vendor_name"`
	ScheduledAt     time.Time     `bson:"scheduled_at,omitempty" json:"scheduled_at,omitempty"`
	Beneficiary     string        `bson:"beneficiary" json:"beneficiary"`
	PaymentMethod   PaymentMethod `bson:"payment_method" json:"payment_method"`
	Corporate       bool          `bson:"corporate" json:"corporate"`
	Purpose         string        `bson:"purpose,omitempty" json:"purpose,omitempty"`         // only set for corporate bookings
	CostCenter      string        `bson:"cost_center,omitempty" json:"cost_center,omitempty"` // only set for corporate bookings
	AttachmentCount int           `bson:"attachment_count" json:"attachment_count"`
	Amount          float64       `bson:"amount" json:"amount"`
	Currency        string        `bson:"currency" json:"currency"`
	StatusAtIssue   BookingState  `bson:"status_at_issue" json:"status_at_issue"`
	IssuedAt        time.Time     `bson:"issued_at" json:"issued_at"`
}
