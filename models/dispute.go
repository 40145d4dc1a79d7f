package models

import "time"

// DisputeStatus tracks dispute resolution progress.
type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeInReview DisputeStatus = "in_review"
	DisputeResolved DisputeStatus = "resolved"
)

// Dispute records a complaint against a booking. At most one dispute
// may be open per booking at any time.
type Dispute struct {
	ID            string        `bson:"id" json:"id"`
	BookingID     string        `bson:"booking_id" json:"booking_id"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	Reason        string        `bson:"reason" json:"reason"`
	Note          string        `bson:"note,omitempty" json:"note,omitempty"`
	AttachmentRef string        `bson:"attachment_ref,omitempty" json:"attachment_ref,omitempty"`
	Status        DisputeStatus `bson:"status" json:"status"`
	Auto          bool          `bson:"auto" json:"auto"` // opened by SLA automation
}
