package models

// VendorStatus classifies a vendor's standing with the organization.
type VendorStatus string

const (
	VendorPreferred  VendorStatus = "Preferred"
	VendorApproved   VendorStatus = "Approved"
	VendorRestricted VendorStatus = "Restricted"
)

// ServiceDefinition is immutable catalog data describing a bookable service.
type ServiceDefinition struct {
	ID                  string   `bson:"id" json:"id"`
	Module              string   `bson:"module" json:"module"`     // e.g. "travel", "facilities"
	Category            string   `bson:"category" json:"category"` // e.g. "flight", "medical"
	Name                string   `bson:"name" json:"name"`
	VendorID            string   `bson:"vendor_id" json:"vendor_id"`
	BasePrice           float64  `bson:"base_price" json:"base_price"`
	Currency            string   `bson:"currency" json:"currency"`
	RequiredAttachments []string `bson:"required_attachments,omitempty" json:"required_attachments,omitempty"`
	PurposeRequired     bool     `bson:"purpose_required" json:"purpose_required"`
	NotesRequired       bool     `bson:"notes_required" json:"notes_required"`
	ApprovalThreshold   float64  `bson:"approval_threshold" json:"approval_threshold"` // amount above which approval is forced
	RefundPolicy        string   `bson:"refund_policy,omitempty" json:"refund_policy,omitempty"`
}

// Vendor is immutable catalog data describing a service vendor and its SLA commitments.
type Vendor struct {
	ID                string       `bson:"id" json:"id"`
	Name              string       `bson:"name" json:"name"`
	Status            VendorStatus `bson:"status" json:"status"`
	ConfirmSLAMinutes int          `bson:"confirm_sla_minutes" json:"confirm_sla_minutes"` // time allowed to confirm a booking
	DeliverySLAHours  int          `bson:"delivery_sla_hours" json:"delivery_sla_hours"`   // time allowed to deliver after creation
}
