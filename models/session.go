package models

// CheckoutSession holds the in-flight checkout state cached in Redis.
// The booking inside stays in Draft until the session is submitted.
type CheckoutSession struct {
	SessionID string                `json:"session_id"`
	Booking   Booking               `json:"booking"`
	Program   CorporateProgramState `json:"program"`
	Decision  PolicyDecision        `json:"decision"`
	UserID    string                `json:"user_id,omitempty"`
	DeviceID  string                `json:"device_id,omitempty"`
}

// CheckoutUpdate carries the editable checkout fields. Pointer fields
// distinguish "not edited" from "cleared".
type CheckoutUpdate struct {
	PaymentMethod *PaymentMethod   `json:"payment_method,omitempty"`
	Amount        *float64         `json:"amount,omitempty"`
	CostCenter    *string          `json:"cost_center,omitempty"`
	Purpose       *string          `json:"purpose,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Attachments   *[]AttachmentRef `json:"attachments,omitempty"`
	Beneficiary   *Beneficiary     `json:"beneficiary,omitempty"`
}
