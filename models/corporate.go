package models

import "time"

// PaymentMethod identifies how a booking is funded.
type PaymentMethod string

const (
	CorporatePay   PaymentMethod = "corporate_pay"
	PersonalWallet PaymentMethod = "personal_wallet"
)

// ProgramStatus is the organization's corporate payment program status,
// supplied by the corporate program provider and read-only to the engine.
type ProgramStatus string

const (
	ProgramEligible            ProgramStatus = "eligible"
	ProgramNotLinked           ProgramStatus = "not_linked"
	ProgramNotEligible         ProgramStatus = "not_eligible"
	ProgramDepositDepleted     ProgramStatus = "deposit_depleted"
	ProgramCreditLimitExceeded ProgramStatus = "credit_limit_exceeded"
	ProgramBillingDelinquent   ProgramStatus = "billing_delinquent"
)

// CorporateProgramState bundles the program status with its grace window.
// A delinquent program may keep spending until the grace window expires.
type CorporateProgramState struct {
	Status         ProgramStatus `bson:"status" json:"status"`
	GraceActive    bool          `bson:"grace_active" json:"grace_active"`
	GraceExpiresAt time.Time     `bson:"grace_expires_at,omitempty" json:"grace_expires_at,omitempty"`
}

// BeneficiaryType says who the booking is for.
type BeneficiaryType string

const (
	BeneficiarySelf     BeneficiaryType = "self"
	BeneficiaryEmployee BeneficiaryType = "employee"
	BeneficiaryVisitor  BeneficiaryType = "visitor"
)

// Beneficiary is owned by the booking session.
type Beneficiary struct {
	Type              BeneficiaryType `bson:"type" json:"type"`
	Name              string          `bson:"name,omitempty" json:"name,omitempty"`
	DefaultCostCenter string          `bson:"default_cost_center,omitempty" json:"default_cost_center,omitempty"`
}
