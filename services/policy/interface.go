package policy

import "corpay/models"

// EvaluationInput gathers everything the evaluator reads. Service and
// vendor records must already be resolved; unknown ids are the caller's
// problem (ErrReferenceNotFound at the service layer).
type EvaluationInput struct {
	PaymentMethod models.PaymentMethod
	Program       models.CorporateProgramState
	Service       models.ServiceDefinition
	Vendor        models.Vendor
	Amount        float64
	CostCenter    string
	Purpose       string
	Notes         string
	Attachments   int
	Beneficiary   models.Beneficiary
}

// Evaluator decides whether a booking is authorized under corporate
// policy. Implementations must be pure: identical inputs always yield
// structurally identical decisions, and it is safe to call concurrently
// on every field edit.
type Evaluator interface {
	Evaluate(in EvaluationInput) models.PolicyDecision
}

// DefaultEvaluator implements Evaluator. It holds no state.
type DefaultEvaluator struct{}
