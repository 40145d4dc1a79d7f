package policy

import "corpay/models"

// ResolveCorporateState projects a decision onto the simplified display
// state. It is a pure view over the evaluator's outcome and must never
// report Available while the outcome is Blocked.
func ResolveCorporateState(method models.PaymentMethod, program models.CorporateProgramState, decision models.PolicyDecision) models.CorporateState {
	if method != models.CorporatePay {
		return models.CorporateAvailable
	}
	if _, blocked := programGate(program); blocked {
		return models.CorporateNotAvailable
	}
	switch decision.Outcome {
	case models.OutcomeBlocked:
		return models.CorporateNotAvailable
	case models.OutcomeApprovalRequired:
		return models.CorporateRequiresApproval
	default:
		return models.CorporateAvailable
	}
}
