package policy

import (
	"fmt"

	"corpay/models"
)

const minNotesLength = 10

// payPersonally is attached whenever corporate policy warns or blocks.
var payPersonally = models.Alternative{
	Title:           "Pay personally",
	ExpectedOutcome: "Personal payment bypasses corporate policy",
}

// Evaluate produces a PolicyDecision for the given inputs.
//
// Program gating is checked first and short-circuits: a blocked program
// yields exactly one Critical PROGRAM reason regardless of other
// fields. Field-level reasons are collected independently after that,
// then aggregated: any Critical blocks, any Warning requires approval,
// otherwise the booking is allowed.
func (e *DefaultEvaluator) Evaluate(in EvaluationInput) models.PolicyDecision {
	if in.PaymentMethod != models.CorporatePay {
		return models.PolicyDecision{
			Outcome: models.OutcomeAllowed,
			Reasons: []models.Reason{{
				Code:     models.ReasonOK,
				Title:    "Personal payment",
				Detail:   "personal payment bypasses corporate policy",
				Severity: models.SeverityInfo,
			}},
			CoachTips: coachTips(in),
		}
	}

	if reason, blocked := programGate(in.Program); blocked {
		return models.PolicyDecision{
			Outcome:      models.OutcomeBlocked,
			Reasons:      []models.Reason{reason},
			Alternatives: []models.Alternative{payPersonally},
			CoachTips:    coachTips(in),
		}
	}

	reasons := collectReasons(in)

	decision := models.PolicyDecision{
		Outcome:   aggregate(reasons),
		Reasons:   reasons,
		CoachTips: coachTips(in),
	}
	if decision.Outcome != models.OutcomeAllowed {
		decision.Alternatives = alternatives(reasons)
	}
	if len(decision.Reasons) == 0 {
		decision.Reasons = []models.Reason{{
			Code:     models.ReasonOK,
			Title:    "Within policy",
			Severity: models.SeverityInfo,
		}}
	}
	return decision
}

// programGate returns the blocking reason when the corporate program
// itself forbids CorporatePay. Billing delinquency blocks only once the
// grace window has lapsed.
func programGate(p models.CorporateProgramState) (models.Reason, bool) {
	var detail string
	switch p.Status {
	case models.ProgramNotLinked:
		detail = "no corporate program is linked to this account"
	case models.ProgramNotEligible:
		detail = "this account is not eligible for corporate payment"
	case models.ProgramDepositDepleted:
		detail = "the corporate deposit is depleted"
	case models.ProgramCreditLimitExceeded:
		detail = "the corporate credit limit is exceeded"
	case models.ProgramBillingDelinquent:
		if p.GraceActive {
			return models.Reason{}, false
		}
		detail = "corporate billing is delinquent and the grace window has expired"
	default:
		return models.Reason{}, false
	}
	return models.Reason{
		Code:     models.ReasonProgram,
		Title:    "Corporate program unavailable",
		Detail:   detail,
		Severity: models.SeverityCritical,
	}, true
}

// collectReasons gathers independent field-level findings. Order is
// fixed so identical inputs yield identical decisions.
func collectReasons(in EvaluationInput) []models.Reason {
	var reasons []models.Reason

	if in.Vendor.Status == models.VendorRestricted {
		reasons = append(reasons, models.Reason{
			Code:     models.ReasonVendor,
			Title:    "Restricted vendor",
			Detail:   fmt.Sprintf("%s is restricted for corporate bookings", in.Vendor.Name),
			Severity: models.SeverityWarning,
		})
	}
	if in.CostCenter == "" {
		reasons = append(reasons, models.Reason{
			Code:     models.ReasonFields,
			Title:    "Cost center missing",
			Detail:   "a cost center is required for billing allocation",
			Severity: models.SeverityCritical,
		})
	}
	if in.Service.PurposeRequired && in.Purpose == "" {
		reasons = append(reasons, models.Reason{
			Code:     models.ReasonFields,
			Title:    "Purpose missing",
			Detail:   "this service requires a purpose tag for audit",
			Severity: models.SeverityCritical,
		})
	}
	if in.Service.NotesRequired && len(in.Notes) < minNotesLength {
		reasons = append(reasons, models.Reason{
			Code:     models.ReasonFields,
			Title:    "Notes too short",
			Detail:   fmt.Sprintf("this service requires notes of at least %d characters", minNotesLength),
			Severity: models.SeverityCritical,
		})
	}
	if len(in.Service.RequiredAttachments) > 0 && in.Attachments == 0 {
		reasons = append(reasons, models.Reason{
			Code:     models.ReasonAttachment,
			Title:    "Attachments missing",
			Detail:   "required supporting documents have not been attached",
			Severity: models.SeverityCritical,
		})
	}
	if in.Amount > in.Service.ApprovalThreshold {
		reasons = append(reasons, models.Reason{
			Code:     models.ReasonAmount,
			Title:    "Approval required above threshold",
			Detail:   fmt.Sprintf("amount %.2f exceeds the approval threshold of %.2f", in.Amount, in.Service.ApprovalThreshold),
			Severity: models.SeverityWarning,
		})
	}
	return reasons
}

func aggregate(reasons []models.Reason) models.DecisionOutcome {
	outcome := models.OutcomeAllowed
	for _, r := range reasons {
		switch r.Severity {
		case models.SeverityCritical:
			return models.OutcomeBlocked
		case models.SeverityWarning:
			outcome = models.OutcomeApprovalRequired
		}
	}
	return outcome
}

// alternatives always offers personal payment, plus targeted fixes when
// a specific missing field is the blocking cause.
func alternatives(reasons []models.Reason) []models.Alternative {
	alts := []models.Alternative{payPersonally}
	for _, r := range reasons {
		switch r.Title {
		case "Purpose missing":
			alts = append(alts, models.Alternative{
				Title:           "Add a purpose tag",
				ExpectedOutcome: "Clears the missing-purpose block on re-evaluation",
			})
		case "Cost center missing":
			alts = append(alts, models.Alternative{
				Title:           "Select a cost center",
				ExpectedOutcome: "Clears the missing-cost-center block on re-evaluation",
			})
		}
	}
	return alts
}

// coachTips are advisory only and never change the outcome.
func coachTips(in EvaluationInput) []models.CoachTip {
	var tips []models.CoachTip
	switch in.Service.Category {
	case "travel", "medical":
		if in.Attachments == 0 {
			tips = append(tips, models.CoachTip{
				Message: "Travel and medical bookings clear review faster with supporting documents attached.",
			})
		}
	}
	if in.Beneficiary.Type != models.BeneficiarySelf && in.Beneficiary.Type != "" {
		tips = append(tips, models.CoachTip{
			Message: "Bookings made for others are always audited.",
		})
	}
	return tips
}
