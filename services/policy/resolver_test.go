package policy

import (
	"testing"

	"corpay/models"
)

func TestResolveCorporateState(t *testing.T) {
	e := &DefaultEvaluator{}

	t.Run("personal payment is always available", func(t *testing.T) {
		in := baseInput()
		in.PaymentMethod = models.PersonalWallet
		in.Program.Status = models.ProgramNotLinked
		d := e.Evaluate(in)

		got := ResolveCorporateState(in.PaymentMethod, in.Program, d)
		if got != models.CorporateAvailable {
			t.Fatalf("expected available, got %s", got)
		}
	})

	t.Run("gated program is not available", func(t *testing.T) {
		in := baseInput()
		in.Program.Status = models.ProgramDepositDepleted
		d := e.Evaluate(in)

		got := ResolveCorporateState(in.PaymentMethod, in.Program, d)
		if got != models.CorporateNotAvailable {
			t.Fatalf("expected not available, got %s", got)
		}
	})

	t.Run("approval outcome maps to requires approval", func(t *testing.T) {
		in := baseInput()
		in.Amount = in.Service.ApprovalThreshold + 1
		d := e.Evaluate(in)

		got := ResolveCorporateState(in.PaymentMethod, in.Program, d)
		if got != models.CorporateRequiresApproval {
			t.Fatalf("expected requires approval, got %s", got)
		}
	})

	t.Run("clean booking is available", func(t *testing.T) {
		in := baseInput()
		d := e.Evaluate(in)

		got := ResolveCorporateState(in.PaymentMethod, in.Program, d)
		if got != models.CorporateAvailable {
			t.Fatalf("expected available, got %s", got)
		}
	})
}

// The display state may never contradict the evaluator: a blocked
// decision must not surface as available, whatever the program says.
func TestResolveCorporateState_NeverAvailableWhenBlocked(t *testing.T) {
	e := &DefaultEvaluator{}
	statuses := []models.ProgramStatus{
		models.ProgramEligible,
		models.ProgramNotLinked,
		models.ProgramNotEligible,
		models.ProgramDepositDepleted,
		models.ProgramCreditLimitExceeded,
		models.ProgramBillingDelinquent,
	}

	for _, status := range statuses {
		in := baseInput()
		in.Program.Status = status
		in.CostCenter = "" // forces a field block for eligible programs
		d := e.Evaluate(in)
		if d.Outcome != models.OutcomeBlocked {
			t.Fatalf("setup: expected Blocked for %s, got %s", status, d.Outcome)
		}

		if got := ResolveCorporateState(in.PaymentMethod, in.Program, d); got == models.CorporateAvailable {
			t.Fatalf("status %s: corporate state available while decision is blocked", status)
		}
	}
}
