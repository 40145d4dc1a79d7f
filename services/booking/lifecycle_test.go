package booking

import (
	"errors"
	"testing"
	"time"

	"corpay/models"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testService() models.ServiceDefinition {
	return models.ServiceDefinition{
		ID:                "svc-flight",
		Module:            "travel",
		Category:          "travel",
		Name:              "Business flight",
		VendorID:          "ven-translink",
		ApprovalThreshold: 200000,
	}
}

func testVendor() models.Vendor {
	return models.Vendor{
		ID:                "ven-translink",
		Name:              "TransLink Mobility",
		Status:            models.VendorPreferred,
		ConfirmSLAMinutes: 30,
		DeliverySLAHours:  24,
	}
}

func testBooking() *models.Booking {
	return &models.Booking{
		ID:            "bk-001",
		State:         models.StateDraft,
		ServiceID:     "svc-flight",
		VendorID:      "ven-translink",
		Amount:        180000,
		Currency:      "usd",
		PaymentMethod: models.CorporatePay,
		CostCenter:    "CC-4100",
		Purpose:       "client visit",
		Attachments:   []models.AttachmentRef{{Name: "itinerary.pdf", Size: 2048, Type: "application/pdf"}},
		Beneficiary:   models.Beneficiary{Type: models.BeneficiarySelf, Name: "Dana"},
		CreatedAt:     t0,
	}
}

func newTestManager(autoDispute bool) *Manager {
	return NewManager(testBooking(), testService(), testVendor(), autoDispute, nil)
}

func allowed() models.PolicyDecision {
	return models.PolicyDecision{Outcome: models.OutcomeAllowed}
}

func needsApproval() models.PolicyDecision {
	return models.PolicyDecision{Outcome: models.OutcomeApprovalRequired}
}

func blocked() models.PolicyDecision {
	return models.PolicyDecision{Outcome: models.OutcomeBlocked}
}

// mustSubmit puts a fresh manager into Pending confirmation at t0.
func mustSubmit(t *testing.T, m *Manager) {
	t.Helper()
	if err := m.Submit(allowed(), t0); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestSubmit_FixesDueDatesAndIssuesReceipt(t *testing.T) {
	m := newTestManager(false)
	mustSubmit(t, m)

	b := m.Booking()
	if b.State != models.StatePendingConfirmation {
		t.Fatalf("expected pending confirmation, got %s", b.State)
	}
	if want := t0.Add(30 * time.Minute); !b.ConfirmDueAt.Equal(want) {
		t.Fatalf("confirm due at %v, want %v", b.ConfirmDueAt, want)
	}
	if want := t0.Add(24 * time.Hour); !b.DeliveryDueAt.Equal(want) {
		t.Fatalf("delivery due at %v, want %v", b.DeliveryDueAt, want)
	}
	if m.Receipt() == nil {
		t.Fatal("expected a receipt on entry to pending confirmation")
	}
	if b.ReceiptID != m.Receipt().ReceiptID {
		t.Fatalf("booking receipt id %q does not match receipt %q", b.ReceiptID, m.Receipt().ReceiptID)
	}
	if len(b.Timeline) != 1 {
		t.Fatalf("expected 1 timeline event, got %d", len(b.Timeline))
	}
}

func TestSubmit_RequiresAllowedDecision(t *testing.T) {
	for name, decision := range map[string]models.PolicyDecision{
		"blocked":           blocked(),
		"approval required": needsApproval(),
	} {
		t.Run(name, func(t *testing.T) {
			m := newTestManager(false)
			err := m.Submit(decision, t0)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected invalid transition, got %v", err)
			}
			b := m.Booking()
			if b.State != models.StateDraft || len(b.Timeline) != 0 {
				t.Fatalf("failed submit must not mutate: state=%s timeline=%d", b.State, len(b.Timeline))
			}
		})
	}
}

func TestApprovalFlow(t *testing.T) {
	m := newTestManager(false)

	if err := m.SubmitForApproval(needsApproval(), t0); err != nil {
		t.Fatalf("submit for approval: %v", err)
	}
	if m.Receipt() != nil {
		t.Fatal("no receipt should exist before approval")
	}

	at := t0.Add(2 * time.Hour)
	if err := m.Approve(at); err != nil {
		t.Fatalf("approve: %v", err)
	}

	b := m.Booking()
	if b.State != models.StatePendingConfirmation {
		t.Fatalf("expected pending confirmation, got %s", b.State)
	}
	// Due dates anchor to the approval instant, not submission.
	if want := at.Add(30 * time.Minute); !b.ConfirmDueAt.Equal(want) {
		t.Fatalf("confirm due at %v, want %v", b.ConfirmDueAt, want)
	}
	if m.Receipt() == nil {
		t.Fatal("expected a receipt after approval")
	}
}

func TestRequestChangesAndRevise(t *testing.T) {
	m := newTestManager(false)
	if err := m.SubmitForApproval(needsApproval(), t0); err != nil {
		t.Fatalf("submit for approval: %v", err)
	}
	if err := m.RequestChanges("split the cost center", t0.Add(time.Hour)); err != nil {
		t.Fatalf("request changes: %v", err)
	}
	if got := m.Booking().State; got != models.StateNeedsChanges {
		t.Fatalf("expected needs changes, got %s", got)
	}
	if err := m.Revise(t0.Add(2 * time.Hour)); err != nil {
		t.Fatalf("revise: %v", err)
	}
	if got := m.Booking().State; got != models.StateDraft {
		t.Fatalf("expected draft, got %s", got)
	}
}

func TestHappyPathTimeline(t *testing.T) {
	m := newTestManager(false)
	mustSubmit(t, m)

	steps := []struct {
		name string
		fn   func(time.Time) error
		want models.BookingState
	}{
		{"vendor confirm", m.VendorConfirm, models.StateConfirmed},
		{"start delivery", m.StartDelivery, models.StateInProgress},
		{"complete delivery", m.CompleteDelivery, models.StateCompleted},
	}
	now := t0
	for _, step := range steps {
		now = now.Add(10 * time.Minute)
		if err := step.fn(now); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if got := m.Booking().State; got != step.want {
			t.Fatalf("%s: expected %s, got %s", step.name, step.want, got)
		}
	}

	b := m.Booking()
	if len(b.Timeline) != 4 {
		t.Fatalf("expected 4 timeline events, got %d", len(b.Timeline))
	}
	for i := 1; i < len(b.Timeline); i++ {
		if b.Timeline[i].Timestamp.Before(b.Timeline[i-1].Timestamp) {
			t.Fatalf("timeline out of order at %d", i)
		}
	}
}

func TestCompleteDirectlyFromConfirmed(t *testing.T) {
	m := newTestManager(false)
	mustSubmit(t, m)
	if err := m.VendorConfirm(t0.Add(time.Minute)); err != nil {
		t.Fatalf("vendor confirm: %v", err)
	}
	if err := m.CompleteDelivery(t0.Add(time.Hour)); err != nil {
		t.Fatalf("complete delivery: %v", err)
	}
	if got := m.Booking().State; got != models.StateCompleted {
		t.Fatalf("expected completed, got %s", got)
	}
}

func TestInvalidTransitionsLeaveStateUntouched(t *testing.T) {
	cases := []struct {
		name string
		prep func(t *testing.T, m *Manager)
		op   func(m *Manager) error
	}{
		{
			name: "vendor confirm from draft",
			prep: func(t *testing.T, m *Manager) {},
			op:   func(m *Manager) error { return m.VendorConfirm(t0) },
		},
		{
			name: "complete from draft",
			prep: func(t *testing.T, m *Manager) {},
			op:   func(m *Manager) error { return m.CompleteDelivery(t0) },
		},
		{
			name: "approve without submission",
			prep: func(t *testing.T, m *Manager) {},
			op:   func(m *Manager) error { return m.Approve(t0) },
		},
		{
			name: "start before confirmation",
			prep: func(t *testing.T, m *Manager) { mustSubmit(t, m) },
			op:   func(m *Manager) error { return m.StartDelivery(t0) },
		},
		{
			name: "double submit",
			prep: func(t *testing.T, m *Manager) { mustSubmit(t, m) },
			op:   func(m *Manager) error { return m.Submit(allowed(), t0) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestManager(false)
			tc.prep(t, m)
			before := m.Booking()

			err := tc.op(m)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected invalid transition, got %v", err)
			}
			after := m.Booking()
			if after.State != before.State {
				t.Fatalf("state changed on failed transition: %s -> %s", before.State, after.State)
			}
			if len(after.Timeline) != len(before.Timeline) {
				t.Fatalf("timeline grew on failed transition: %d -> %d", len(before.Timeline), len(after.Timeline))
			}
		})
	}
}

func TestCancelRoutesThroughRefundProcessing(t *testing.T) {
	m := newTestManager(false)
	mustSubmit(t, m)
	if err := m.VendorConfirm(t0.Add(time.Minute)); err != nil {
		t.Fatalf("vendor confirm: %v", err)
	}

	if err := m.Cancel(t0.Add(2 * time.Minute)); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	b := m.Booking()
	if b.State != models.StateRefundProcessing {
		t.Fatalf("expected refund processing, got %s", b.State)
	}
	// Cancelled and Refund processing are both recorded.
	last, prev := b.Timeline[len(b.Timeline)-1], b.Timeline[len(b.Timeline)-2]
	if prev.Title != "Booking cancelled" || last.Title != "Refund processing started" {
		t.Fatalf("unexpected cancel trail: %q then %q", prev.Title, last.Title)
	}

	if err := m.ConfirmRefund(t0.Add(time.Hour)); err != nil {
		t.Fatalf("confirm refund: %v", err)
	}
	if got := m.Booking().State; got != models.StateRefunded {
		t.Fatalf("expected refunded, got %s", got)
	}
}

func TestCancelAfterCompletionRejected(t *testing.T) {
	m := newTestManager(false)
	mustSubmit(t, m)
	if err := m.VendorConfirm(t0); err != nil {
		t.Fatal(err)
	}
	if err := m.CompleteDelivery(t0.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	err := m.Cancel(t0.Add(2 * time.Hour))
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if got := m.Booking().State; got != models.StateCompleted {
		t.Fatalf("expected completed, got %s", got)
	}
}

func TestRefundFailureStaysInProcessing(t *testing.T) {
	m := newTestManager(false)
	mustSubmit(t, m)
	if err := m.Cancel(t0.Add(time.Minute)); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	err := m.RefundFailed(errors.New("processor timeout"))
	if !errors.Is(err, ErrRefundPending) {
		t.Fatalf("expected refund pending, got %v", err)
	}
	if got := m.Booking().State; got != models.StateRefundProcessing {
		t.Fatalf("expected refund processing, got %s", got)
	}

	// A later settlement confirmation still lands.
	if err := m.ConfirmRefund(t0.Add(time.Hour)); err != nil {
		t.Fatalf("confirm refund after retry: %v", err)
	}
	if got := m.Booking().State; got != models.StateRefunded {
		t.Fatalf("expected refunded, got %s", got)
	}
}

func TestTerminalStatesHaveNoOutgoingTransitions(t *testing.T) {
	complete := func(t *testing.T) *Manager {
		m := newTestManager(false)
		mustSubmit(t, m)
		if err := m.VendorConfirm(t0); err != nil {
			t.Fatal(err)
		}
		if err := m.CompleteDelivery(t0); err != nil {
			t.Fatal(err)
		}
		return m
	}
	refund := func(t *testing.T) *Manager {
		m := newTestManager(false)
		mustSubmit(t, m)
		if err := m.Cancel(t0); err != nil {
			t.Fatal(err)
		}
		if err := m.ConfirmRefund(t0); err != nil {
			t.Fatal(err)
		}
		return m
	}

	for name, build := range map[string]func(*testing.T) *Manager{
		"completed": complete,
		"refunded":  refund,
	} {
		t.Run(name, func(t *testing.T) {
			m := build(t)
			state := m.Booking().State
			if !state.Terminal() {
				t.Fatalf("setup: %s is not terminal", state)
			}

			ops := []func() error{
				func() error { return m.Submit(allowed(), t0) },
				func() error { return m.Approve(t0) },
				func() error { return m.VendorConfirm(t0) },
				func() error { return m.StartDelivery(t0) },
				func() error { return m.CompleteDelivery(t0) },
				func() error { return m.Cancel(t0) },
				func() error { return m.ConfirmRefund(t0) },
			}
			for i, op := range ops {
				if err := op(); !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("op %d: expected invalid transition, got %v", i, err)
				}
			}
			if got := m.Booking().State; got != state {
				t.Fatalf("terminal state moved: %s -> %s", state, got)
			}
		})
	}
}
