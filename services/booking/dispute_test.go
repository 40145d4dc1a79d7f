package booking

import (
	"errors"
	"testing"
	"time"

	"corpay/models"
)

func TestAutoDisputeOnBreach(t *testing.T) {
	m := newTestManager(true)
	mustSubmit(t, m)
	if err := m.VendorConfirm(t0.Add(5 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	breached, err := m.EnforceSLA(t0.Add(25 * time.Hour))
	if err != nil || !breached {
		t.Fatalf("expected breach, got %v %v", breached, err)
	}

	b := m.Booking()
	if len(b.Disputes) != 1 {
		t.Fatalf("expected exactly one dispute, got %d", len(b.Disputes))
	}
	d := b.Disputes[0]
	if !d.Auto || d.Status != models.DisputeOpen || d.Reason != "Vendor SLA breached" {
		t.Fatalf("unexpected auto dispute: %+v", d)
	}
}

func TestAutoDisputeDeduplicates(t *testing.T) {
	m := newTestManager(true)
	mustSubmit(t, m)

	// An operator-opened dispute is already pending when the breach
	// signal arrives; automation must not stack a second one.
	if _, err := m.OpenDispute("Vendor unresponsive", "", "", t0.Add(10*time.Minute)); err != nil {
		t.Fatalf("open dispute: %v", err)
	}

	breached, err := m.EnforceSLA(t0.Add(time.Hour))
	if err != nil || !breached {
		t.Fatalf("expected breach, got %v %v", breached, err)
	}
	if got := len(m.Booking().Disputes); got != 1 {
		t.Fatalf("expected one dispute after breach, got %d", got)
	}
}

func TestAutoDisputeDisabled(t *testing.T) {
	m := newTestManager(false)
	mustSubmit(t, m)

	breached, err := m.EnforceSLA(t0.Add(time.Hour))
	if err != nil || !breached {
		t.Fatalf("expected breach, got %v %v", breached, err)
	}
	if got := len(m.Booking().Disputes); got != 0 {
		t.Fatalf("automation disabled, expected no dispute, got %d", got)
	}
}

func TestOpenDispute(t *testing.T) {
	t.Run("reason is mandatory", func(t *testing.T) {
		m := newTestManager(false)
		mustSubmit(t, m)
		_, err := m.OpenDispute("", "vendor was late", "", t0)
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("expected missing field, got %v", err)
		}
	})

	t.Run("rejected on terminal bookings", func(t *testing.T) {
		m := newTestManager(false)
		mustSubmit(t, m)
		if err := m.VendorConfirm(t0); err != nil {
			t.Fatal(err)
		}
		if err := m.CompleteDelivery(t0); err != nil {
			t.Fatal(err)
		}
		if _, err := m.OpenDispute("Service not delivered", "", "", t0); err == nil {
			t.Fatal("expected an error on a completed booking")
		}
	})

	t.Run("only one open dispute at a time", func(t *testing.T) {
		m := newTestManager(false)
		mustSubmit(t, m)
		if _, err := m.OpenDispute("Wrong itinerary", "", "", t0); err != nil {
			t.Fatalf("first dispute: %v", err)
		}
		_, err := m.OpenDispute("Wrong itinerary again", "", "", t0)
		if !errors.Is(err, ErrDisputeAlreadyOpen) {
			t.Fatalf("expected dispute already open, got %v", err)
		}
	})

	t.Run("records note and attachment", func(t *testing.T) {
		m := newTestManager(false)
		mustSubmit(t, m)
		d, err := m.OpenDispute("Wrong itinerary", "outbound leg is missing", "att-42", t0)
		if err != nil {
			t.Fatalf("open dispute: %v", err)
		}
		if d.Note != "outbound leg is missing" || d.AttachmentRef != "att-42" || d.Auto {
			t.Fatalf("unexpected dispute: %+v", d)
		}
	})
}

func TestAdvanceDispute(t *testing.T) {
	m := newTestManager(false)
	mustSubmit(t, m)
	d, err := m.OpenDispute("Wrong itinerary", "", "", t0)
	if err != nil {
		t.Fatalf("open dispute: %v", err)
	}

	t.Run("open to in review", func(t *testing.T) {
		got, err := m.AdvanceDispute(d.ID, t0.Add(time.Hour))
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if got.Status != models.DisputeInReview {
			t.Fatalf("expected in review, got %s", got.Status)
		}
	})

	t.Run("in review to resolved", func(t *testing.T) {
		got, err := m.AdvanceDispute(d.ID, t0.Add(2*time.Hour))
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if got.Status != models.DisputeResolved {
			t.Fatalf("expected resolved, got %s", got.Status)
		}
	})

	t.Run("resolved is final", func(t *testing.T) {
		if _, err := m.AdvanceDispute(d.ID, t0.Add(3*time.Hour)); err == nil {
			t.Fatal("expected an error advancing a resolved dispute")
		}
	})

	t.Run("unknown dispute id", func(t *testing.T) {
		_, err := m.AdvanceDispute("dsp-missing", t0)
		if !errors.Is(err, ErrReferenceNotFound) {
			t.Fatalf("expected reference not found, got %v", err)
		}
	})

	t.Run("a resolved dispute allows a new one", func(t *testing.T) {
		if _, err := m.OpenDispute("Second issue", "", "", t0.Add(4*time.Hour)); err != nil {
			t.Fatalf("open after resolution: %v", err)
		}
	})
}
