package booking

import (
	"testing"
	"time"

	"corpay/models"
)

func TestTimeRemaining(t *testing.T) {
	due := t0.Add(30 * time.Minute)

	if got := TimeRemaining(due, t0); got != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", got)
	}
	if got := TimeRemaining(due, due); got != 0 {
		t.Fatalf("expected 0 at the deadline, got %v", got)
	}
	if got := TimeRemaining(due, due.Add(time.Minute)); got >= 0 {
		t.Fatalf("expected negative when overdue, got %v", got)
	}
}

func TestSLAStatus(t *testing.T) {
	m := newTestManager(false)

	t.Run("unmonitored before submission", func(t *testing.T) {
		s := m.SLAStatus(t0)
		if s.Monitored || s.Breached {
			t.Fatalf("draft must not be monitored: %+v", s)
		}
	})

	mustSubmit(t, m)

	t.Run("monitored with time remaining", func(t *testing.T) {
		s := m.SLAStatus(t0.Add(10 * time.Minute))
		if !s.Monitored || s.Breached {
			t.Fatalf("expected monitored and unbreached: %+v", s)
		}
		if s.ConfirmRemaining != 20*time.Minute {
			t.Fatalf("confirm remaining %v, want 20m", s.ConfirmRemaining)
		}
	})

	t.Run("breached once a deadline lapses", func(t *testing.T) {
		s := m.SLAStatus(t0.Add(31 * time.Minute))
		if !s.Breached {
			t.Fatalf("expected breach past the confirm deadline: %+v", s)
		}
	})
}

func TestEnforceSLA_NoBreachBeforeDue(t *testing.T) {
	m := newTestManager(true)
	mustSubmit(t, m)

	breached, err := m.EnforceSLA(t0.Add(29 * time.Minute))
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if breached {
		t.Fatal("breach fired before the deadline")
	}
	if got := m.Booking().State; got != models.StatePendingConfirmation {
		t.Fatalf("state moved without a breach: %s", got)
	}
}

func TestEnforceSLA_BreachFromMonitoredStates(t *testing.T) {
	cases := []struct {
		name string
		prep func(t *testing.T, m *Manager)
		at   time.Time
	}{
		{
			name: "pending confirmation past confirm deadline",
			prep: func(t *testing.T, m *Manager) { mustSubmit(t, m) },
			at:   t0.Add(31 * time.Minute),
		},
		{
			name: "confirmed past delivery deadline",
			prep: func(t *testing.T, m *Manager) {
				mustSubmit(t, m)
				if err := m.VendorConfirm(t0.Add(5 * time.Minute)); err != nil {
					t.Fatal(err)
				}
			},
			at: t0.Add(25 * time.Hour),
		},
		{
			name: "in progress past delivery deadline",
			prep: func(t *testing.T, m *Manager) {
				mustSubmit(t, m)
				if err := m.VendorConfirm(t0.Add(5 * time.Minute)); err != nil {
					t.Fatal(err)
				}
				if err := m.StartDelivery(t0.Add(time.Hour)); err != nil {
					t.Fatal(err)
				}
			},
			at: t0.Add(25 * time.Hour),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestManager(false)
			tc.prep(t, m)

			breached, err := m.EnforceSLA(tc.at)
			if err != nil {
				t.Fatalf("enforce: %v", err)
			}
			if !breached {
				t.Fatal("expected a breach transition")
			}
			if got := m.Booking().State; got != models.StateSLABreached {
				t.Fatalf("expected sla breached, got %s", got)
			}
		})
	}
}

func TestEnforceSLA_UnreachableOutsideMonitoredStates(t *testing.T) {
	t.Run("draft", func(t *testing.T) {
		m := newTestManager(true)
		breached, err := m.EnforceSLA(t0.Add(100 * time.Hour))
		if err != nil || breached {
			t.Fatalf("draft must never breach: %v %v", breached, err)
		}
	})

	t.Run("completed", func(t *testing.T) {
		m := newTestManager(true)
		mustSubmit(t, m)
		if err := m.VendorConfirm(t0); err != nil {
			t.Fatal(err)
		}
		if err := m.CompleteDelivery(t0.Add(time.Hour)); err != nil {
			t.Fatal(err)
		}

		breached, err := m.EnforceSLA(t0.Add(100 * time.Hour))
		if err != nil || breached {
			t.Fatalf("completed must never breach: %v %v", breached, err)
		}
		if got := m.Booking().State; got != models.StateCompleted {
			t.Fatalf("state moved: %s", got)
		}
	})

	t.Run("already breached", func(t *testing.T) {
		m := newTestManager(true)
		mustSubmit(t, m)
		if _, err := m.EnforceSLA(t0.Add(time.Hour)); err != nil {
			t.Fatal(err)
		}

		breached, err := m.EnforceSLA(t0.Add(2 * time.Hour))
		if err != nil || breached {
			t.Fatalf("second enforcement must be a no-op: %v %v", breached, err)
		}
	})
}
