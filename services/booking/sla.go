package booking

import (
	"time"

	"corpay/models"
)

// TimeRemaining returns the duration left until dueAt. Zero or negative
// means overdue. The caller supplies now; nothing here reads the clock.
func TimeRemaining(dueAt, now time.Time) time.Duration {
	return dueAt.Sub(now)
}

// slaMonitored lists the states in which due dates are enforced.
// Breach is unreachable from anywhere else, terminal states included.
var slaMonitored = map[models.BookingState]bool{
	models.StatePendingConfirmation: true,
	models.StateConfirmed:           true,
	models.StateInProgress:          true,
}

// SLAStatus is a point-in-time view of a booking's deadlines.
type SLAStatus struct {
	ConfirmRemaining  time.Duration `json:"confirm_remaining"`
	DeliveryRemaining time.Duration `json:"delivery_remaining"`
	Monitored         bool          `json:"monitored"`
	Breached          bool          `json:"breached"`
}

// SLAStatus computes remaining time against both deadlines at `now`.
func (m *Manager) SLAStatus(now time.Time) SLAStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := SLAStatus{Monitored: slaMonitored[m.booking.State]}
	if m.booking.ConfirmDueAt.IsZero() {
		return s
	}
	s.ConfirmRemaining = TimeRemaining(m.booking.ConfirmDueAt, now)
	s.DeliveryRemaining = TimeRemaining(m.booking.DeliveryDueAt, now)
	s.Breached = s.Monitored && (s.ConfirmRemaining <= 0 || s.DeliveryRemaining <= 0)
	return s
}

// EnforceSLA is the pull-based breach check. If the booking is in a
// monitored state and either due date has elapsed at `now`, it moves to
// SLA breached and, when automation is enabled, opens a dispute.
// It returns true when a breach transition happened on this call.
func (m *Manager) EnforceSLA(now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slaMonitored[m.booking.State] {
		return false, nil
	}
	if m.booking.ConfirmDueAt.IsZero() {
		return false, nil
	}
	if TimeRemaining(m.booking.ConfirmDueAt, now) > 0 && TimeRemaining(m.booking.DeliveryDueAt, now) > 0 {
		return false, nil
	}

	m.advance(models.StateSLABreached, now, ActorSystem, "Vendor SLA breached", "")
	if m.autoDispute {
		m.openDispute("Vendor SLA breached", "", "", true, now)
	}
	return true, nil
}
