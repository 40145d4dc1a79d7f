package booking

import (
	"fmt"
	"time"

	"corpay/models"

	"github.com/google/uuid"
)

// OpenDispute creates a manual dispute. Allowed while the booking is
// non-terminal; the reason is mandatory and only one dispute may be
// open at a time.
func (m *Manager) OpenDispute(reason, note, attachmentRef string, now time.Time) (models.Dispute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if reason == "" {
		return models.Dispute{}, fmt.Errorf("%w: dispute reason", ErrMissingField)
	}
	if m.booking.State.Terminal() {
		return models.Dispute{}, fmt.Errorf("cannot open a dispute on a %s booking", m.booking.State)
	}
	if m.booking.OpenDispute() != nil {
		return models.Dispute{}, ErrDisputeAlreadyOpen
	}
	return m.openDispute(reason, note, attachmentRef, false, now), nil
}

// openDispute appends the dispute and its timeline event. Callers hold
// the lock. The auto path is idempotent: a breach signal while a
// dispute is already open creates nothing.
func (m *Manager) openDispute(reason, note, attachmentRef string, auto bool, now time.Time) models.Dispute {
	if auto {
		if existing := m.booking.OpenDispute(); existing != nil {
			return *existing
		}
	}
	d := models.Dispute{
		ID:            uuid.New().String(),
		BookingID:     m.booking.ID,
		CreatedAt:     now,
		Reason:        reason,
		Note:          note,
		AttachmentRef: attachmentRef,
		Status:        models.DisputeOpen,
		Auto:          auto,
	}
	m.booking.Disputes = append(m.booking.Disputes, d)
	m.booking.Timeline = append(m.booking.Timeline, models.TimelineEvent{
		ID:        uuid.New().String(),
		Timestamp: now,
		Title:     "Dispute opened",
		Detail:    reason,
		Actor:     disputeActor(auto),
	})
	return d
}

// AdvanceDispute moves a dispute one step: Open -> In review -> Resolved.
// Operator-driven only.
func (m *Manager) AdvanceDispute(disputeID string, now time.Time) (models.Dispute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.booking.Disputes {
		d := &m.booking.Disputes[i]
		if d.ID != disputeID {
			continue
		}
		switch d.Status {
		case models.DisputeOpen:
			d.Status = models.DisputeInReview
		case models.DisputeInReview:
			d.Status = models.DisputeResolved
		default:
			return models.Dispute{}, fmt.Errorf("dispute %s is already resolved", disputeID)
		}
		m.booking.Timeline = append(m.booking.Timeline, models.TimelineEvent{
			ID:        uuid.New().String(),
			Timestamp: now,
			Title:     "Dispute " + string(d.Status),
			Actor:     ActorOperator,
		})
		return *d, nil
	}
	return models.Dispute{}, fmt.Errorf("%w: dispute %s", ErrReferenceNotFound, disputeID)
}

func disputeActor(auto bool) string {
	if auto {
		return ActorSystem
	}
	return ActorOperator
}
