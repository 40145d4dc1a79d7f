package booking

import (
	"fmt"
	"sync"
	"time"

	"corpay/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor labels for timeline events.
const (
	ActorOperator = "operator"
	ActorVendor   = "vendor"
	ActorSystem   = "system"
)

// Manager owns one booking aggregate and enforces the lifecycle state
// table atomically. All mutations go through transition methods; a
// failed transition leaves both state and timeline untouched.
//
// Callers supply `now` on every operation. The manager never reads
// the clock, so SLA behavior stays deterministic under test.
type Manager struct {
	mu      sync.Mutex
	booking *models.Booking
	service models.ServiceDefinition
	vendor  models.Vendor
	receipt *models.Receipt

	autoDispute bool
	logger      *zap.Logger
}

// NewManager wraps an existing booking with its resolved catalog data.
func NewManager(b *models.Booking, svc models.ServiceDefinition, vendor models.Vendor, autoDispute bool, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		booking:     b,
		service:     svc,
		vendor:      vendor,
		autoDispute: autoDispute,
		logger:      logger,
	}
}

// Booking returns a snapshot copy of the aggregate.
func (m *Manager) Booking() models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.booking
}

// Receipt returns the receipt emitted on entry to Pending confirmation,
// or nil if the booking never got there.
func (m *Manager) Receipt() *models.Receipt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.receipt
}

// SetPaymentRef records the settlement processor's charge reference.
func (m *Manager) SetPaymentRef(ref string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.booking.PaymentRef = ref
}

// ApplyUpdate edits booking fields in place. Only Draft bookings are
// editable; a revised booking picks up its edits here before
// resubmission.
func (m *Manager) ApplyUpdate(update models.CheckoutUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StateDraft {
		return fmt.Errorf("%w: %s booking is not editable", ErrInvalidTransition, m.booking.State)
	}
	applyUpdate(m.booking, update)
	return nil
}

// SubmitForApproval moves Draft to Pending approval. The current
// policy decision must require approval.
func (m *Manager) SubmitForApproval(decision models.PolicyDecision, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StateDraft {
		return invalidTransition(m.booking.State, models.StatePendingApproval)
	}
	if decision.Outcome != models.OutcomeApprovalRequired {
		return invalidTransition(m.booking.State, models.StatePendingApproval)
	}
	m.advance(models.StatePendingApproval, now, ActorOperator, "Submitted for approval", "")
	return nil
}

// Submit moves Draft straight to Pending confirmation when policy
// allows. SLA due dates are fixed here and the receipt is emitted.
func (m *Manager) Submit(decision models.PolicyDecision, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StateDraft {
		return invalidTransition(m.booking.State, models.StatePendingConfirmation)
	}
	if decision.Outcome != models.OutcomeAllowed {
		return invalidTransition(m.booking.State, models.StatePendingConfirmation)
	}
	m.enterPendingConfirmation(now, ActorOperator, "Submitted to vendor")
	return nil
}

// Approve moves Pending approval to Pending confirmation after an
// approver signs off. Due dates and receipt are fixed on entry.
func (m *Manager) Approve(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StatePendingApproval {
		return invalidTransition(m.booking.State, models.StatePendingConfirmation)
	}
	m.enterPendingConfirmation(now, ActorOperator, "Approved and submitted to vendor")
	return nil
}

// RequestChanges sends a Pending approval booking back for edits.
func (m *Manager) RequestChanges(detail string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StatePendingApproval {
		return invalidTransition(m.booking.State, models.StateNeedsChanges)
	}
	m.advance(models.StateNeedsChanges, now, ActorOperator, "Changes requested", detail)
	return nil
}

// Revise returns a Needs changes booking to Draft for editing.
func (m *Manager) Revise(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StateNeedsChanges {
		return invalidTransition(m.booking.State, models.StateDraft)
	}
	m.advance(models.StateDraft, now, ActorOperator, "Returned to draft for revision", "")
	return nil
}

// VendorConfirm records the vendor's confirmation signal.
func (m *Manager) VendorConfirm(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StatePendingConfirmation {
		return invalidTransition(m.booking.State, models.StateConfirmed)
	}
	m.advance(models.StateConfirmed, now, ActorVendor, "Vendor confirmed the booking", "")
	return nil
}

// StartDelivery records the vendor's delivery-start signal.
func (m *Manager) StartDelivery(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StateConfirmed {
		return invalidTransition(m.booking.State, models.StateInProgress)
	}
	m.advance(models.StateInProgress, now, ActorVendor, "Service delivery started", "")
	return nil
}

// CompleteDelivery records the delivery-completion signal.
func (m *Manager) CompleteDelivery(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StateConfirmed && m.booking.State != models.StateInProgress {
		return invalidTransition(m.booking.State, models.StateCompleted)
	}
	m.advance(models.StateCompleted, now, ActorVendor, "Service delivered", "")
	return nil
}

// cancellable lists the states an operator may cancel from.
var cancellable = map[models.BookingState]bool{
	models.StateDraft:               true,
	models.StatePendingApproval:     true,
	models.StatePendingConfirmation: true,
	models.StateConfirmed:           true,
	models.StateInProgress:          true,
}

// Cancel moves the booking to Cancelled and immediately auto-advances
// to Refund processing. The eventual Refund processing -> Refunded
// transition waits for settlement confirmation (ConfirmRefund).
func (m *Manager) Cancel(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !cancellable[m.booking.State] {
		return invalidTransition(m.booking.State, models.StateCancelled)
	}
	m.advance(models.StateCancelled, now, ActorOperator, "Booking cancelled", "")
	m.advance(models.StateRefundProcessing, now, ActorSystem, "Refund processing started", "")
	return nil
}

// ConfirmRefund applies the settlement confirmation.
func (m *Manager) ConfirmRefund(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StateRefundProcessing {
		return invalidTransition(m.booking.State, models.StateRefunded)
	}
	m.advance(models.StateRefunded, now, ActorSystem, "Refund settled", "")
	return nil
}

// RefundFailed reports a failed or still-pending settlement attempt.
// The booking stays in Refund processing; callers retry later.
func (m *Manager) RefundFailed(cause error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking.State != models.StateRefundProcessing {
		return invalidTransition(m.booking.State, models.StateRefunded)
	}
	m.logger.Warn("refund settlement not confirmed",
		zap.String("booking_id", m.booking.ID),
		zap.Error(cause),
	)
	return ErrRefundPending
}

// enterPendingConfirmation fixes SLA due dates exactly once and emits
// the receipt snapshot. Callers hold the lock.
func (m *Manager) enterPendingConfirmation(now time.Time, actor, title string) {
	m.booking.ConfirmDueAt = now.Add(time.Duration(m.vendor.ConfirmSLAMinutes) * time.Minute)
	m.booking.DeliveryDueAt = now.Add(time.Duration(m.vendor.DeliverySLAHours) * time.Hour)
	m.advance(models.StatePendingConfirmation, now, actor, title, "")

	if m.receipt == nil && m.booking.ReceiptID == "" {
		r := buildReceipt(m.booking, m.service, m.vendor, now)
		m.receipt = &r
		m.booking.ReceiptID = r.ReceiptID
	}
}

// advance performs the state change and appends the timeline event.
// Callers hold the lock and have already validated the transition.
func (m *Manager) advance(to models.BookingState, now time.Time, actor, title, detail string) {
	from := m.booking.State
	m.booking.State = to
	m.booking.Timeline = append(m.booking.Timeline, models.TimelineEvent{
		ID:        uuid.New().String(),
		Timestamp: now,
		Title:     title,
		Detail:    detail,
		Actor:     actor,
	})
	m.logger.Info("booking transition",
		zap.String("booking_id", m.booking.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
}
