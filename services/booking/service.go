package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "corpay/database/repository/bookings"
	catalogRepo "corpay/database/repository/catalog"
	disputeRepo "corpay/database/repository/disputes"
	receiptRepo "corpay/database/repository/receipts"
	"corpay/models"
	"corpay/services/policy"
	"corpay/services/settlement"

	"go.uber.org/zap"
)

// RefundScheduler queues an asynchronous settlement attempt for a
// booking that entered Refund processing.
type RefundScheduler interface {
	ScheduleRefund(ctx context.Context, bookingID string) error
}

// Service exposes operator and signal-driven operations on persisted
// bookings. Every mutation goes through the lifecycle manager, so the
// state table is enforced no matter which surface calls in.
type Service interface {
	Get(ctx context.Context, id string) (*models.Booking, error)
	Approve(ctx context.Context, id string, now time.Time) (*models.Booking, error)
	RequestChanges(ctx context.Context, id, detail string, now time.Time) (*models.Booking, error)
	Revise(ctx context.Context, id string, now time.Time) (*models.Booking, error)
	Resubmit(ctx context.Context, id string, update models.CheckoutUpdate, now time.Time) (*models.Booking, error)
	VendorConfirm(ctx context.Context, id string, now time.Time) (*models.Booking, error)
	StartDelivery(ctx context.Context, id string, now time.Time) (*models.Booking, error)
	CompleteDelivery(ctx context.Context, id string, now time.Time) (*models.Booking, error)
	Cancel(ctx context.Context, id string, now time.Time) (*models.Booking, error)
	SettleRefund(ctx context.Context, id string, now time.Time) error

	SLAStatus(ctx context.Context, id string, now time.Time) (*SLAStatus, error)
	EnforceSLA(ctx context.Context, id string, now time.Time) (bool, error)
	EnforceAllSLAs(ctx context.Context, now time.Time) (int, error)

	OpenDispute(ctx context.Context, id, reason, note, attachmentRef string, now time.Time) (*models.Dispute, error)
	AdvanceDispute(ctx context.Context, id, disputeID string, now time.Time) (*models.Dispute, error)
}

// DefaultBookingService implements Service.
type DefaultBookingService struct {
	Catalog     catalogRepo.CatalogRepository
	Bookings    bookingRepo.BookingRepository
	Receipts    receiptRepo.ReceiptRepository
	Disputes    disputeRepo.DisputeRepository
	Settlement  settlement.Processor
	Refunds     RefundScheduler
	Evaluator   policy.Evaluator
	Program     ProgramProvider
	AutoDispute bool
	Logger      *zap.Logger
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, fmt.Errorf("%w: booking %s", ErrReferenceNotFound, id)
	}
	return b, err
}

func (s *DefaultBookingService) Approve(ctx context.Context, id string, now time.Time) (*models.Booking, error) {
	return s.withManager(ctx, id, func(mgr *Manager) error {
		if err := mgr.Approve(now); err != nil {
			return err
		}
		if r := mgr.Receipt(); r != nil {
			if err := s.Receipts.Create(ctx, *r); err != nil {
				return fmt.Errorf("failed to persist receipt: %w", err)
			}
		}
		return nil
	})
}

func (s *DefaultBookingService) RequestChanges(ctx context.Context, id, detail string, now time.Time) (*models.Booking, error) {
	return s.withManager(ctx, id, func(mgr *Manager) error {
		return mgr.RequestChanges(detail, now)
	})
}

func (s *DefaultBookingService) Revise(ctx context.Context, id string, now time.Time) (*models.Booking, error) {
	return s.withManager(ctx, id, func(mgr *Manager) error {
		return mgr.Revise(now)
	})
}

// Resubmit drives a revised Draft booking back into the submission
// path. Field edits are applied first, then policy is re-evaluated
// against the current program state; the fresh decision picks the
// target state exactly as at first submission.
func (s *DefaultBookingService) Resubmit(ctx context.Context, id string, update models.CheckoutUpdate, now time.Time) (*models.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	svc, vendor, err := s.resolveCatalog(ctx, b)
	if err != nil {
		return nil, err
	}
	program, err := s.Program.ProgramState(ctx, b.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read corporate program state: %w", err)
	}

	mgr := NewManager(b, *svc, *vendor, s.AutoDispute, s.Logger)
	if err := mgr.ApplyUpdate(update); err != nil {
		return nil, err
	}

	decision := s.Evaluator.Evaluate(evaluationInput(mgr.Booking(), program, *svc, *vendor))
	switch decision.Outcome {
	case models.OutcomeAllowed:
		if err := mgr.Submit(decision, now); err != nil {
			return nil, err
		}
	case models.OutcomeApprovalRequired:
		if err := mgr.SubmitForApproval(decision, now); err != nil {
			return nil, err
		}
	default:
		// Keep the edits so the requester can fix the draft and retry.
		if err := s.Bookings.Update(ctx, mgr.Booking()); err != nil {
			return nil, fmt.Errorf("failed to persist booking: %w", err)
		}
		return nil, ErrPolicyBlocked
	}

	updated := mgr.Booking()
	if err := s.Bookings.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}
	if r := mgr.Receipt(); r != nil {
		if err := s.Receipts.Create(ctx, *r); err != nil {
			return nil, fmt.Errorf("failed to persist receipt: %w", err)
		}
	}
	return &updated, nil
}

// VendorConfirm applies the vendor signal and, for corporate bookings,
// settles the charge on first confirmation.
func (s *DefaultBookingService) VendorConfirm(ctx context.Context, id string, now time.Time) (*models.Booking, error) {
	return s.withManager(ctx, id, func(mgr *Manager) error {
		if err := mgr.VendorConfirm(now); err != nil {
			return err
		}
		b := mgr.Booking()
		if b.PaymentMethod == models.CorporatePay && b.PaymentRef == "" && s.Settlement != nil {
			ref, err := s.Settlement.Charge(ctx, b.ID, b.Amount, b.Currency)
			if err != nil {
				// The booking stays confirmed; settlement is retried
				// out of band.
				s.Logger.Warn("settlement charge failed", zap.String("booking_id", b.ID), zap.Error(err))
				return nil
			}
			mgr.SetPaymentRef(ref)
		}
		return nil
	})
}

func (s *DefaultBookingService) StartDelivery(ctx context.Context, id string, now time.Time) (*models.Booking, error) {
	return s.withManager(ctx, id, func(mgr *Manager) error {
		return mgr.StartDelivery(now)
	})
}

func (s *DefaultBookingService) CompleteDelivery(ctx context.Context, id string, now time.Time) (*models.Booking, error) {
	return s.withManager(ctx, id, func(mgr *Manager) error {
		return mgr.CompleteDelivery(now)
	})
}

// Cancel runs the synchronous half of cancellation (Cancelled, then
// Refund processing) and queues the asynchronous settlement attempt.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string, now time.Time) (*models.Booking, error) {
	b, err := s.withManager(ctx, id, func(mgr *Manager) error {
		return mgr.Cancel(now)
	})
	if err != nil {
		return nil, err
	}
	if s.Refunds != nil {
		if err := s.Refunds.ScheduleRefund(ctx, id); err != nil {
			s.Logger.Error("failed to schedule refund settlement", zap.String("booking_id", id), zap.Error(err))
		}
	}
	return b, nil
}

// SettleRefund is the worker entry point for Refund processing ->
// Refunded. A booking that was never charged settles immediately; a
// failed settlement leaves the booking in Refund processing and
// returns ErrRefundPending so the queue retries.
func (s *DefaultBookingService) SettleRefund(ctx context.Context, id string, now time.Time) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.State != models.StateRefundProcessing {
		return nil
	}

	svc, vendor, err := s.resolveCatalog(ctx, b)
	if err != nil {
		return err
	}
	mgr := NewManager(b, *svc, *vendor, s.AutoDispute, s.Logger)

	if b.PaymentRef != "" && s.Settlement != nil {
		if _, err := s.Settlement.Refund(ctx, b.PaymentRef, b.Amount, b.Currency); err != nil {
			return mgr.RefundFailed(err)
		}
	}
	if err := mgr.ConfirmRefund(now); err != nil {
		return err
	}
	return s.Bookings.Update(ctx, mgr.Booking())
}

func (s *DefaultBookingService) SLAStatus(ctx context.Context, id string, now time.Time) (*SLAStatus, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	svc, vendor, err := s.resolveCatalog(ctx, b)
	if err != nil {
		return nil, err
	}
	status := NewManager(b, *svc, *vendor, s.AutoDispute, s.Logger).SLAStatus(now)
	return &status, nil
}

func (s *DefaultBookingService) EnforceSLA(ctx context.Context, id string, now time.Time) (bool, error) {
	var breached bool
	_, err := s.withManager(ctx, id, func(mgr *Manager) error {
		var err error
		breached, err = mgr.EnforceSLA(now)
		return err
	})
	return breached, err
}

// EnforceAllSLAs polls every active booking. Returns how many breach
// transitions happened. Called by the background worker, which supplies
// the clock.
func (s *DefaultBookingService) EnforceAllSLAs(ctx context.Context, now time.Time) (int, error) {
	active, err := s.Bookings.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	breaches := 0
	for i := range active {
		breached, err := s.EnforceSLA(ctx, active[i].ID, now)
		if err != nil {
			s.Logger.Error("sla enforcement failed", zap.String("booking_id", active[i].ID), zap.Error(err))
			continue
		}
		if breached {
			breaches++
		}
	}
	return breaches, nil
}

func (s *DefaultBookingService) OpenDispute(ctx context.Context, id, reason, note, attachmentRef string, now time.Time) (*models.Dispute, error) {
	var dispute models.Dispute
	_, err := s.withManager(ctx, id, func(mgr *Manager) error {
		var err error
		dispute, err = mgr.OpenDispute(reason, note, attachmentRef, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dispute, nil
}

func (s *DefaultBookingService) AdvanceDispute(ctx context.Context, id, disputeID string, now time.Time) (*models.Dispute, error) {
	var dispute models.Dispute
	_, err := s.withManager(ctx, id, func(mgr *Manager) error {
		var err error
		dispute, err = mgr.AdvanceDispute(disputeID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dispute, nil
}

// withManager loads the aggregate, applies fn through a lifecycle
// manager, and persists the result. Dispute records are mirrored to
// their own collection for listing surfaces.
func (s *DefaultBookingService) withManager(ctx context.Context, id string, fn func(mgr *Manager) error) (*models.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	svc, vendor, err := s.resolveCatalog(ctx, b)
	if err != nil {
		return nil, err
	}

	mgr := NewManager(b, *svc, *vendor, s.AutoDispute, s.Logger)
	if err := fn(mgr); err != nil {
		return nil, err
	}

	updated := mgr.Booking()
	if err := s.Bookings.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}
	if s.Disputes != nil {
		for _, d := range updated.Disputes {
			if err := s.Disputes.Upsert(ctx, d); err != nil {
				s.Logger.Error("failed to mirror dispute", zap.String("dispute_id", d.ID), zap.Error(err))
			}
		}
	}
	return &updated, nil
}

func (s *DefaultBookingService) resolveCatalog(ctx context.Context, b *models.Booking) (*models.ServiceDefinition, *models.Vendor, error) {
	svc, err := s.Catalog.GetService(ctx, b.ServiceID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: service %s", ErrReferenceNotFound, b.ServiceID)
	}
	if err != nil {
		return nil, nil, err
	}
	vendor, err := s.Catalog.GetVendor(ctx, b.VendorID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: vendor %s", ErrReferenceNotFound, b.VendorID)
	}
	if err != nil {
		return nil, nil, err
	}
	return svc, vendor, nil
}
