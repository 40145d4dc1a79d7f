package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingRepo "corpay/database/repository/bookings"
	catalogRepo "corpay/database/repository/catalog"
	receiptRepo "corpay/database/repository/receipts"
	"corpay/models"
	"corpay/services/policy"
	"corpay/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InitiateCheckoutRequest starts a checkout for one catalog service.
type InitiateCheckoutRequest struct {
	ServiceID     string               `json:"service_id"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Amount        float64              `json:"amount,omitempty"` // falls back to the service base price
	Beneficiary   models.Beneficiary   `json:"beneficiary"`
	ScheduledAt   time.Time            `json:"scheduled_at,omitempty"`
	UserID        string               `json:"user_id,omitempty"`
	DeviceID      string               `json:"device_id,omitempty"`
}

// CheckoutView is what handlers return after every session operation:
// the session plus the display projection of its decision.
type CheckoutView struct {
	Session        models.CheckoutSession `json:"session"`
	CorporateState models.CorporateState  `json:"corporate_state"`
}

// SubmitResult reports the outcome of submitting a checkout session.
type SubmitResult struct {
	Booking  models.Booking        `json:"booking"`
	Receipt  *models.Receipt       `json:"receipt,omitempty"`
	Decision models.PolicyDecision `json:"decision"`
}

// CheckoutService manages the stateful checkout session: a Draft
// booking plus its continuously re-evaluated policy decision, cached
// in Redis until submitted or cancelled.
type CheckoutService interface {
	InitiateCheckout(ctx context.Context, req InitiateCheckoutRequest) (*CheckoutView, error)
	UpdateCheckout(ctx context.Context, sessionID string, update models.CheckoutUpdate) (*CheckoutView, error)
	SubmitCheckout(ctx context.Context, sessionID string, now time.Time) (*SubmitResult, error)
	CancelCheckout(ctx context.Context, sessionID string) error
	PreviewPolicy(ctx context.Context, req InitiateCheckoutRequest, fields models.CheckoutUpdate) (*models.PolicyDecision, models.CorporateState, error)
}

// DefaultCheckoutService implements CheckoutService.
type DefaultCheckoutService struct {
	Catalog     catalogRepo.CatalogRepository
	Bookings    bookingRepo.BookingRepository
	Receipts    receiptRepo.ReceiptRepository
	Evaluator   policy.Evaluator
	Program     ProgramProvider
	AutoDispute bool
	Logger      *zap.Logger
}

// InitiateCheckout resolves the service and vendor, creates a Draft
// booking, evaluates policy, and stores the session in Redis.
func (s *DefaultCheckoutService) InitiateCheckout(ctx context.Context, req InitiateCheckoutRequest) (*CheckoutView, error) {
	svc, vendor, err := s.resolveCatalog(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	program, err := s.Program.ProgramState(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read corporate program state: %w", err)
	}

	amount := req.Amount
	if amount == 0 {
		amount = svc.BasePrice
	}
	beneficiary := req.Beneficiary
	if beneficiary.Type == "" {
		beneficiary.Type = models.BeneficiarySelf
	}

	now := time.Now()
	b := models.Booking{
		ID:            uuid.New().String(),
		State:         models.StateDraft,
		ServiceID:     svc.ID,
		VendorID:      vendor.ID,
		UserID:        req.UserID,
		Amount:        amount,
		Currency:      svc.Currency,
		PaymentMethod: req.PaymentMethod,
		CostCenter:    beneficiary.DefaultCostCenter,
		Beneficiary:   beneficiary,
		ScheduledAt:   req.ScheduledAt,
		CreatedAt:     now,
		Timeline: []models.TimelineEvent{{
			ID:        uuid.New().String(),
			Timestamp: now,
			Title:     "Booking drafted",
			Actor:     ActorOperator,
		}},
	}

	session := models.CheckoutSession{
		SessionID: uuid.New().String(),
		Booking:   b,
		Program:   program,
		UserID:    req.UserID,
		DeviceID:  req.DeviceID,
	}
	session.Decision = s.evaluate(&session, *svc, *vendor)

	if err := s.saveSession(ctx, &session); err != nil {
		return nil, err
	}
	return s.view(&session), nil
}

// UpdateCheckout applies field edits and re-runs the evaluator. The
// decision is recomputed on every edit, never carried over.
func (s *DefaultCheckoutService) UpdateCheckout(ctx context.Context, sessionID string, update models.CheckoutUpdate) (*CheckoutView, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Booking.State != models.StateDraft {
		return nil, fmt.Errorf("checkout session %s is no longer editable", sessionID)
	}

	applyUpdate(&session.Booking, update)

	svc, vendor, err := s.resolveCatalog(ctx, session.Booking.ServiceID)
	if err != nil {
		return nil, err
	}
	session.Decision = s.evaluate(session, *svc, *vendor)

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// SubmitCheckout drives the Draft booking into its pending state based
// on the freshly evaluated decision, persists it, and drops the session.
func (s *DefaultCheckoutService) SubmitCheckout(ctx context.Context, sessionID string, now time.Time) (*SubmitResult, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	svc, vendor, err := s.resolveCatalog(ctx, session.Booking.ServiceID)
	if err != nil {
		return nil, err
	}

	decision := s.evaluate(session, *svc, *vendor)
	mgr := NewManager(&session.Booking, *svc, *vendor, s.AutoDispute, s.Logger)

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
		return &SubmitResult{Booking: session.Booking, Decision: decision}, ErrPolicyBlocked
	}

	if err := s.Bookings.Create(ctx, session.Booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}
	if r := mgr.Receipt(); r != nil {
		if err := s.Receipts.Create(ctx, *r); err != nil {
			return nil, fmt.Errorf("failed to persist receipt: %w", err)
		}
	}

	utils.GetSessionCacheClient().Del(ctx, sessionID)
	return &SubmitResult{
		Booking:  session.Booking,
		Receipt:  mgr.Receipt(),
		Decision: decision,
	}, nil
}

// CancelCheckout discards the session without touching any booking.
func (s *DefaultCheckoutService) CancelCheckout(ctx context.Context, sessionID string) error {
	if err := utils.GetSessionCacheClient().Del(ctx, sessionID).Err(); err != nil {
		return fmt.Errorf("failed to cancel checkout session: %w", err)
	}
	return nil
}

// PreviewPolicy evaluates without creating or touching any session.
func (s *DefaultCheckoutService) PreviewPolicy(ctx context.Context, req InitiateCheckoutRequest, fields models.CheckoutUpdate) (*models.PolicyDecision, models.CorporateState, error) {
	svc, vendor, err := s.resolveCatalog(ctx, req.ServiceID)
	if err != nil {
		return nil, "", err
	}
	program, err := s.Program.ProgramState(ctx, req.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read corporate program state: %w", err)
	}

	b := models.Booking{
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
		Beneficiary:   req.Beneficiary,
	}
	if b.Amount == 0 {
		b.Amount = svc.BasePrice
	}
	applyUpdate(&b, fields)

	decision := s.Evaluator.Evaluate(evaluationInput(b, program, *svc, *vendor))
	state := policy.ResolveCorporateState(b.PaymentMethod, program, decision)
	return &decision, state, nil
}

func (s *DefaultCheckoutService) resolveCatalog(ctx context.Context, serviceID string) (*models.ServiceDefinition, *models.Vendor, error) {
	svc, err := s.Catalog.GetService(ctx, serviceID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: service %s", ErrReferenceNotFound, serviceID)
	}
	if err != nil {
		return nil, nil, err
	}
	vendor, err := s.Catalog.GetVendor(ctx, svc.VendorID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: vendor %s", ErrReferenceNotFound, svc.VendorID)
	}
	if err != nil {
		return nil, nil, err
	}
	return svc, vendor, nil
}

func (s *DefaultCheckoutService) evaluate(session *models.CheckoutSession, svc models.ServiceDefinition, vendor models.Vendor) models.PolicyDecision {
	return s.Evaluator.Evaluate(evaluationInput(session.Booking, session.Program, svc, vendor))
}

// evaluationInput assembles the evaluator input for a booking against
// its resolved catalog records and program state.
func evaluationInput(b models.Booking, program models.CorporateProgramState, svc models.ServiceDefinition, vendor models.Vendor) policy.EvaluationInput {
	return policy.EvaluationInput{
		PaymentMethod: b.PaymentMethod,
		Program:       program,
		Service:       svc,
		Vendor:        vendor,
		Amount:        b.Amount,
		CostCenter:    b.CostCenter,
		Purpose:       b.Purpose,
		Notes:         b.Notes,
		Attachments:   len(b.Attachments),
		Beneficiary:   b.Beneficiary,
	}
}

func (s *DefaultCheckoutService) view(session *models.CheckoutSession) *CheckoutView {
	return &CheckoutView{
		Session:        *session,
		CorporateState: policy.ResolveCorporateState(session.Booking.PaymentMethod, session.Program, session.Decision),
	}
}

func (s *DefaultCheckoutService) saveSession(ctx context.Context, session *models.CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	if err := utils.GetSessionCacheClient().Set(ctx, session.SessionID, data, utils.CheckoutSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store checkout session: %w", err)
	}
	return nil
}

func (s *DefaultCheckoutService) loadSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	data, err := utils.GetSessionCacheClient().Get(ctx, sessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("checkout session not found or expired: %w", err)
	}
	var session models.CheckoutSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	return &session, nil
}

func applyUpdate(b *models.Booking, update models.CheckoutUpdate) {
	if update.PaymentMethod != nil {
		b.PaymentMethod = *update.PaymentMethod
	}
	if update.Amount != nil {
		b.Amount = *update.Amount
	}
	if update.CostCenter != nil {
		b.CostCenter = *update.CostCenter
	}
	if update.Purpose != nil {
		b.Purpose = *update.Purpose
	}
	if update.Notes != nil {
		b.Notes = *update.Notes
	}
	if update.Attachments != nil {
		b.Attachments = *update.Attachments
	}
	if update.Beneficiary != nil {
		b.Beneficiary = *update.Beneficiary
	}
}
