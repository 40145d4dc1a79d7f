package booking

import (
	"testing"
	"time"

	"corpay/models"
)

func TestReceiptSnapshot(t *testing.T) {
	m := newTestManager(false)
	mustSubmit(t, m)

	r := m.Receipt()
	if r == nil {
		t.Fatal("expected a receipt")
	}
	if r.StatusAtIssue != models.StatePendingConfirmation {
		t.Fatalf("status at issue %s, want pending confirmation", r.StatusAtIssue)
	}
	if !r.Corporate || r.PaymentMethod != models.CorporatePay {
		t.Fatalf("expected a corporate receipt: %+v", r)
	}
	if r.Purpose != "client visit" || r.CostCenter != "CC-4100" {
		t.Fatalf("corporate fields not captured: %+v", r)
	}
	if r.AttachmentCount != 1 {
		t.Fatalf("attachment count %d, want 1", r.AttachmentCount)
	}
	if r.ServiceName != "Business flight" || r.VendorName != "TransLink Mobility" {
		t.Fatalf("catalog names not captured: %+v", r)
	}
	if !r.IssuedAt.Equal(t0) {
		t.Fatalf("issued at %v, want %v", r.IssuedAt, t0)
	}
}

func TestReceiptImmutableAcrossTransitions(t *testing.T) {
	m := newTestManager(false)
	mustSubmit(t, m)
	issued := *m.Receipt()

	if err := m.VendorConfirm(t0.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := m.CompleteDelivery(t0.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	after := *m.Receipt()
	if after != issued {
		t.Fatalf("receipt changed after later transitions:\nissued: %+v\nafter:  %+v", issued, after)
	}
	if after.StatusAtIssue != models.StatePendingConfirmation {
		t.Fatalf("status at issue drifted to %s", after.StatusAtIssue)
	}
}

func TestReceiptOmitsCorporateFieldsForPersonalPayment(t *testing.T) {
	b := testBooking()
	b.PaymentMethod = models.PersonalWallet
	m := NewManager(b, testService(), testVendor(), false, nil)
	mustSubmit(t, m)

	r := m.Receipt()
	if r.Corporate {
		t.Fatal("personal payment receipt marked corporate")
	}
	if r.Purpose != "" || r.CostCenter != "" {
		t.Fatalf("corporate-only fields leaked onto a personal receipt: %+v", r)
	}
}

func TestReceiptIssuedExactlyOnce(t *testing.T) {
	m := newTestManager(false)
	if err := m.SubmitForApproval(needsApproval(), t0); err != nil {
		t.Fatal(err)
	}
	if err := m.Approve(t0.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	first := m.Receipt()
	if first == nil {
		t.Fatal("expected a receipt after approval")
	}

	// A cancellation and refund must not reissue or mutate it.
	if err := m.Cancel(t0.Add(2 * time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := m.ConfirmRefund(t0.Add(3 * time.Hour)); err != nil {
		t.Fatal(err)
	}
	if second := m.Receipt(); second.ReceiptID != first.ReceiptID {
		t.Fatalf("receipt reissued: %s -> %s", first.ReceiptID, second.ReceiptID)
	}
}

func TestBeneficiaryLabel(t *testing.T) {
	got := beneficiaryLabel(models.Beneficiary{Type: models.BeneficiaryEmployee, Name: "Robin"})
	if got != "Robin (employee)" {
		t.Fatalf("label %q", got)
	}
	if got := beneficiaryLabel(models.Beneficiary{Type: models.BeneficiarySelf}); got != "self" {
		t.Fatalf("label %q", got)
	}
}
