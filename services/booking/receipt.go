package booking

import (
	"time"

	"corpay/models"

	"github.com/google/uuid"
)

// buildReceipt captures the booking context at the instant it enters
// Pending confirmation. The snapshot is never updated afterwards;
// purpose and cost center are recorded only for corporate bookings.
func buildReceipt(b *models.Booking, svc models.ServiceDefinition, vendor models.Vendor, now time.Time) models.Receipt {
	r := models.Receipt{
		ReceiptID:       uuid.New().String(),
		BookingID:       b.ID,
		Module:          svc.Module,
		ServiceName:     svc.Name,
		VendorName:      vendor.Name,
		ScheduledAt:     b.ScheduledAt,
		Beneficiary:     beneficiaryLabel(b.Beneficiary),
		PaymentMethod:   b.PaymentMethod,
		Corporate:       b.PaymentMethod == models.CorporatePay,
		AttachmentCount: len(b.Attachments),
		Amount:          b.Amount,
		Currency:        b.Currency,
		StatusAtIssue:   b.State,
		IssuedAt:        now,
	}
	if r.Corporate {
		r.Purpose = b.Purpose
		r.CostCenter = b.CostCenter
	}
	return r
}

func beneficiaryLabel(ben models.Beneficiary) string {
	if ben.Name != "" {
		return ben.Name + " (" + string(ben.Type) + ")"
	}
	return string(ben.Type)
}
