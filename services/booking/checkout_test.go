package booking

import (
	"testing"

	"corpay/models"
)

func TestApplyUpdate(t *testing.T) {
	t.Run("nil fields are left alone", func(t *testing.T) {
		b := testBooking()
		applyUpdate(b, models.CheckoutUpdate{})
		if b.CostCenter != "CC-4100" || b.Purpose != "client visit" || len(b.Attachments) != 1 {
			t.Fatalf("empty update mutated the booking: %+v", b)
		}
	})

	t.Run("set fields overwrite", func(t *testing.T) {
		b := testBooking()
		method := models.PersonalWallet
		amount := 99000.0
		notes := "rebooked onto the later flight"
		applyUpdate(b, models.CheckoutUpdate{
			PaymentMethod: &method,
			Amount:        &amount,
			Notes:         &notes,
		})
		if b.PaymentMethod != models.PersonalWallet || b.Amount != 99000 || b.Notes != notes {
			t.Fatalf("update not applied: %+v", b)
		}
		if b.CostCenter != "CC-4100" {
			t.Fatalf("untouched field changed: %q", b.CostCenter)
		}
	})

	t.Run("explicit empty value clears", func(t *testing.T) {
		b := testBooking()
		empty := ""
		none := []models.AttachmentRef{}
		applyUpdate(b, models.CheckoutUpdate{
			CostCenter:  &empty,
			Attachments: &none,
		})
		if b.CostCenter != "" || len(b.Attachments) != 0 {
			t.Fatalf("clearing update not applied: %+v", b)
		}
	})
}
