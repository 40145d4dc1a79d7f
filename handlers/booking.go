package handlers

import (
	"net/http"

	disputeRepo "corpay/database/repository/disputes"
	receiptRepo "corpay/database/repository/receipts"
	"corpay/models"
	"corpay/services/booking"
	"corpay/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes operator and signal operations on persisted
// bookings.
type BookingHandler struct {
	Svc      booking.Service
	Receipts receiptRepo.ReceiptRepository
	Disputes disputeRepo.DisputeRepository
}

func NewBookingHandler(svc booking.Service, receipts receiptRepo.ReceiptRepository, disputes disputeRepo.DisputeRepository) *BookingHandler {
	return &BookingHandler{Svc: svc, Receipts: receipts, Disputes: disputes}
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, statusForError(err), "booking not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

// transition wraps the common load-transition-respond shape.
func (h *BookingHandler) transition(c *gin.Context, op func() (interface{}, error), failure string) {
	result, err := op()
	if err != nil {
		utils.JSONError(c, statusForError(err), failure, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) Approve(c *gin.Context) {
	h.transition(c, func() (interface{}, error) {
		return h.Svc.Approve(c.Request.Context(), c.Param("id"), requestTime(c))
	}, "failed to approve booking")
}

func (h *BookingHandler) RequestChanges(c *gin.Context) {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = c.ShouldBindJSON(&body)
	h.transition(c, func() (interface{}, error) {
		return h.Svc.RequestChanges(c.Request.Context(), c.Param("id"), body.Detail, requestTime(c))
	}, "failed to request changes")
}

func (h *BookingHandler) Revise(c *gin.Context) {
	h.transition(c, func() (interface{}, error) {
		return h.Svc.Revise(c.Request.Context(), c.Param("id"), requestTime(c))
	}, "failed to revise booking")
}

// Resubmit drives a revised Draft booking back into the submission
// path. The optional body carries field edits applied before policy
// is re-evaluated.
func (h *BookingHandler) Resubmit(c *gin.Context) {
	var update models.CheckoutUpdate
	_ = c.ShouldBindJSON(&update)
	h.transition(c, func() (interface{}, error) {
		return h.Svc.Resubmit(c.Request.Context(), c.Param("id"), update, requestTime(c))
	}, "failed to resubmit booking")
}

func (h *BookingHandler) VendorConfirm(c *gin.Context) {
	h.transition(c, func() (interface{}, error) {
		return h.Svc.VendorConfirm(c.Request.Context(), c.Param("id"), requestTime(c))
	}, "failed to confirm booking")
}

func (h *BookingHandler) StartDelivery(c *gin.Context) {
	h.transition(c, func() (interface{}, error) {
		return h.Svc.StartDelivery(c.Request.Context(), c.Param("id"), requestTime(c))
	}, "failed to start delivery")
}

func (h *BookingHandler) CompleteDelivery(c *gin.Context) {
	h.transition(c, func() (interface{}, error) {
		return h.Svc.CompleteDelivery(c.Request.Context(), c.Param("id"), requestTime(c))
	}, "failed to complete booking")
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, func() (interface{}, error) {
		return h.Svc.Cancel(c.Request.Context(), c.Param("id"), requestTime(c))
	}, "failed to cancel booking")
}

// SLAStatus reports remaining time against the booking's deadlines.
func (h *BookingHandler) SLAStatus(c *gin.Context) {
	status, err := h.Svc.SLAStatus(c.Request.Context(), c.Param("id"), requestTime(c))
	if err != nil {
		utils.JSONError(c, statusForError(err), "failed to compute SLA status", err.Error())
		return
	}
	c.JSON(http.StatusOK, status)
}

// EnforceSLA runs a pull-based breach check at the request time.
func (h *BookingHandler) EnforceSLA(c *gin.Context) {
	breached, err := h.Svc.EnforceSLA(c.Request.Context(), c.Param("id"), requestTime(c))
	if err != nil {
		utils.JSONError(c, statusForError(err), "failed to enforce SLA", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"breached": breached})
}

func (h *BookingHandler) OpenDispute(c *gin.Context) {
	var body struct {
		Reason        string `json:"reason"`
		Note          string `json:"note"`
		AttachmentRef string `json:"attachment_ref"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	h.transition(c, func() (interface{}, error) {
		return h.Svc.OpenDispute(c.Request.Context(), c.Param("id"), body.Reason, body.Note, body.AttachmentRef, requestTime(c))
	}, "failed to open dispute")
}

func (h *BookingHandler) AdvanceDispute(c *gin.Context) {
	h.transition(c, func() (interface{}, error) {
		return h.Svc.AdvanceDispute(c.Request.Context(), c.Param("id"), c.Param("disputeID"), requestTime(c))
	}, "failed to advance dispute")
}

func (h *BookingHandler) ListDisputes(c *gin.Context) {
	disputes, err := h.Disputes.ListByBookingID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list disputes", err.Error())
		return
	}
	c.JSON(http.StatusOK, disputes)
}

// ListOpenDisputes lists every open dispute across bookings, for the
// operator review queue.
func (h *BookingHandler) ListOpenDisputes(c *gin.Context) {
	disputes, err := h.Disputes.ListOpen(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list open disputes", err.Error())
		return
	}
	c.JSON(http.StatusOK, disputes)
}

// GetReceipt returns the immutable snapshot issued at submission.
func (h *BookingHandler) GetReceipt(c *gin.Context) {
	receipt, err := h.Receipts.GetByBookingID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "receipt not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// GetReceiptByID fetches a receipt by its own identifier, as printed
// on the receipt itself.
func (h *BookingHandler) GetReceiptByID(c *gin.Context) {
	receipt, err := h.Receipts.GetByID(c.Request.Context(), c.Param("receiptID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "receipt not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, receipt)
}
