package handlers

import (
	"errors"
	"net/http"

	"corpay/models"
	"corpay/services/booking"
	"corpay/utils"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler exposes the checkout session flow.
type CheckoutHandler struct {
	Svc booking.CheckoutService
}

func NewCheckoutHandler(svc booking.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Svc: svc}
}

// Start creates a new checkout session for a catalog service.
func (h *CheckoutHandler) Start(c *gin.Context) {
	var req booking.InitiateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	view, err := h.Svc.InitiateCheckout(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, statusForError(err), "failed to start checkout", err.Error())
		return
	}
	c.JSON(http.StatusOK, view)
}

// Update applies field edits and returns the re-evaluated decision.
func (h *CheckoutHandler) Update(c *gin.Context) {
	var update models.CheckoutUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	view, err := h.Svc.UpdateCheckout(c.Request.Context(), c.Param("sessionID"), update)
	if err != nil {
		utils.JSONError(c, statusForError(err), "failed to update checkout", err.Error())
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit finalizes the session into a pending booking.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	result, err := h.Svc.SubmitCheckout(c.Request.Context(), c.Param("sessionID"), requestTime(c))
	if err != nil {
		if errors.Is(err, booking.ErrPolicyBlocked) && result != nil {
			// The decision explains the block; violations are data.
			c.JSON(http.StatusUnprocessableEntity, result)
			return
		}
		utils.JSONError(c, statusForError(err), "failed to submit checkout", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// Cancel discards the checkout session.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	if err := h.Svc.CancelCheckout(c.Request.Context(), c.Param("sessionID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel checkout", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// Preview evaluates policy for arbitrary fields without a session.
func (h *CheckoutHandler) Preview(c *gin.Context) {
	var req struct {
		booking.InitiateCheckoutRequest
		Fields models.CheckoutUpdate `json:"fields"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	decision, state, err := h.Svc.PreviewPolicy(c.Request.Context(), req.InitiateCheckoutRequest, req.Fields)
	if err != nil {
		utils.JSONError(c, statusForError(err), "failed to evaluate policy", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"decision":        decision,
		"corporate_state": state,
	})
}
