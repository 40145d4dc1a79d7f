package handlers

import (
	"errors"
	"net/http"
	"time"

	"corpay/services/booking"

	"github.com/gin-gonic/gin"
)

// statusForError maps engine errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, booking.ErrReferenceNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, booking.ErrMissingField):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrDisputeAlreadyOpen):
		return http.StatusConflict
	case errors.Is(err, booking.ErrPolicyBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, booking.ErrRefundPending):
		return http.StatusAccepted
	default:
		return http.StatusInternalServerError
	}
}

// requestTime returns the caller-supplied clock (?at=RFC3339) or the
// server clock. SLA math stays deterministic when callers pin the time.
func requestTime(c *gin.Context) time.Time {
	if at := c.Query("at"); at != "" {
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			return t
		}
	}
	return time.Now()
}
