package apiutil

import (
	"errors"
	"net/http"

	"github.com/codr1/courtreserve/internal/booking"
)

// BookingError maps an engine error onto an HTTP status. Business errors
// keep their message; storage failures become a generic 503.
func BookingError(err error) HandlerError {
	switch {
	case errors.Is(err, booking.ErrInvalidRequest):
		return HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	case errors.Is(err, booking.ErrSlotUnavailable):
		return HandlerError{Status: http.StatusConflict, Message: err.Error(), Err: err}
	case errors.Is(err, booking.ErrNoTariffFound):
		return HandlerError{Status: http.StatusUnprocessableEntity, Message: err.Error(), Err: err}
	case errors.Is(err, booking.ErrNotFound):
		return HandlerError{Status: http.StatusNotFound, Message: "Booking not found", Err: err}
	case errors.Is(err, booking.ErrCourtNotFound):
		return HandlerError{Status: http.StatusNotFound, Message: "Court not found", Err: err}
	case errors.Is(err, booking.ErrInvalidState):
		return HandlerError{Status: http.StatusConflict, Message: booking.ErrInvalidState.Error(), Err: err}
	case errors.Is(err, booking.ErrPolicyViolation):
		return HandlerError{Status: http.StatusUnprocessableEntity, Message: err.Error(), Err: err}
	case errors.Is(err, booking.ErrTransient):
		return HandlerError{Status: http.StatusServiceUnavailable, Message: "Storage temporarily unavailable, please retry", Err: err}
	default:
		return HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
	}
}
