package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRequest  = errors.New("invalid booking request")
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrNoTariffFound   = errors.New("no tariff found")
	ErrNotFound        = errors.New("booking not found")
	ErrCourtNotFound   = errors.New("court not found")
	ErrInvalidState    = errors.New("only confirmed bookings may be cancelled")
	ErrPolicyViolation = errors.New("cancellation policy violation")
	ErrTransient       = errors.New("transient storage failure")
)

// RequestError names the booking rule a request broke.
type RequestError struct {
	Rule string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid booking request: %s", e.Rule)
}

func (e *RequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// SlotUnavailableError identifies the first hour that could not be booked.
type SlotUnavailableError struct {
	CourtID int64
	Start   TimeOfDay
	End     TimeOfDay
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("court %d is unavailable %s-%s", e.CourtID, e.Start, e.End)
}

func (e *SlotUnavailableError) Is(target error) bool {
	return target == ErrSlotUnavailable
}

type NoTariffFoundError struct {
	CourtID int64
	Date    time.Time
	Hour    TimeOfDay
}

func (e *NoTariffFoundError) Error() string {
	return fmt.Sprintf("no tariff for court %d on %s at %s", e.CourtID, FormatDate(e.Date), e.Hour)
}

func (e *NoTariffFoundError) Is(target error) bool {
	return target == ErrNoTariffFound
}

// PolicyError reports how much notice a cancellation had against the
// required lead time.
type PolicyError struct {
	Notice   time.Duration
	Required time.Duration
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("cancellation requires %s notice, booking starts in %s",
		formatHours(e.Required), formatHours(e.Notice))
}

func (e *PolicyError) Is(target error) bool {
	return target == ErrPolicyViolation
}

// TransientError wraps a storage failure. The engine never retries these.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func (e *TransientError) Is(target error) bool {
	return target == ErrTransient
}

var businessErrors = []error{
	ErrInvalidRequest,
	ErrSlotUnavailable,
	ErrNoTariffFound,
	ErrNotFound,
	ErrCourtNotFound,
	ErrInvalidState,
	ErrPolicyViolation,
}

// classify passes business errors through and wraps everything else as a
// TransientError.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	var transient *TransientError
	if errors.As(err, &transient) {
		return err
	}
	return &TransientError{Op: op, Err: err}
}

func formatHours(d time.Duration) string {
	if d < 0 {
		return "0h (already started)"
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
