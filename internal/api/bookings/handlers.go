// internal/api/bookings/handlers.go
package bookings

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtreserve/internal/api/apiutil"
	"github.com/codr1/courtreserve/internal/booking"
	"github.com/codr1/courtreserve/internal/notify"
	"github.com/codr1/courtreserve/internal/ratelimit"
	"github.com/codr1/courtreserve/internal/request"
)

var (
	engine     *booking.Engine
	limiter    *ratelimit.Limiter
	dispatcher *notify.Dispatcher
	initOnce   sync.Once
)

// InitHandlers must be called during server startup before handling requests.
// limiter and d may be nil.
func InitHandlers(e *booking.Engine, l *ratelimit.Limiter, d *notify.Dispatcher) {
	if e == nil {
		return
	}
	initOnce.Do(func() {
		engine = e
		limiter = l
		dispatcher = d
	})
}

type createBookingRequest struct {
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	CourtIDs  []int64 `json:"court_ids"`
	Channel   string  `json:"channel"`
}

type lineItemResponse struct {
	CourtID       int64  `json:"court_id"`
	CourtName     string `json:"court_name"`
	TariffID      int64  `json:"tariff_id"`
	Hours         int    `json:"hours"`
	SubtotalCents int64  `json:"subtotal_cents"`
}

type bookingResponse struct {
	ID          int64              `json:"id"`
	ClientID    int64              `json:"client_id"`
	Date        string             `json:"date"`
	StartTime   string             `json:"start_time"`
	EndTime     string             `json:"end_time"`
	Status      string             `json:"status"`
	Channel     string             `json:"channel"`
	TotalCents  int64              `json:"total_cents"`
	CreatedAt   time.Time          `json:"created_at"`
	CancelledAt *time.Time         `json:"cancelled_at,omitempty"`
	Courts      []lineItemResponse `json:"courts"`
}

type slotsResponse struct {
	CourtID int64          `json:"court_id"`
	Date    string         `json:"date"`
	Slots   []booking.Slot `json:"slots"`
}

// GET /api/v1/courts/{id}/slots?date=YYYY-MM-DD
func HandleFreeSlots(w http.ResponseWriter, r *http.Request) {
	e := loadEngine()
	if e == nil {
		notInitialized(w, r)
		return
	}

	courtID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid court ID", Err: err})
		return
	}
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	slots, err := e.ListFreeSlots(r.Context(), courtID, date)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BookingError(err))
		return
	}

	writeJSON(w, r, http.StatusOK, slotsResponse{
		CourtID: courtID,
		Date:    booking.FormatDate(date),
		Slots:   slots,
	})
}

// POST /api/v1/bookings
func HandleCreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	e := loadEngine()
	if e == nil {
		notInitialized(w, r)
		return
	}

	clientID, ok := requireClient(w, r)
	if !ok {
		return
	}

	if l := loadLimiter(); l != nil {
		if result := l.AllowBooking(clientID); !result.Allowed {
			ratelimit.LogRateLimitExceeded(r.Context(), clientID, result.RetryAfter)
			w.Header().Set("Retry-After", retryAfterSeconds(result.RetryAfter))
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusTooManyRequests, Message: "Too many booking attempts, please retry later"})
			return
		}
	}

	var body createBookingRequest
	if err := apiutil.DecodeJSON(r, &body); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid JSON body", Err: err})
		return
	}

	req, err := body.toEngineRequest(clientID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	created, err := e.CreateBooking(r.Context(), req)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BookingError(err))
		return
	}

	loadDispatcher().BookingCreated(r.Context(), created)

	logger.Info().
		Int64("booking_id", created.ID).
		Int64("client_id", clientID).
		Msg("Booking request completed")
	writeJSON(w, r, http.StatusCreated, newBookingResponse(created))
}

// GET /api/v1/bookings
func HandleListBookings(w http.ResponseWriter, r *http.Request) {
	e := loadEngine()
	if e == nil {
		notInitialized(w, r)
		return
	}

	clientID, ok := requireClient(w, r)
	if !ok {
		return
	}

	list, err := e.ListBookingsForClient(r.Context(), clientID)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BookingError(err))
		return
	}

	resp := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, newBookingResponse(b))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// POST /api/v1/bookings/{id}/cancel
func HandleCancelBooking(w http.ResponseWriter, r *http.Request) {
	e := loadEngine()
	if e == nil {
		notInitialized(w, r)
		return
	}

	clientID, ok := requireClient(w, r)
	if !ok {
		return
	}

	bookingID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid booking ID", Err: err})
		return
	}

	cancelled, err := e.CancelBooking(r.Context(), bookingID, clientID)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BookingError(err))
		return
	}
	if !cancelled {
		// Another client's booking looks the same as a missing one.
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Booking not found"})
		return
	}

	b, err := e.GetBooking(r.Context(), bookingID)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("booking_id", bookingID).Msg("Failed to reload cancelled booking")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	loadDispatcher().BookingCancelled(r.Context(), b)
	writeJSON(w, r, http.StatusOK, newBookingResponse(b))
}

func (body createBookingRequest) toEngineRequest(clientID int64) (booking.CreateBookingRequest, error) {
	date, err := parseDate(body.Date)
	if err != nil {
		return booking.CreateBookingRequest{}, err
	}
	start, err := parseTime(body.StartTime, "start_time")
	if err != nil {
		return booking.CreateBookingRequest{}, err
	}
	end, err := parseTime(body.EndTime, "end_time")
	if err != nil {
		return booking.CreateBookingRequest{}, err
	}
	return booking.CreateBookingRequest{
		ClientID: clientID,
		Date:     date,
		Start:    start,
		End:      end,
		CourtIDs: body.CourtIDs,
		Channel:  body.Channel,
	}, nil
}

func newBookingResponse(b booking.Booking) bookingResponse {
	items := make([]lineItemResponse, 0, len(b.LineItems))
	for _, item := range b.LineItems {
		items = append(items, lineItemResponse{
			CourtID:       item.CourtID,
			CourtName:     item.CourtName,
			TariffID:      item.TariffID,
			Hours:         item.Hours,
			SubtotalCents: item.SubtotalCents,
		})
	}
	return bookingResponse{
		ID:          b.ID,
		ClientID:    b.ClientID,
		Date:        booking.FormatDate(b.Date),
		StartTime:   b.Start.String(),
		EndTime:     b.End.String(),
		Status:      string(b.Status),
		Channel:     b.Channel,
		TotalCents:  b.TotalCents,
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
		Courts:      items,
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apiutil.FieldError{Field: "date", Reason: "is required"}
	}
	date, err := booking.ParseDate(raw)
	if err != nil {
		return time.Time{}, apiutil.FieldError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return date, nil
}

func parseTime(raw, field string) (booking.TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apiutil.FieldError{Field: field, Reason: "is required"}
	}
	t, err := booking.ParseTimeOfDay(raw)
	if err != nil {
		return 0, apiutil.FieldError{Field: field, Reason: "must be HH:MM"}
	}
	return t, nil
}

func requireClient(w http.ResponseWriter, r *http.Request) (int64, bool) {
	clientID, ok := request.ClientIDFromRequest(r)
	if !ok {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusUnauthorized, Message: "Unauthorized"})
		return 0, false
	}
	return clientID, true
}

func retryAfterSeconds(d time.Duration) string {
	seconds := int64((d + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return strconv.FormatInt(seconds, 10)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if err := apiutil.WriteJSON(w, status, payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write booking response")
	}
}

func notInitialized(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Error().Msg("Booking handlers not initialized")
	apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
}

func loadEngine() *booking.Engine {
	return engine
}

func loadLimiter() *ratelimit.Limiter {
	return limiter
}

func loadDispatcher() *notify.Dispatcher {
	return dispatcher
}
