package booking

import (
	"database/sql"
	"fmt"
	"time"

	dbgen "github.com/codr1/courtreserve/internal/db/generated"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

const DefaultChannel = "web"

// Slot is a half-open [Start, End) range on one court and date.
type Slot struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

type LineItem struct {
	ID            int64
	CourtID       int64
	CourtName     string
	TariffID      int64
	Hours         int
	SubtotalCents int64
}

type Booking struct {
	ID          int64
	ClientID    int64
	Date        time.Time
	Start       TimeOfDay
	End         TimeOfDay
	Status      Status
	Channel     string
	TotalCents  int64
	CreatedAt   time.Time
	CancelledAt *time.Time
	LineItems   []LineItem
}

type CreateBookingRequest struct {
	ClientID int64
	Date     time.Time
	Start    TimeOfDay
	End      TimeOfDay
	CourtIDs []int64
	Channel  string // where the booking came from; defaults to "web"
}

func bookingFromRow(row dbgen.Booking) (Booking, error) {
	date, err := ParseDate(row.Date)
	if err != nil {
		return Booking{}, fmt.Errorf("booking %d: %w", row.ID, err)
	}
	start, err := ParseTimeOfDay(row.StartTime)
	if err != nil {
		return Booking{}, fmt.Errorf("booking %d start: %w", row.ID, err)
	}
	end, err := ParseTimeOfDay(row.EndTime)
	if err != nil {
		return Booking{}, fmt.Errorf("booking %d end: %w", row.ID, err)
	}
	return Booking{
		ID:          row.ID,
		ClientID:    row.ClientID,
		Date:        date,
		Start:       start,
		End:         end,
		Status:      Status(row.Status),
		Channel:     row.Channel,
		TotalCents:  row.TotalCents,
		CreatedAt:   row.CreatedAt,
		CancelledAt: nullTimePtr(row.CancelledAt),
	}, nil
}

func lineItemsFromRows(rows []dbgen.ListBookingLineItemsRow) []LineItem {
	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, LineItem{
			ID:            row.ID,
			CourtID:       row.CourtID,
			CourtName:     row.CourtName,
			TariffID:      row.TariffID,
			Hours:         int(row.Hours),
			SubtotalCents: row.SubtotalCents,
		})
	}
	return items
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}
