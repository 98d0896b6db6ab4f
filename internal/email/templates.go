package email

import (
	"fmt"
	"strings"
)

type Message struct {
	Subject string
	Body    string
}

// BookingDetails is the display form of a booking used by every template.
type BookingDetails struct {
	ClientName           string
	Date                 string
	TimeRange            string
	Courts               string
	Total                string
	Channel              string
	CancellationDeadline string
}

func FormatPriceCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func BuildConfirmationEmail(details BookingDetails) Message {
	lines := append(greeting(details.ClientName),
		"Your court booking is confirmed.",
		"",
	)
	lines = append(lines, summaryLines(details)...)
	lines = append(lines, fmt.Sprintf("Total: %s", orTBD(details.Total)))

	deadline := strings.TrimSpace(details.CancellationDeadline)
	if deadline != "" {
		lines = append(lines, fmt.Sprintf("Free cancellation until: %s", deadline))
	}
	if channel := strings.TrimSpace(details.Channel); channel != "" {
		lines = append(lines, fmt.Sprintf("Booked via: %s", channel))
	}

	return Message{
		Subject: fmt.Sprintf("Court Booking Confirmed - %s", orTBD(details.Date)),
		Body:    strings.Join(lines, "\n"),
	}
}

func BuildCancellationEmail(details BookingDetails) Message {
	lines := append(greeting(details.ClientName),
		"Your court booking has been cancelled.",
		"",
	)
	lines = append(lines, summaryLines(details)...)

	return Message{
		Subject: fmt.Sprintf("Court Booking Cancelled - %s", orTBD(details.Date)),
		Body:    strings.Join(lines, "\n"),
	}
}

// BuildReminderEmail warns that the free cancellation window is about to
// close.
func BuildReminderEmail(details BookingDetails) Message {
	lines := append(greeting(details.ClientName),
		"Reminder: your court booking is coming up.",
		"",
	)
	lines = append(lines, summaryLines(details)...)

	deadline := strings.TrimSpace(details.CancellationDeadline)
	if deadline != "" {
		lines = append(lines, "", fmt.Sprintf("If your plans changed, cancel before %s.", deadline))
	}

	return Message{
		Subject: fmt.Sprintf("Upcoming Court Booking - %s", orTBD(details.Date)),
		Body:    strings.Join(lines, "\n"),
	}
}

func greeting(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return []string{"Hello,", ""}
	}
	return []string{fmt.Sprintf("Hello %s,", name), ""}
}

func summaryLines(details BookingDetails) []string {
	return []string{
		fmt.Sprintf("Date: %s", orTBD(details.Date)),
		fmt.Sprintf("Time: %s", orTBD(details.TimeRange)),
		fmt.Sprintf("Courts: %s", orTBD(details.Courts)),
	}
}

func orTBD(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "TBD"
	}
	return value
}
