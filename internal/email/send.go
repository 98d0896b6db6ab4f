package email

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	dbgen "github.com/codr1/courtreserve/internal/db/generated"
)

const sendTimeout = 5 * time.Second

// ClientLookup is the part of the query layer needed to resolve a recipient.
type ClientLookup interface {
	GetClient(ctx context.Context, id int64) (dbgen.Client, error)
}

// SendToClient looks up the client's address and sends the message in the
// background. Clients without an email address are skipped.
func SendToClient(ctx context.Context, q ClientLookup, client EmailSender, clientID int64, message Message, logger *zerolog.Logger) {
	if client == nil || q == nil {
		return
	}
	if clientID <= 0 {
		if logger != nil {
			logger.Warn().Int64("client_id", clientID).Msg("Skipping email with invalid client ID")
		}
		return
	}
	if message.Subject == "" || message.Body == "" {
		return
	}

	row, err := q.GetClient(ctx, clientID)
	if err != nil {
		if logger != nil {
			logger.Error().Err(err).Int64("client_id", clientID).Msg("Failed to load client for email")
		}
		return
	}
	if !row.Email.Valid {
		return
	}

	Send(ctx, client, strings.TrimSpace(row.Email.String), message, logger)
}

// Send delivers message to recipient in the background. The send outlives
// the caller's cancellation but not sendTimeout.
func Send(ctx context.Context, client EmailSender, recipient string, message Message, logger *zerolog.Logger) {
	if client == nil || recipient == "" {
		return
	}

	go func() {
		sendCtx, cancel := newEmailContext(ctx, sendTimeout)
		defer cancel()
		if err := client.Send(sendCtx, recipient, message.Subject, message.Body); err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("subject", message.Subject).Msg("Failed to send email")
			}
			return
		}
		if logger != nil {
			logger.Debug().Str("subject", message.Subject).Msg("Email sent")
		}
	}()
}
