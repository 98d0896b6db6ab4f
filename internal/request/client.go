package request

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ClientIDHeader carries the authenticated client id set by the gateway.
const ClientIDHeader = "X-Client-ID"

// ParseClientID parses a positive int64 client ID.
func ParseClientID(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	clientID, err := strconv.ParseInt(value, 10, 64)
	if err != nil || clientID <= 0 {
		return 0, false
	}

	return clientID, true
}

// ClientIDFromRequest returns the caller's client ID from the X-Client-ID header.
func ClientIDFromRequest(r *http.Request) (int64, bool) {
	raw := r.Header.Get(ClientIDHeader)
	clientID, ok := ParseClientID(raw)
	if !ok && raw != "" {
		log.Ctx(r.Context()).
			Debug().
			Str("header", ClientIDHeader).
			Str("value", raw).
			Msg("Ignoring malformed client id")
	}
	return clientID, ok
}
