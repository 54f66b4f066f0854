package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/third774/dyte-remix/internal/domain"
)

// writeServiceError maps a failed outbound flow to a status code. Upstream
// failures are a bad gateway; anything else is ours.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		log.Printf("ERROR [handlers.%s] upstream failure: %v", op, err)
		http.Error(w, "Meeting service unavailable", http.StatusBadGateway)
	case errors.Is(err, domain.ErrMeetingNotFound):
		http.Error(w, "Meeting not found", http.StatusNotFound)
	default:
		log.Printf("ERROR [handlers.%s] %v", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
