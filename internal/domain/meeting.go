package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

type MeetingStatus string

const (
	MeetingStatusActive   MeetingStatus = "ACTIVE"
	MeetingStatusInactive MeetingStatus = "INACTIVE"
)

// Meeting is the request-scoped copy of a vendor meeting resource.
type Meeting struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	PreferredRegion   string        `json:"preferredRegion,omitempty"`
	Status            MeetingStatus `json:"status"`
	RecordOnStart     bool          `json:"recordOnStart"`
	LiveStreamOnStart bool          `json:"liveStreamOnStart"`
	PersistChat       bool          `json:"persistChat"`
	SummarizeOnEnd    bool          `json:"summarizeOnEnd"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

type ParticipantToken struct {
	Token               string `json:"token"`
	ParticipantID       string `json:"participantId"`
	CustomParticipantID string `json:"customParticipantId"`
	PresetName          string `json:"presetName"`
}

// IsValidIdentifier reports whether s is a hyphenated UUID. uuid.Parse also
// accepts the urn and braced forms, which never appear in meeting paths.
func IsValidIdentifier(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

const MaxTitleLength = 100

// IsValidTitle reports whether s can be used as a meeting title or alias.
func IsValidTitle(s string) bool {
	if strings.TrimSpace(s) != s || s == "" {
		return false
	}
	if utf8.RuneCountInString(s) > MaxTitleLength {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
