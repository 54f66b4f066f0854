package repository

import (
	"encoding/json"
	"fmt"

	"github.com/third774/dyte-remix/internal/domain"
)

// EncodeMetadata produces the JSON document stored under a meeting id.
func EncodeMetadata(metadata *domain.MeetingMetadata) ([]byte, error) {
	if !domain.IsValidMeetingType(metadata.Type) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMeetingType, metadata.Type)
	}
	return json.Marshal(metadata)
}

func DecodeMetadata(data []byte) (*domain.MeetingMetadata, error) {
	var metadata domain.MeetingMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to decode meeting metadata: %w", err)
	}
	return &metadata, nil
}
