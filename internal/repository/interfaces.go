package repository

import (
	"context"

	"github.com/third774/dyte-remix/internal/domain"
)

// MetadataRepository is a key-value store of meeting metadata keyed by meeting id.
type MetadataRepository interface {
	// Get returns domain.ErrMetadataNotFound when no record exists.
	Get(ctx context.Context, meetingID string) (*domain.MeetingMetadata, error)
	Put(ctx context.Context, meetingID string, metadata *domain.MeetingMetadata) error
}

type Repositories struct {
	Metadata MetadataRepository
}
