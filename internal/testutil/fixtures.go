package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/repository"
)

// MetadataBuilder creates meeting metadata with a builder pattern
type MetadataBuilder struct {
	createdBy   string
	hostToken   string
	meetingType domain.MeetingType
}

// NewMetadataBuilder creates a new MetadataBuilder with default values
func NewMetadataBuilder() *MetadataBuilder {
	return &MetadataBuilder{
		createdBy:   uuid.NewString(),
		hostToken:   uuid.NewString(),
		meetingType: domain.MeetingTypeMeeting,
	}
}

// WithCreatedBy sets the creating user id
func (b *MetadataBuilder) WithCreatedBy(userID string) *MetadataBuilder {
	b.createdBy = userID
	return b
}

// WithHostToken sets the host token
func (b *MetadataBuilder) WithHostToken(token string) *MetadataBuilder {
	b.hostToken = token
	return b
}

// WithType sets the meeting type
func (b *MetadataBuilder) WithType(t domain.MeetingType) *MetadataBuilder {
	b.meetingType = t
	return b
}

// Build returns the metadata without storing it
func (b *MetadataBuilder) Build() *domain.MeetingMetadata {
	return &domain.MeetingMetadata{
		CreatedBy: b.createdBy,
		HostToken: b.hostToken,
		Type:      b.meetingType,
	}
}

// Store writes the metadata under meetingID and returns it
func (b *MetadataBuilder) Store(t *testing.T, repo repository.MetadataRepository, meetingID string) *domain.MeetingMetadata {
	t.Helper()

	metadata := b.Build()
	if err := repo.Put(context.Background(), meetingID, metadata); err != nil {
		t.Fatalf("failed to store metadata: %v", err)
	}
	return metadata
}
