package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/repository"
)

const metadataKeyPrefix = "meeting-metadata:"

type metadataRepository struct {
	client *redis.Client
}

func NewMetadataRepository(client *redis.Client) *metadataRepository {
	return &metadataRepository{client: client}
}

func (r *metadataRepository) Get(ctx context.Context, meetingID string) (*domain.MeetingMetadata, error) {
	data, err := r.client.Get(ctx, metadataKeyPrefix+meetingID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrMetadataNotFound
		}
		return nil, err
	}
	return repository.DecodeMetadata(data)
}

// Put stores the record without expiry; metadata lives as long as the meeting id is shared.
func (r *metadataRepository) Put(ctx context.Context, meetingID string, metadata *domain.MeetingMetadata) error {
	data, err := repository.EncodeMetadata(metadata)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, metadataKeyPrefix+meetingID, data, 0).Err()
}
