package memory

import (
	"context"
	"sync"

	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/repository"
)

// metadataRepository keeps encoded records in process memory. Records do not
// survive a restart and are not shared between instances.
type metadataRepository struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMetadataRepository() *metadataRepository {
	return &metadataRepository{records: make(map[string][]byte)}
}

func (r *metadataRepository) Get(ctx context.Context, meetingID string) (*domain.MeetingMetadata, error) {
	r.mu.RLock()
	data, ok := r.records[meetingID]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrMetadataNotFound
	}
	return repository.DecodeMetadata(data)
}

func (r *metadataRepository) Put(ctx context.Context, meetingID string, metadata *domain.MeetingMetadata) error {
	data, err := repository.EncodeMetadata(metadata)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.records[meetingID] = data
	r.mu.Unlock()
	return nil
}

func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Metadata: NewMetadataRepository(),
	}
}
