package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetadataRecord is one key-value row: the meeting id and its JSON metadata document.
type MetadataRecord struct {
	Key       string         `gorm:"primaryKey"`
	Value     datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MetadataRecord) TableName() string {
	return "meeting_metadata"
}

type metadataRepository struct {
	db *gorm.DB
}

func NewMetadataRepository(db *gorm.DB) *metadataRepository {
	return &metadataRepository{db: db}
}

func (r *metadataRepository) Get(ctx context.Context, meetingID string) (*domain.MeetingMetadata, error) {
	var record MetadataRecord
	err := r.db.WithContext(ctx).First(&record, "key = ?", meetingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMetadataNotFound
		}
		return nil, err
	}
	return repository.DecodeMetadata(record.Value)
}

func (r *metadataRepository) Put(ctx context.Context, meetingID string, metadata *domain.MeetingMetadata) error {
	data, err := repository.EncodeMetadata(metadata)
	if err != nil {
		return err
	}

	record := &MetadataRecord{
		Key:   meetingID,
		Value: datatypes.JSON(data),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(record).Error
}
