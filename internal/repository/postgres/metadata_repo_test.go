package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/repository/postgres"
	"github.com/third774/dyte-remix/internal/testutil"
)

func TestMetadataRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	testutil.RunMetadataRepositoryTests(t, postgres.NewMetadataRepository(testDB.DB))
}

func TestMetadataRepository_UpsertKeepsSingleRow(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMetadataRepository(testDB.DB)
	ctx := context.Background()

	meetingID := uuid.NewString()
	require.NoError(t, repo.Put(ctx, meetingID, testutil.NewMetadataBuilder().Build()))
	require.NoError(t, repo.Put(ctx, meetingID, testutil.NewMetadataBuilder().WithType(domain.MeetingTypeWebinar).Build()))

	var count int64
	require.NoError(t, testDB.DB.Model(&postgres.MetadataRecord{}).Where("key = ?", meetingID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var record postgres.MetadataRecord
	require.NoError(t, testDB.DB.First(&record, "key = ?", meetingID).Error)
	assert.Contains(t, string(record.Value), `"type":"webinar"`)
	assert.False(t, record.CreatedAt.IsZero())
}
