package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/repository"
)

// RunMetadataRepositoryTests exercises the behaviour every metadata backend must share.
func RunMetadataRepositoryTests(t *testing.T, repo repository.MetadataRepository) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing record", func(t *testing.T) {
		got, err := repo.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrMetadataNotFound)
		assert.Nil(t, got)
	})

	t.Run("put then get", func(t *testing.T) {
		meetingID := uuid.NewString()
		want := NewMetadataBuilder().WithType(domain.MeetingTypeWebinar).Build()

		require.NoError(t, repo.Put(ctx, meetingID, want))

		got, err := repo.Get(ctx, meetingID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("put overwrites", func(t *testing.T) {
		meetingID := uuid.NewString()
		require.NoError(t, repo.Put(ctx, meetingID, NewMetadataBuilder().WithHostToken("first").Build()))
		require.NoError(t, repo.Put(ctx, meetingID, NewMetadataBuilder().WithHostToken("second").Build()))

		got, err := repo.Get(ctx, meetingID)
		require.NoError(t, err)
		assert.Equal(t, "second", got.HostToken)
	})

	t.Run("records are keyed by meeting id", func(t *testing.T) {
		a, b := uuid.NewString(), uuid.NewString()
		require.NoError(t, repo.Put(ctx, a, NewMetadataBuilder().WithHostToken("a").Build()))
		require.NoError(t, repo.Put(ctx, b, NewMetadataBuilder().WithHostToken("b").Build()))

		got, err := repo.Get(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, "a", got.HostToken)
	})

	t.Run("rejects unknown meeting type", func(t *testing.T) {
		meetingID := uuid.NewString()
		err := repo.Put(ctx, meetingID, NewMetadataBuilder().WithType("town-hall").Build())
		assert.ErrorIs(t, err, domain.ErrInvalidMeetingType)

		_, err = repo.Get(ctx, meetingID)
		assert.ErrorIs(t, err, domain.ErrMetadataNotFound)
	})
}
