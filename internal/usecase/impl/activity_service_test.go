package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type activityServiceFixtures struct {
	result  ActivityServiceResult
	factory *fakeRepositoryFactory
}

func createTestActivityService(t *testing.T) *activityServiceFixtures {
	t.Helper()

	factory := newFakeRepositoryFactory()
	result := NewActivityService(ActivityServiceParams{
		ActivityRepo: factory.activities,
		Logger:       testLogger(),
	})

	return &activityServiceFixtures{result: result, factory: factory}
}

func TestActivityService_RecordAuditEvent(t *testing.T) {
	t.Parallel()

	t.Run("appends an activity row", func(t *testing.T) {
		t.Parallel()

		f := createTestActivityService(t)
		userID := uuid.New()
		occurred := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

		err := f.result.Recorder.RecordAuditEvent(context.Background(), &service.AuditEvent{
			UserID:     userID.String(),
			Action:     entity.ActionUserLoggedIn,
			IPAddress:  "203.0.113.7",
			OccurredAt: occurred,
		})
		require.NoError(t, err)

		entries, err := f.result.Usecase.ListMyActivity(context.Background(), userID, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entity.ActionUserLoggedIn, entries[0].Action)
		assert.Equal(t, "203.0.113.7", entries[0].IPAddress)
		assert.True(t, occurred.Equal(entries[0].Timestamp))
	})

	t.Run("fills a missing event time", func(t *testing.T) {
		t.Parallel()

		f := createTestActivityService(t)
		userID := uuid.New()

		err := f.result.Recorder.RecordAuditEvent(context.Background(), &service.AuditEvent{
			UserID: userID.String(),
			Action: entity.ActionAddressCreated,
		})
		require.NoError(t, err)

		entries, err := f.result.Usecase.ListMyActivity(context.Background(), userID, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.False(t, entries[0].Timestamp.IsZero())
	})

	t.Run("rejects a malformed user id", func(t *testing.T) {
		t.Parallel()

		f := createTestActivityService(t)
		err := f.result.Recorder.RecordAuditEvent(context.Background(), &service.AuditEvent{
			UserID: "not-a-uuid",
			Action: entity.ActionUserLoggedIn,
		})
		require.Error(t, err)
	})
}

func TestActivityService_ListMyActivity(t *testing.T) {
	t.Parallel()

	f := createTestActivityService(t)
	userID := uuid.New()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 5 {
		err := f.result.Recorder.RecordAuditEvent(context.Background(), &service.AuditEvent{
			UserID:     userID.String(),
			Action:     entity.ActionUserLoggedIn,
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := f.result.Usecase.ListMyActivity(context.Background(), userID, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.True(t, entries[0].Timestamp.After(entries[1].Timestamp))
	assert.True(t, entries[1].Timestamp.After(entries[2].Timestamp))

	// Other users see nothing.
	entries, err = f.result.Usecase.ListMyActivity(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
