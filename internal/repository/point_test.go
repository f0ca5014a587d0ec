package repository_test

import (
	"testing"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_pointRepository_EnsureLevel_Idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewPointRepository()

	require.NoError(t, repo.EnsureLevel(ctx, "alice"))
	require.NoError(t, repo.AddPoints(ctx, "alice", 42))

	// A second ensure must not reset the accumulated points.
	require.NoError(t, repo.EnsureLevel(ctx, "alice"))

	level, err := repo.GetLevel(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 42, level.TotalPoints)
	require.Equal(t, 1, level.Level)
}

func Test_pointRepository_AddPoints_UnknownUser(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewPointRepository()

	err := repo.AddPoints(ctx, "nobody", 10)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_pointRepository_RaiseLevel_Monotonic(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewPointRepository()

	require.NoError(t, repo.EnsureLevel(ctx, "alice"))
	require.NoError(t, repo.RaiseLevel(ctx, "alice", 3))

	level, err := repo.GetLevel(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 3, level.Level)

	// A stale writer with a lower level changes nothing.
	require.NoError(t, repo.RaiseLevel(ctx, "alice", 2))

	level, err = repo.GetLevel(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 3, level.Level)
}

func Test_pointRepository_GetRecordsByUserID(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewPointRepository()

	for _, source := range []string{"forum_post", "forum_comment", "forum_like"} {
		err := repo.CreateRecord(ctx, &entity.PointRecord{
			Base:   entity.Base{ID: uuid.NewString()},
			UserID: "alice",
			Points: 1,
			Source: source,
		})
		require.NoError(t, err)
	}

	records, err := repo.GetRecordsByUserID(ctx, "alice", 0, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = repo.GetRecordsByUserID(ctx, "alice", 0, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
}
