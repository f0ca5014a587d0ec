package statistic

import (
	"testing"

	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_leaderboard_GetTop_WarmsFromDatabase(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	leaderboard := New(pointRepo, testutil.NewMockRedisClient())

	require.NoError(t, pointRepo.EnsureLevel(ctx, "alice"))
	require.NoError(t, pointRepo.AddPoints(ctx, "alice", 120))
	require.NoError(t, pointRepo.EnsureLevel(ctx, "bob"))
	require.NoError(t, pointRepo.AddPoints(ctx, "bob", 40))
	require.NoError(t, pointRepo.EnsureLevel(ctx, "carol"))
	require.NoError(t, pointRepo.AddPoints(ctx, "carol", 300))

	entries, err := leaderboard.GetTop(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.Equal(t, Entry{UserID: "carol", TotalPoints: 300, Rank: 1}, entries[0])
	require.Equal(t, Entry{UserID: "alice", TotalPoints: 120, Rank: 2}, entries[1])
	require.Equal(t, Entry{UserID: "bob", TotalPoints: 40, Rank: 3}, entries[2])
}

func Test_leaderboard_GetTop_TieBreak(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	leaderboard := New(pointRepo, testutil.NewMockRedisClient())

	require.NoError(t, pointRepo.EnsureLevel(ctx, "zoe"))
	require.NoError(t, pointRepo.AddPoints(ctx, "zoe", 50))
	require.NoError(t, pointRepo.EnsureLevel(ctx, "alice"))
	require.NoError(t, pointRepo.AddPoints(ctx, "alice", 50))
	require.NoError(t, pointRepo.EnsureLevel(ctx, "bob"))
	require.NoError(t, pointRepo.AddPoints(ctx, "bob", 80))

	// Redis hands back the equal scores in reverse lexical order; the
	// leaderboard must still rank them by user id ascending.
	entries, err := leaderboard.GetTop(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, Entry{UserID: "bob", TotalPoints: 80, Rank: 1}, entries[0])
	require.Equal(t, Entry{UserID: "alice", TotalPoints: 50, Rank: 2}, entries[1])
	require.Equal(t, Entry{UserID: "zoe", TotalPoints: 50, Rank: 3}, entries[2])
}

func Test_leaderboard_GetTop_Pagination(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	leaderboard := New(pointRepo, testutil.NewMockRedisClient())

	require.NoError(t, pointRepo.EnsureLevel(ctx, "alice"))
	require.NoError(t, pointRepo.AddPoints(ctx, "alice", 30))
	require.NoError(t, pointRepo.EnsureLevel(ctx, "bob"))
	require.NoError(t, pointRepo.AddPoints(ctx, "bob", 20))
	require.NoError(t, pointRepo.EnsureLevel(ctx, "carol"))
	require.NoError(t, pointRepo.AddPoints(ctx, "carol", 10))

	entries, err := leaderboard.GetTop(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, Entry{UserID: "bob", TotalPoints: 20, Rank: 2}, entries[0])

	entries, err = leaderboard.GetTop(ctx, 10, 5)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func Test_leaderboard_ChangePointLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	redisClient := testutil.NewMockRedisClient()
	leaderboard := New(pointRepo, redisClient)

	require.NoError(t, pointRepo.EnsureLevel(ctx, "alice"))
	require.NoError(t, pointRepo.AddPoints(ctx, "alice", 10))

	// Before the key is warmed an increment is a no-op. The next read
	// rebuilds the ranking from the database instead.
	require.NoError(t, leaderboard.ChangePointLeaderboard(ctx, "alice", 10))

	entries, err := leaderboard.GetTop(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 10, entries[0].TotalPoints)

	// After warming, increments move the score in place.
	require.NoError(t, pointRepo.AddPoints(ctx, "alice", 5))
	require.NoError(t, leaderboard.ChangePointLeaderboard(ctx, "alice", 5))

	entries, err = leaderboard.GetTop(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 15, entries[0].TotalPoints)
}

func Test_leaderboard_GetRank(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	leaderboard := New(pointRepo, testutil.NewMockRedisClient())

	require.NoError(t, pointRepo.EnsureLevel(ctx, "alice"))
	require.NoError(t, pointRepo.AddPoints(ctx, "alice", 100))
	require.NoError(t, pointRepo.EnsureLevel(ctx, "bob"))
	require.NoError(t, pointRepo.AddPoints(ctx, "bob", 50))

	rank, err := leaderboard.GetRank(ctx, "bob")
	require.NoError(t, err)
	require.EqualValues(t, 2, rank)

	// Unknown members rank as zero instead of failing the request.
	rank, err = leaderboard.GetRank(ctx, "nobody")
	require.NoError(t, err)
	require.EqualValues(t, 0, rank)
}
