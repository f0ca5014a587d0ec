package gamification

import (
	"context"
	"testing"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Engine_Award_AccumulatesPoints(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	badgeRepo := repository.NewBadgeRepository()
	engine := NewEngine(pointRepo, badgeRepo, nil)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	result, err := engine.Award(ctx, user.ID, "forum_post", "post-1", "")
	require.NoError(t, err)
	require.Equal(t, 10, result.Points)
	require.Equal(t, 10, result.Level.TotalPoints)
	require.Equal(t, 1, result.Level.Level)

	result, err = engine.Award(ctx, user.ID, "course_completion", "course-1", "")
	require.NoError(t, err)
	require.Equal(t, 50, result.Points)
	require.Equal(t, 60, result.Level.TotalPoints)
	require.Equal(t, 60, result.Level.ExperiencePoints)
	require.Equal(t, 1, result.Level.Level)

	records, err := pointRepo.GetRecordsByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func Test_Engine_Award_RaisesLevelOnCrossing(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	badgeRepo := repository.NewBadgeRepository()
	engine := NewEngine(pointRepo, badgeRepo, nil)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	// 9 posts, 1 comment and 2 likes land exactly one point short of
	// level 2.
	for i := 0; i < 9; i++ {
		_, err := engine.Award(ctx, user.ID, "forum_post", "", "")
		require.NoError(t, err)
	}

	_, err = engine.Award(ctx, user.ID, "forum_comment", "", "")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := engine.Award(ctx, user.ID, "forum_like", "", "")
		require.NoError(t, err)
	}

	userLevel, err := pointRepo.GetLevel(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 99, userLevel.TotalPoints)
	require.Equal(t, 1, userLevel.Level)

	result, err := engine.Award(ctx, user.ID, "forum_comment", "", "")
	require.NoError(t, err)
	require.Equal(t, 104, result.Level.TotalPoints)
	require.Equal(t, 2, result.Level.Level)
}

func Test_Engine_Award_UnknownSource(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	badgeRepo := repository.NewBadgeRepository()
	engine := NewEngine(pointRepo, badgeRepo, nil)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	result, err := engine.Award(ctx, user.ID, "unknown_action", "", "")
	require.NoError(t, err)
	require.Equal(t, 0, result.Points)
	require.Equal(t, 0, result.Level.TotalPoints)
	require.Equal(t, 1, result.Level.Level)

	// The action is still traceable in the ledger.
	records, err := pointRepo.GetRecordsByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 0, records[0].Points)
	require.Equal(t, "unknown_action", records[0].Source)
}

func Test_Engine_Award_GrantsBadgeAtThreshold(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	badgeRepo := repository.NewBadgeRepository()
	engine := NewEngine(pointRepo, badgeRepo, nil)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	badge, err := testutil.SampleBadge(ctx, &entity.Badge{PointsRequired: 8})
	require.NoError(t, err)

	result, err := engine.Award(ctx, user.ID, "community_join", "community-1", "")
	require.NoError(t, err)
	require.Equal(t, 8, result.Points)
	require.Len(t, result.NewBadges, 1)
	require.Equal(t, badge.ID, result.NewBadges[0].ID)

	userBadges, err := badgeRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, userBadges, 1)
	require.False(t, userBadges[0].EarnedAt.IsZero())
}

func Test_Engine_Award_BadgeIsNeverDuplicated(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	badgeRepo := repository.NewBadgeRepository()
	engine := NewEngine(pointRepo, badgeRepo, nil)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = testutil.SampleBadge(ctx, &entity.Badge{PointsRequired: 5})
	require.NoError(t, err)

	result, err := engine.Award(ctx, user.ID, "forum_post", "", "")
	require.NoError(t, err)
	require.Len(t, result.NewBadges, 1)

	// Staying above the threshold never grants the badge again.
	result, err = engine.Award(ctx, user.ID, "forum_post", "", "")
	require.NoError(t, err)
	require.Len(t, result.NewBadges, 0)

	userBadges, err := badgeRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, userBadges, 1)
}

func Test_Engine_Award_NotifiesLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	badgeRepo := repository.NewBadgeRepository()

	notified := []int64{}
	engine := NewEngine(pointRepo, badgeRepo, leaderboardFunc(func(value int64) {
		notified = append(notified, value)
	}))

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = engine.Award(ctx, user.ID, "forum_post", "", "")
	require.NoError(t, err)

	// Zero-point awards must not touch the ranking.
	_, err = engine.Award(ctx, user.ID, "unknown_action", "", "")
	require.NoError(t, err)

	require.Equal(t, []int64{10}, notified)
}

type leaderboardFunc func(value int64)

func (f leaderboardFunc) ChangePointLeaderboard(_ context.Context, _ string, value int64) error {
	f(value)
	return nil
}
