package migration_test

import (
	"testing"

	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/migration"
	"github.com/coopnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestSeedBadges(t *testing.T) {
	ctx := testutil.MockContext()
	badgeRepo := repository.NewBadgeRepository()

	require.NoError(t, migration.SeedBadges(ctx, badgeRepo))

	badges, err := badgeRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, badges, 9)

	// The catalog comes back ordered by threshold.
	for i := 1; i < len(badges); i++ {
		require.LessOrEqual(t, badges[i-1].PointsRequired, badges[i].PointsRequired)
	}

	// Seeding again upserts by name instead of duplicating rows.
	require.NoError(t, migration.SeedBadges(ctx, badgeRepo))

	badges, err = badgeRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, badges, 9)
}
