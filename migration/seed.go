package migration

import (
	"context"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/google/uuid"
)

// defaultBadges is the catalog shipped with a fresh installation. Seeding
// upserts by name, so renumbering thresholds here propagates on the next
// deploy without duplicating rows.
var defaultBadges = []entity.Badge{
	{Name: "First Steps", Description: "Earned your first points", Icon: "seedling", PointsRequired: 5, Category: "starter"},
	{Name: "Newcomer", Description: "Joined your first community", Icon: "door-open", PointsRequired: 8, Category: "starter"},
	{Name: "Contributor", Description: "Reached 50 points", Icon: "pencil", PointsRequired: 50, Category: "engagement"},
	{Name: "Active Voice", Description: "Reached 100 points", Icon: "megaphone", PointsRequired: 100, Category: "engagement"},
	{Name: "Community Builder", Description: "Reached 250 points", Icon: "hammer", PointsRequired: 250, Category: "engagement"},
	{Name: "Dedicated Learner", Description: "Reached 500 points", Icon: "book", PointsRequired: 500, Category: "learning"},
	{Name: "Cooperative Champion", Description: "Reached 1000 points", Icon: "trophy", PointsRequired: 1000, Category: "achievement"},
	{Name: "Pillar of the Cooperative", Description: "Reached 3500 points", Icon: "landmark", PointsRequired: 3500, Category: "achievement"},
	{Name: "Living Legend", Description: "Reached 8000 points", Icon: "crown", PointsRequired: 8000, Category: "achievement"},
}

func SeedBadges(ctx context.Context, badgeRepo repository.BadgeRepository) error {
	for i := range defaultBadges {
		badge := defaultBadges[i]
		badge.ID = uuid.NewString()
		if err := badgeRepo.Upsert(ctx, &badge); err != nil {
			return err
		}
	}

	return nil
}
