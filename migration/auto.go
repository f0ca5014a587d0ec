package migration

import (
	"context"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/pkg/xcontext"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Project{},
		&entity.Vote{},
		&entity.Event{},
		&entity.EventRegistration{},
		&entity.Community{},
		&entity.CommunityMember{},
		&entity.Post{},
		&entity.Comment{},
		&entity.Course{},
		&entity.CourseEnrollment{},
		&entity.Badge{},
		&entity.UserBadge{},
		&entity.UserLevel{},
		&entity.PointRecord{},
	)
}
