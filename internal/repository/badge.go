package repository

import (
	"context"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	Upsert(ctx context.Context, data *entity.Badge) error
	GetByID(ctx context.Context, id string) (*entity.Badge, error)
	GetByName(ctx context.Context, name string) (*entity.Badge, error)
	GetAll(ctx context.Context) ([]entity.Badge, error)
	GetEligible(ctx context.Context, userID string, totalPoints int) ([]entity.Badge, error)
	GrantToUser(ctx context.Context, data *entity.UserBadge) error
	GetByUserID(ctx context.Context, userID string) ([]entity.UserBadge, error)
	GetRecentByUserID(ctx context.Context, userID string, limit int) ([]entity.UserBadge, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type badgeRepository struct{}

func NewBadgeRepository() *badgeRepository {
	return &badgeRepository{}
}

func (r *badgeRepository) Upsert(ctx context.Context, data *entity.Badge) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"description", "icon", "points_required", "category",
			}),
		}).Create(data).Error
}

func (r *badgeRepository) GetByID(ctx context.Context, id string) (*entity.Badge, error) {
	var result entity.Badge
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *badgeRepository) GetByName(ctx context.Context, name string) (*entity.Badge, error) {
	var result entity.Badge
	if err := xcontext.DB(ctx).Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *badgeRepository) GetAll(ctx context.Context) ([]entity.Badge, error) {
	var result []entity.Badge
	err := xcontext.DB(ctx).
		Order("points_required ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetEligible returns badges the user reached but was not yet granted.
func (r *badgeRepository) GetEligible(
	ctx context.Context, userID string, totalPoints int,
) ([]entity.Badge, error) {
	var result []entity.Badge
	err := xcontext.DB(ctx).
		Where("points_required <= ?", totalPoints).
		Where(
			"id NOT IN (?)",
			xcontext.DB(ctx).
				Model(&entity.UserBadge{}).
				Select("badge_id").
				Where("user_id=?", userID),
		).
		Order("points_required ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GrantToUser keys on (user, badge), so a concurrent double grant becomes
// a no-op instead of a duplicate row.
func (r *badgeRepository) GrantToUser(ctx context.Context, data *entity.UserBadge) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(data).Error
}

func (r *badgeRepository) GetByUserID(ctx context.Context, userID string) ([]entity.UserBadge, error) {
	var result []entity.UserBadge
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("earned_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.UserBadge{}).
		Where("user_id=?", userID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *badgeRepository) GetRecentByUserID(
	ctx context.Context, userID string, limit int,
) ([]entity.UserBadge, error) {
	var result []entity.UserBadge
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("earned_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
