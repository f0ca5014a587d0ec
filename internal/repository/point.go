package repository

import (
	"context"
	"errors"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PointRepository interface {
	CreateRecord(ctx context.Context, data *entity.PointRecord) error
	GetRecordsByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.PointRecord, error)
	EnsureLevel(ctx context.Context, userID string) error
	GetLevel(ctx context.Context, userID string) (*entity.UserLevel, error)
	AddPoints(ctx context.Context, userID string, points int) error
	RaiseLevel(ctx context.Context, userID string, level int) error
	GetTopByPoints(ctx context.Context, offset, limit int) ([]entity.UserLevel, error)
	CountLevels(ctx context.Context) (int64, error)
}

type pointRepository struct{}

func NewPointRepository() *pointRepository {
	return &pointRepository{}
}

func (r *pointRepository) CreateRecord(ctx context.Context, data *entity.PointRecord) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *pointRepository) GetRecordsByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.PointRecord, error) {
	var result []entity.PointRecord
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// EnsureLevel creates the progress row on first touch. The primary key on
// user_id makes concurrent first touches collapse into one row.
func (r *pointRepository) EnsureLevel(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.UserLevel{UserID: userID, Level: 1}).Error
}

func (r *pointRepository) GetLevel(ctx context.Context, userID string) (*entity.UserLevel, error) {
	var result entity.UserLevel
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pointRepository) AddPoints(ctx context.Context, userID string, points int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserLevel{}).
		Where("user_id=?", userID).
		Updates(map[string]any{
			"total_points":      gorm.Expr("total_points+?", points),
			"experience_points": gorm.Expr("experience_points+?", points),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// RaiseLevel only moves the level up. A stale writer that computed a
// lower level loses the race and changes nothing.
func (r *pointRepository) RaiseLevel(ctx context.Context, userID string, level int) error {
	return xcontext.DB(ctx).
		Model(&entity.UserLevel{}).
		Where("user_id=? AND level < ?", userID, level).
		Update("level", level).Error
}

func (r *pointRepository) GetTopByPoints(
	ctx context.Context, offset, limit int,
) ([]entity.UserLevel, error) {
	var result []entity.UserLevel
	err := xcontext.DB(ctx).
		Order("total_points DESC, user_id ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointRepository) CountLevels(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.UserLevel{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}
