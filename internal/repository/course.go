package repository

import (
	"context"
	"time"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CourseFilter struct {
	Category   string
	Level      entity.CourseLevel
	ActiveOnly bool
}

type CourseRepository interface {
	Create(ctx context.Context, data *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	GetList(ctx context.Context, filter CourseFilter, offset, limit int) ([]entity.Course, error)
	UpdateByID(ctx context.Context, id string, data *entity.Course) error
	DeleteByID(ctx context.Context, id string) error
	CreateEnrollment(ctx context.Context, data *entity.CourseEnrollment) error
	GetEnrollment(ctx context.Context, courseID, userID string) (*entity.CourseEnrollment, error)
	GetEnrollmentsByUser(ctx context.Context, userID string) ([]entity.CourseEnrollment, error)
	GetEnrollmentsByCourse(ctx context.Context, courseID string) ([]entity.CourseEnrollment, error)
	UpdateProgress(ctx context.Context, id string, progress int) error
	Complete(ctx context.Context, id string, at time.Time) error
}

type courseRepository struct{}

func NewCourseRepository() *courseRepository {
	return &courseRepository{}
}

func (r *courseRepository) Create(ctx context.Context, data *entity.Course) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	var result entity.Course
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *courseRepository) GetList(
	ctx context.Context, filter CourseFilter, offset, limit int,
) ([]entity.Course, error) {
	var result []entity.Course
	tx := xcontext.DB(ctx).
		Offset(offset).Limit(limit).
		Order("created_at ASC")

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	if filter.Level != "" {
		tx = tx.Where("level=?", filter.Level)
	}

	if filter.ActiveOnly {
		tx = tx.Where("active=true")
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *courseRepository) UpdateByID(ctx context.Context, id string, data *entity.Course) error {
	return xcontext.DB(ctx).
		Model(&entity.Course{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *courseRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Course{}, "id=?", id).Error
}

func (r *courseRepository) CreateEnrollment(ctx context.Context, data *entity.CourseEnrollment) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *courseRepository) GetEnrollment(
	ctx context.Context, courseID, userID string,
) (*entity.CourseEnrollment, error) {
	var result entity.CourseEnrollment
	err := xcontext.DB(ctx).
		Where("course_id=? AND user_id=?", courseID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *courseRepository) GetEnrollmentsByUser(
	ctx context.Context, userID string,
) ([]entity.CourseEnrollment, error) {
	var result []entity.CourseEnrollment
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *courseRepository) GetEnrollmentsByCourse(
	ctx context.Context, courseID string,
) ([]entity.CourseEnrollment, error) {
	var result []entity.CourseEnrollment
	err := xcontext.DB(ctx).
		Where("course_id=?", courseID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *courseRepository) UpdateProgress(ctx context.Context, id string, progress int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.CourseEnrollment{}).
		Where("id=?", id).
		Update("progress", progress)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *courseRepository) Complete(ctx context.Context, id string, at time.Time) error {
	// The completion check keeps a double completion from rewriting the
	// original timestamp.
	tx := xcontext.DB(ctx).
		Model(&entity.CourseEnrollment{}).
		Where("id=? AND is_completed=false", id).
		Updates(map[string]any{
			"is_completed": true,
			"progress":     100,
			"completed_at": at,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
