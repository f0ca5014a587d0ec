package repository

import (
	"context"
	"errors"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ProjectFilter struct {
	Status   entity.ProjectStatus
	Category string
	AuthorID string
}

type ProjectRepository interface {
	Create(ctx context.Context, data *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	GetList(ctx context.Context, filter ProjectFilter, offset, limit int) ([]entity.Project, error)
	UpdateByID(ctx context.Context, id string, data *entity.Project) error
	DeleteByID(ctx context.Context, id string) error
	CreateVote(ctx context.Context, data *entity.Vote) error
	GetVote(ctx context.Context, projectID, userID string) (*entity.Vote, error)
	GetVotes(ctx context.Context, projectID string) ([]entity.Vote, error)
	IncreaseVoteCount(ctx context.Context, projectID string, voteFor bool) error
}

type projectRepository struct{}

func NewProjectRepository() *projectRepository {
	return &projectRepository{}
}

func (r *projectRepository) Create(ctx context.Context, data *entity.Project) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	var result entity.Project
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *projectRepository) GetList(
	ctx context.Context, filter ProjectFilter, offset, limit int,
) ([]entity.Project, error) {
	var result []entity.Project
	tx := xcontext.DB(ctx).
		Offset(offset).Limit(limit).
		Order("created_at DESC")

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *projectRepository) UpdateByID(ctx context.Context, id string, data *entity.Project) error {
	return xcontext.DB(ctx).
		Model(&entity.Project{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *projectRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Project{}, "id=?", id).Error
}

func (r *projectRepository) CreateVote(ctx context.Context, data *entity.Vote) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *projectRepository) GetVote(ctx context.Context, projectID, userID string) (*entity.Vote, error) {
	var result entity.Vote
	err := xcontext.DB(ctx).
		Where("project_id=? AND user_id=?", projectID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *projectRepository) GetVotes(ctx context.Context, projectID string) ([]entity.Vote, error) {
	var result []entity.Vote
	err := xcontext.DB(ctx).
		Where("project_id=?", projectID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *projectRepository) IncreaseVoteCount(ctx context.Context, projectID string, voteFor bool) error {
	column := "votes_against"
	if voteFor {
		column = "votes_for"
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Project{}).
		Where("id=?", projectID).
		Update(column, gorm.Expr(column+"+1"))

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
