package repository

import (
	"context"
	"errors"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostFilter struct {
	Status      entity.PostStatus
	AuthorID    string
	CommunityID string
	Tag         string
}

type ForumRepository interface {
	CreatePost(ctx context.Context, data *entity.Post) error
	GetPostByID(ctx context.Context, id string) (*entity.Post, error)
	GetPosts(ctx context.Context, filter PostFilter, offset, limit int) ([]entity.Post, error)
	UpdatePostByID(ctx context.Context, id string, data *entity.Post) error
	DeletePostByID(ctx context.Context, id string) error
	IncreaseViewCount(ctx context.Context, postID string) error
	IncreaseLikeCount(ctx context.Context, postID string) error
	CreateComment(ctx context.Context, data *entity.Comment) error
	GetCommentByID(ctx context.Context, id string) (*entity.Comment, error)
	GetComments(ctx context.Context, postID string, offset, limit int) ([]entity.Comment, error)
	DeleteCommentByID(ctx context.Context, id string) error
	CountPostsByAuthor(ctx context.Context, authorID string) (int64, error)
}

type forumRepository struct{}

func NewForumRepository() *forumRepository {
	return &forumRepository{}
}

func (r *forumRepository) CreatePost(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *forumRepository) GetPostByID(ctx context.Context, id string) (*entity.Post, error) {
	var result entity.Post
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *forumRepository) GetPosts(
	ctx context.Context, filter PostFilter, offset, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	tx := xcontext.DB(ctx).
		Offset(offset).Limit(limit).
		Order("created_at DESC")

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID)
	}

	if filter.CommunityID != "" {
		tx = tx.Where("community_id=?", filter.CommunityID)
	}

	if filter.Tag != "" {
		tx = tx.Where("tags LIKE ?", "%"+filter.Tag+"%")
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *forumRepository) UpdatePostByID(ctx context.Context, id string, data *entity.Post) error {
	return xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *forumRepository) DeletePostByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Post{}, "id=?", id).Error
}

func (r *forumRepository) IncreaseViewCount(ctx context.Context, postID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", postID).
		Update("views_count", gorm.Expr("views_count+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *forumRepository) IncreaseLikeCount(ctx context.Context, postID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", postID).
		Update("likes_count", gorm.Expr("likes_count+1"))

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

func (r *forumRepository) CreateComment(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *forumRepository) GetCommentByID(ctx context.Context, id string) (*entity.Comment, error) {
	var result entity.Comment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *forumRepository) GetComments(
	ctx context.Context, postID string, offset, limit int,
) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Offset(offset).Limit(limit).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *forumRepository) DeleteCommentByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Comment{}, "id=?", id).Error
}

func (r *forumRepository) CountPostsByAuthor(ctx context.Context, authorID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("author_id=?", authorID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
