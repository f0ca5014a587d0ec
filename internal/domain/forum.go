package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/coopnet-lab/backend/internal/common"
	"github.com/coopnet-lab/backend/internal/domain/gamification"
	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/model"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/enum"
	"github.com/coopnet-lab/backend/pkg/errorx"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	sourceForumPost    = "forum_post"
	sourceForumComment = "forum_comment"
	sourceForumLike    = "forum_like"
)

type ForumDomain interface {
	CreatePost(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error)
	GetPost(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error)
	GetPosts(ctx context.Context, req *model.GetPostsRequest) (*model.GetPostsResponse, error)
	UpdatePost(ctx context.Context, req *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	DeletePost(ctx context.Context, req *model.DeletePostRequest) (*model.DeletePostResponse, error)
	LikePost(ctx context.Context, req *model.LikePostRequest) (*model.LikePostResponse, error)
	CreateComment(ctx context.Context, req *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetComments(ctx context.Context, req *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
	DeleteComment(ctx context.Context, req *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
}

type forumDomain struct {
	forumRepo repository.ForumRepository
	engine    *gamification.Engine
}

func NewForumDomain(
	forumRepo repository.ForumRepository,
	engine *gamification.Engine,
) *forumDomain {
	return &forumDomain{forumRepo: forumRepo, engine: engine}
}

func (d *forumDomain) CreatePost(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty content")
	}

	status := entity.PostStatusPublished
	if req.Status != "" {
		var err error
		status, err = enum.ToEnum[entity.PostStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid post status %s", req.Status)
		}
	}

	userID := xcontext.RequestUserID(ctx)
	post := &entity.Post{
		Base:     entity.Base{ID: uuid.NewString()},
		Title:    req.Title,
		Content:  req.Content,
		Status:   status,
		AuthorID: userID,
		Tags:     req.Tags,
	}

	if req.CommunityID != "" {
		post.CommunityID = sql.NullString{Valid: true, String: req.CommunityID}
	}

	if status == entity.PostStatusPublished {
		post.PublishedAt = sql.NullTime{Valid: true, Time: time.Now()}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.forumRepo.CreatePost(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.engine.Award(ctx, userID, sourceForumPost, post.ID, "Created post "+post.Title); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreatePostResponse{Post: model.ConvertPost(post)}, nil
}

// GetPost also counts the read. The counter moves on every read, there is
// no per-user dedup.
func (d *forumDomain) GetPost(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	post, err := d.forumRepo.GetPostByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.forumRepo.IncreaseViewCount(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot increase view count: %v", err)
	} else {
		post.ViewsCount++
	}

	return &model.GetPostResponse{Post: model.ConvertPost(post)}, nil
}

func (d *forumDomain) GetPosts(
	ctx context.Context, req *model.GetPostsRequest,
) (*model.GetPostsResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.PostFilter{
		AuthorID:    req.AuthorID,
		CommunityID: req.CommunityID,
		Tag:         req.Tag,
	}

	if req.Status != "" {
		filter.Status, err = enum.ToEnum[entity.PostStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid post status %s", req.Status)
		}
	}

	posts, err := d.forumRepo.GetPosts(ctx, filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of posts: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Post{}
	for i := range posts {
		resp = append(resp, model.ConvertPost(&posts[i]))
	}

	return &model.GetPostsResponse{Posts: resp}, nil
}

func (d *forumDomain) UpdatePost(
	ctx context.Context, req *model.UpdatePostRequest,
) (*model.UpdatePostResponse, error) {
	post, err := d.forumRepo.GetPostByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can update the post")
	}

	changes := entity.Post{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}

	if req.Status != "" {
		changes.Status, err = enum.ToEnum[entity.PostStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid post status %s", req.Status)
		}

		// The publication timestamp is set once, on the first transition
		// out of draft.
		if changes.Status == entity.PostStatusPublished && !post.PublishedAt.Valid {
			changes.PublishedAt = sql.NullTime{Valid: true, Time: time.Now()}
		}
	}

	if err := d.forumRepo.UpdatePostByID(ctx, req.ID, &changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update post: %v", err)
		return nil, errorx.Unknown
	}

	post, err = d.forumRepo.GetPostByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdatePostResponse{Post: model.ConvertPost(post)}, nil
}

func (d *forumDomain) DeletePost(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	post, err := d.forumRepo.GetPostByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete the post")
	}

	if err := d.forumRepo.DeletePostByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeletePostResponse{}, nil
}

func (d *forumDomain) LikePost(
	ctx context.Context, req *model.LikePostRequest,
) (*model.LikePostResponse, error) {
	post, err := d.forumRepo.GetPostByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.forumRepo.IncreaseLikeCount(ctx, req.PostID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase like count: %v", err)
		return nil, errorx.Unknown
	}

	// The like reward goes to the author of the post, not the liker.
	if _, err := d.engine.Award(ctx, post.AuthorID, sourceForumLike, post.ID, "Received a like"); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.LikePostResponse{}, nil
}

func (d *forumDomain) CreateComment(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty content")
	}

	if _, err := d.forumRepo.GetPostByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if req.ParentID != "" {
		parent, err := d.forumRepo.GetCommentByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found parent comment")
			}

			xcontext.Logger(ctx).Errorf("Cannot get parent comment: %v", err)
			return nil, errorx.Unknown
		}

		if parent.PostID != req.PostID {
			return nil, errorx.New(errorx.BadRequest, "The parent comment belongs to another post")
		}
	}

	userID := xcontext.RequestUserID(ctx)
	comment := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		PostID:   req.PostID,
		AuthorID: userID,
		Content:  req.Content,
	}

	if req.ParentID != "" {
		comment.ParentID = sql.NullString{Valid: true, String: req.ParentID}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.forumRepo.CreateComment(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.engine.Award(ctx, userID, sourceForumComment, comment.ID, "Commented on a post"); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateCommentResponse{Comment: model.ConvertComment(comment)}, nil
}

func (d *forumDomain) GetComments(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	comments, err := d.forumRepo.GetComments(ctx, req.PostID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Comment{}
	for i := range comments {
		resp = append(resp, model.ConvertComment(&comments[i]))
	}

	return &model.GetCommentsResponse{Comments: resp}, nil
}

func (d *forumDomain) DeleteComment(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.forumRepo.GetCommentByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete the comment")
	}

	if err := d.forumRepo.DeleteCommentByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCommentResponse{}, nil
}
