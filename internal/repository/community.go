package repository

import (
	"context"
	"errors"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommunityFilter struct {
	Type       entity.CommunityType
	OwnerID    string
	ActiveOnly bool
}

type CommunityRepository interface {
	Create(ctx context.Context, data *entity.Community) error
	GetByID(ctx context.Context, id string) (*entity.Community, error)
	GetList(ctx context.Context, filter CommunityFilter, offset, limit int) ([]entity.Community, error)
	UpdateByID(ctx context.Context, id string, data *entity.Community) error
	DeleteByID(ctx context.Context, id string) error
	CreateMember(ctx context.Context, data *entity.CommunityMember) error
	GetActiveMember(ctx context.Context, communityID, userID string) (*entity.CommunityMember, error)
	GetMembers(ctx context.Context, communityID string, role entity.MembershipRole, offset, limit int) ([]entity.CommunityMember, error)
	UpdateMemberRole(ctx context.Context, communityID, userID string, role entity.MembershipRole) error
	DeactivateMember(ctx context.Context, communityID, userID string) error
	ChangeMemberCount(ctx context.Context, communityID string, delta int) error
}

type communityRepository struct{}

func NewCommunityRepository() *communityRepository {
	return &communityRepository{}
}

func (r *communityRepository) Create(ctx context.Context, data *entity.Community) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*entity.Community, error) {
	var result entity.Community
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityRepository) GetList(
	ctx context.Context, filter CommunityFilter, offset, limit int,
) ([]entity.Community, error) {
	var result []entity.Community
	tx := xcontext.DB(ctx).
		Offset(offset).Limit(limit).
		Order("created_at ASC")

	if filter.Type != "" {
		tx = tx.Where("type=?", filter.Type)
	}

	if filter.OwnerID != "" {
		tx = tx.Where("owner_id=?", filter.OwnerID)
	}

	if filter.ActiveOnly {
		tx = tx.Where("active=true")
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *communityRepository) UpdateByID(ctx context.Context, id string, data *entity.Community) error {
	return xcontext.DB(ctx).
		Model(&entity.Community{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *communityRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Community{}, "id=?", id).Error
}

func (r *communityRepository) CreateMember(ctx context.Context, data *entity.CommunityMember) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *communityRepository) GetActiveMember(
	ctx context.Context, communityID, userID string,
) (*entity.CommunityMember, error) {
	var result entity.CommunityMember
	err := xcontext.DB(ctx).
		Where("community_id=? AND user_id=? AND active=true", communityID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityRepository) GetMembers(
	ctx context.Context, communityID string, role entity.MembershipRole, offset, limit int,
) ([]entity.CommunityMember, error) {
	var result []entity.CommunityMember
	tx := xcontext.DB(ctx).
		Where("community_id=? AND active=true", communityID).
		Offset(offset).Limit(limit).
		Order("created_at ASC")

	if role != "" {
		tx = tx.Where("role=?", role)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *communityRepository) UpdateMemberRole(
	ctx context.Context, communityID, userID string, role entity.MembershipRole,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.CommunityMember{}).
		Where("community_id=? AND user_id=? AND active=true", communityID, userID).
		Update("role", role)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *communityRepository) DeactivateMember(ctx context.Context, communityID, userID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.CommunityMember{}).
		Where("community_id=? AND user_id=? AND active=true", communityID, userID).
		Update("active", false)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *communityRepository) ChangeMemberCount(
	ctx context.Context, communityID string, delta int,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Community{}).
		Where("id=?", communityID).
		Update("member_count", gorm.Expr("member_count+?", delta))

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
