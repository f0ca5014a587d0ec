package domain

import (
	"context"
	"errors"

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
	sourceCommunityCreate = "community_create"
	sourceCommunityJoin   = "community_join"
)

type CommunityDomain interface {
	Create(ctx context.Context, req *model.CreateCommunityRequest) (*model.CreateCommunityResponse, error)
	Get(ctx context.Context, req *model.GetCommunityRequest) (*model.GetCommunityResponse, error)
	GetList(ctx context.Context, req *model.GetCommunitiesRequest) (*model.GetCommunitiesResponse, error)
	Update(ctx context.Context, req *model.UpdateCommunityRequest) (*model.UpdateCommunityResponse, error)
	Delete(ctx context.Context, req *model.DeleteCommunityRequest) (*model.DeleteCommunityResponse, error)
	Join(ctx context.Context, req *model.JoinCommunityRequest) (*model.JoinCommunityResponse, error)
	Leave(ctx context.Context, req *model.LeaveCommunityRequest) (*model.LeaveCommunityResponse, error)
	GetMembers(ctx context.Context, req *model.GetCommunityMembersRequest) (*model.GetCommunityMembersResponse, error)
	UpdateMemberRole(ctx context.Context, req *model.UpdateCommunityMemberRoleRequest) (*model.UpdateCommunityMemberRoleResponse, error)
	RemoveMember(ctx context.Context, req *model.RemoveCommunityMemberRequest) (*model.RemoveCommunityMemberResponse, error)
}

type communityDomain struct {
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
	engine        *gamification.Engine
	roleVerifier  *common.CommunityRoleVerifier
}

func NewCommunityDomain(
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	engine *gamification.Engine,
) *communityDomain {
	return &communityDomain{
		communityRepo: communityRepo,
		userRepo:      userRepo,
		engine:        engine,
		roleVerifier:  common.NewCommunityRoleVerifier(communityRepo),
	}
}

func (d *communityDomain) Create(
	ctx context.Context, req *model.CreateCommunityRequest,
) (*model.CreateCommunityResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	userID := xcontext.RequestUserID(ctx)
	if _, err := d.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	communityType := entity.CommunityTypePublic
	if req.Type != "" {
		var err error
		communityType, err = enum.ToEnum[entity.CommunityType](req.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid community type %s", req.Type)
		}
	}

	community := &entity.Community{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		Type:        communityType,
		OwnerID:     userID,
		MaxMembers:  req.MaxMembers,
		MemberCount: 1,
		Active:      true,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.communityRepo.Create(ctx, community); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community: %v", err)
		return nil, errorx.Unknown
	}

	owner := &entity.CommunityMember{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: community.ID,
		UserID:      userID,
		Role:        entity.MembershipRoleOwner,
		Active:      true,
	}

	if err := d.communityRepo.CreateMember(ctx, owner); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create owner membership: %v", err)
		return nil, errorx.Unknown
	}

	_, err := d.engine.Award(ctx, userID, sourceCommunityCreate, community.ID, "Created community "+community.Name)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateCommunityResponse{Community: model.ConvertCommunity(community)}, nil
}

func (d *communityDomain) Get(
	ctx context.Context, req *model.GetCommunityRequest,
) (*model.GetCommunityResponse, error) {
	community, err := d.communityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCommunityResponse{Community: model.ConvertCommunity(community)}, nil
}

func (d *communityDomain) GetList(
	ctx context.Context, req *model.GetCommunitiesRequest,
) (*model.GetCommunitiesResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.CommunityFilter{OwnerID: req.OwnerID, ActiveOnly: true}
	if req.Type != "" {
		filter.Type, err = enum.ToEnum[entity.CommunityType](req.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid community type %s", req.Type)
		}
	}

	communities, err := d.communityRepo.GetList(ctx, filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of communities: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Community{}
	for i := range communities {
		resp = append(resp, model.ConvertCommunity(&communities[i]))
	}

	return &model.GetCommunitiesResponse{Communities: resp}, nil
}

func (d *communityDomain) Update(
	ctx context.Context, req *model.UpdateCommunityRequest,
) (*model.UpdateCommunityResponse, error) {
	err := d.roleVerifier.Verify(ctx, req.ID, entity.MembershipRoleOwner, entity.MembershipRoleAdmin)
	if err != nil {
		return nil, err
	}

	changes := entity.Community{
		Name:        req.Name,
		Description: req.Description,
		MaxMembers:  req.MaxMembers,
	}

	if err := d.communityRepo.UpdateByID(ctx, req.ID, &changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update community: %v", err)
		return nil, errorx.Unknown
	}

	community, err := d.communityRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCommunityResponse{Community: model.ConvertCommunity(community)}, nil
}

func (d *communityDomain) Delete(
	ctx context.Context, req *model.DeleteCommunityRequest,
) (*model.DeleteCommunityResponse, error) {
	if err := d.roleVerifier.Verify(ctx, req.ID, entity.MembershipRoleOwner); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.communityRepo.UpdateByID(ctx, req.ID, &entity.Community{Active: false}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deactivate community: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete community: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteCommunityResponse{}, nil
}

func (d *communityDomain) Join(
	ctx context.Context, req *model.JoinCommunityRequest,
) (*model.JoinCommunityResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	community, err := d.communityRepo.GetByID(ctx, req.CommunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	if !community.Active {
		return nil, errorx.New(errorx.Unavailable, "The community is no longer active")
	}

	if community.Type == entity.CommunityTypePrivate {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot join a private community without an invitation")
	}

	if community.MaxMembers > 0 && community.MemberCount >= community.MaxMembers {
		return nil, errorx.New(errorx.Unavailable, "The community is full")
	}

	_, err = d.communityRepo.GetActiveMember(ctx, req.CommunityID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already joined this community")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get community member: %v", err)
		return nil, errorx.Unknown
	}

	member := &entity.CommunityMember{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: req.CommunityID,
		UserID:      userID,
		Role:        entity.MembershipRoleMember,
		Active:      true,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.communityRepo.CreateMember(ctx, member); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community member: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.ChangeMemberCount(ctx, req.CommunityID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase member count: %v", err)
		return nil, errorx.Unknown
	}

	_, err = d.engine.Award(ctx, userID, sourceCommunityJoin, community.ID, "Joined community "+community.Name)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.JoinCommunityResponse{Member: model.ConvertCommunityMember(member)}, nil
}

func (d *communityDomain) Leave(
	ctx context.Context, req *model.LeaveCommunityRequest,
) (*model.LeaveCommunityResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	member, err := d.communityRepo.GetActiveMember(ctx, req.CommunityID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not a member of this community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community member: %v", err)
		return nil, errorx.Unknown
	}

	if member.Role == entity.MembershipRoleOwner {
		return nil, errorx.New(errorx.PermissionDenied, "The owner cannot leave their own community")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.communityRepo.DeactivateMember(ctx, req.CommunityID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deactivate community member: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.ChangeMemberCount(ctx, req.CommunityID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease member count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.LeaveCommunityResponse{}, nil
}

func (d *communityDomain) GetMembers(
	ctx context.Context, req *model.GetCommunityMembersRequest,
) (*model.GetCommunityMembersResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	var role entity.MembershipRole
	if req.Role != "" {
		role, err = enum.ToEnum[entity.MembershipRole](req.Role)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid membership role %s", req.Role)
		}
	}

	members, err := d.communityRepo.GetMembers(ctx, req.CommunityID, role, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community members: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.CommunityMember{}
	for i := range members {
		resp = append(resp, model.ConvertCommunityMember(&members[i]))
	}

	return &model.GetCommunityMembersResponse{Members: resp}, nil
}

func (d *communityDomain) UpdateMemberRole(
	ctx context.Context, req *model.UpdateCommunityMemberRoleRequest,
) (*model.UpdateCommunityMemberRoleResponse, error) {
	err := d.roleVerifier.Verify(ctx, req.CommunityID, entity.MembershipRoleOwner, entity.MembershipRoleAdmin)
	if err != nil {
		return nil, err
	}

	role, err := enum.ToEnum[entity.MembershipRole](req.Role)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid membership role %s", req.Role)
	}

	if role == entity.MembershipRoleOwner {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot assign the owner role")
	}

	member, err := d.communityRepo.GetActiveMember(ctx, req.CommunityID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not a member of this community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community member: %v", err)
		return nil, errorx.Unknown
	}

	if member.Role == entity.MembershipRoleOwner {
		return nil, errorx.New(errorx.PermissionDenied, "The owner role cannot be changed")
	}

	if err := d.communityRepo.UpdateMemberRole(ctx, req.CommunityID, req.UserID, role); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update member role: %v", err)
		return nil, errorx.Unknown
	}

	member.Role = role
	return &model.UpdateCommunityMemberRoleResponse{Member: model.ConvertCommunityMember(member)}, nil
}

func (d *communityDomain) RemoveMember(
	ctx context.Context, req *model.RemoveCommunityMemberRequest,
) (*model.RemoveCommunityMemberResponse, error) {
	if req.UserID != xcontext.RequestUserID(ctx) {
		err := d.roleVerifier.Verify(ctx, req.CommunityID, entity.MembershipRoleOwner, entity.MembershipRoleAdmin)
		if err != nil {
			return nil, err
		}
	}

	member, err := d.communityRepo.GetActiveMember(ctx, req.CommunityID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not a member of this community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community member: %v", err)
		return nil, errorx.Unknown
	}

	if member.Role == entity.MembershipRoleOwner {
		return nil, errorx.New(errorx.PermissionDenied, "The owner cannot be removed from their own community")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.communityRepo.DeactivateMember(ctx, req.CommunityID, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deactivate community member: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.ChangeMemberCount(ctx, req.CommunityID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease member count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.RemoveCommunityMemberResponse{}, nil
}
