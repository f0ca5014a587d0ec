package domain

import (
	"testing"

	"github.com/coopnet-lab/backend/internal/domain/gamification"
	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/model"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/testutil"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_communityDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	communityRepo := repository.NewCommunityRepository()
	pointRepo := repository.NewPointRepository()
	engine := gamification.NewEngine(pointRepo, repository.NewBadgeRepository(), nil)
	domain := NewCommunityDomain(communityRepo, repository.NewUserRepository(), engine)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	resp, err := domain.Create(ctx, &model.CreateCommunityRequest{Name: "Weavers of the South"})
	require.NoError(t, err)
	require.Equal(t, "Weavers of the South", resp.Community.Name)
	require.Equal(t, user.ID, resp.Community.OwnerID)
	require.Equal(t, 1, resp.Community.MemberCount)

	member, err := communityRepo.GetActiveMember(ctx, resp.Community.ID, user.ID)
	require.NoError(t, err)
	require.Equal(t, entity.MembershipRoleOwner, member.Role)

	userLevel, err := pointRepo.GetLevel(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 20, userLevel.TotalPoints)
}

func Test_communityDomain_Create_NoUser(t *testing.T) {
	ctx := testutil.MockContextWithUserID("unknown-user")
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewCommunityDomain(repository.NewCommunityRepository(), repository.NewUserRepository(), engine)

	_, err := domain.Create(ctx, &model.CreateCommunityRequest{Name: "Ghost Community"})
	require.Error(t, err)
	require.Equal(t, "Not found user", err.Error())
}

func Test_communityDomain_Join(t *testing.T) {
	ctx := testutil.MockContext()
	communityRepo := repository.NewCommunityRepository()
	pointRepo := repository.NewPointRepository()
	engine := gamification.NewEngine(pointRepo, repository.NewBadgeRepository(), nil)
	domain := NewCommunityDomain(communityRepo, repository.NewUserRepository(), engine)

	community, err := testutil.SampleCommunity(ctx, &entity.Community{MemberCount: 1})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	resp, err := domain.Join(ctx, &model.JoinCommunityRequest{CommunityID: community.ID})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.Member.UserID)
	require.Equal(t, "member", resp.Member.Role)

	updated, err := communityRepo.GetByID(ctx, community.ID)
	require.NoError(t, err)
	require.Equal(t, 2, updated.MemberCount)

	userLevel, err := pointRepo.GetLevel(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 8, userLevel.TotalPoints)

	// Joining twice is rejected.
	_, err = domain.Join(ctx, &model.JoinCommunityRequest{CommunityID: community.ID})
	require.Error(t, err)
	require.Equal(t, "Already joined this community", err.Error())
}

func Test_communityDomain_Join_Private(t *testing.T) {
	ctx := testutil.MockContext()
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewCommunityDomain(repository.NewCommunityRepository(), repository.NewUserRepository(), engine)

	community, err := testutil.SampleCommunity(ctx, &entity.Community{Type: entity.CommunityTypePrivate})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	_, err = domain.Join(ctx, &model.JoinCommunityRequest{CommunityID: community.ID})
	require.Error(t, err)
	require.Equal(t, "Cannot join a private community without an invitation", err.Error())
}

func Test_communityDomain_Join_Full(t *testing.T) {
	ctx := testutil.MockContext()
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewCommunityDomain(repository.NewCommunityRepository(), repository.NewUserRepository(), engine)

	community, err := testutil.SampleCommunity(ctx, &entity.Community{MaxMembers: 1, MemberCount: 1})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	_, err = domain.Join(ctx, &model.JoinCommunityRequest{CommunityID: community.ID})
	require.Error(t, err)
	require.Equal(t, "The community is full", err.Error())
}

func Test_communityDomain_Leave(t *testing.T) {
	ctx := testutil.MockContext()
	communityRepo := repository.NewCommunityRepository()
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewCommunityDomain(communityRepo, repository.NewUserRepository(), engine)

	owner, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ownerCtx := xcontext.WithRequestUserID(ctx, owner.ID)

	created, err := domain.Create(ownerCtx, &model.CreateCommunityRequest{Name: "Beekeepers"})
	require.NoError(t, err)

	member, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	memberCtx := xcontext.WithRequestUserID(ctx, member.ID)

	_, err = domain.Join(memberCtx, &model.JoinCommunityRequest{CommunityID: created.Community.ID})
	require.NoError(t, err)

	// The owner cannot abandon their own community.
	_, err = domain.Leave(ownerCtx, &model.LeaveCommunityRequest{CommunityID: created.Community.ID})
	require.Error(t, err)
	require.Equal(t, "The owner cannot leave their own community", err.Error())

	_, err = domain.Leave(memberCtx, &model.LeaveCommunityRequest{CommunityID: created.Community.ID})
	require.NoError(t, err)

	community, err := communityRepo.GetByID(ctx, created.Community.ID)
	require.NoError(t, err)
	require.Equal(t, 1, community.MemberCount)

	_, err = communityRepo.GetActiveMember(ctx, created.Community.ID, member.ID)
	require.Error(t, err)
}

func Test_communityDomain_UpdateMemberRole(t *testing.T) {
	ctx := testutil.MockContext()
	communityRepo := repository.NewCommunityRepository()
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewCommunityDomain(communityRepo, repository.NewUserRepository(), engine)

	owner, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ownerCtx := xcontext.WithRequestUserID(ctx, owner.ID)

	created, err := domain.Create(ownerCtx, &model.CreateCommunityRequest{Name: "Gardeners"})
	require.NoError(t, err)

	member, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	memberCtx := xcontext.WithRequestUserID(ctx, member.ID)

	_, err = domain.Join(memberCtx, &model.JoinCommunityRequest{CommunityID: created.Community.ID})
	require.NoError(t, err)

	// Plain members cannot promote anyone.
	_, err = domain.UpdateMemberRole(memberCtx, &model.UpdateCommunityMemberRoleRequest{
		CommunityID: created.Community.ID,
		UserID:      member.ID,
		Role:        "admin",
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	resp, err := domain.UpdateMemberRole(ownerCtx, &model.UpdateCommunityMemberRoleRequest{
		CommunityID: created.Community.ID,
		UserID:      member.ID,
		Role:        "moderator",
	})
	require.NoError(t, err)
	require.Equal(t, "moderator", resp.Member.Role)

	got, err := communityRepo.GetActiveMember(ctx, created.Community.ID, member.ID)
	require.NoError(t, err)
	require.Equal(t, entity.MembershipRoleModerator, got.Role)

	// The owner role is never reassigned in either direction.
	_, err = domain.UpdateMemberRole(ownerCtx, &model.UpdateCommunityMemberRoleRequest{
		CommunityID: created.Community.ID,
		UserID:      member.ID,
		Role:        "owner",
	})
	require.Error(t, err)
	require.Equal(t, "Cannot assign the owner role", err.Error())

	_, err = domain.UpdateMemberRole(ownerCtx, &model.UpdateCommunityMemberRoleRequest{
		CommunityID: created.Community.ID,
		UserID:      owner.ID,
		Role:        "member",
	})
	require.Error(t, err)
	require.Equal(t, "The owner role cannot be changed", err.Error())
}

func Test_communityDomain_RemoveMember(t *testing.T) {
	ctx := testutil.MockContext()
	communityRepo := repository.NewCommunityRepository()
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewCommunityDomain(communityRepo, repository.NewUserRepository(), engine)

	owner, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ownerCtx := xcontext.WithRequestUserID(ctx, owner.ID)

	created, err := domain.Create(ownerCtx, &model.CreateCommunityRequest{Name: "Cyclists"})
	require.NoError(t, err)

	member, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	memberCtx := xcontext.WithRequestUserID(ctx, member.ID)

	_, err = domain.Join(memberCtx, &model.JoinCommunityRequest{CommunityID: created.Community.ID})
	require.NoError(t, err)

	// A member cannot remove someone else.
	_, err = domain.RemoveMember(memberCtx, &model.RemoveCommunityMemberRequest{
		CommunityID: created.Community.ID,
		UserID:      owner.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	// The owner is never removable, not even by themselves.
	_, err = domain.RemoveMember(ownerCtx, &model.RemoveCommunityMemberRequest{
		CommunityID: created.Community.ID,
		UserID:      owner.ID,
	})
	require.Error(t, err)
	require.Equal(t, "The owner cannot be removed from their own community", err.Error())

	_, err = domain.RemoveMember(ownerCtx, &model.RemoveCommunityMemberRequest{
		CommunityID: created.Community.ID,
		UserID:      member.ID,
	})
	require.NoError(t, err)

	community, err := communityRepo.GetByID(ctx, created.Community.ID)
	require.NoError(t, err)
	require.Equal(t, 1, community.MemberCount)

	_, err = communityRepo.GetActiveMember(ctx, created.Community.ID, member.ID)
	require.Error(t, err)
}

func Test_communityDomain_GetMembers_RoleFilter(t *testing.T) {
	ctx := testutil.MockContext()
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewCommunityDomain(repository.NewCommunityRepository(), repository.NewUserRepository(), engine)

	owner, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ownerCtx := xcontext.WithRequestUserID(ctx, owner.ID)

	created, err := domain.Create(ownerCtx, &model.CreateCommunityRequest{Name: "Readers"})
	require.NoError(t, err)

	member, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	memberCtx := xcontext.WithRequestUserID(ctx, member.ID)

	_, err = domain.Join(memberCtx, &model.JoinCommunityRequest{CommunityID: created.Community.ID})
	require.NoError(t, err)

	resp, err := domain.GetMembers(ctx, &model.GetCommunityMembersRequest{
		CommunityID: created.Community.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Members, 2)

	resp, err = domain.GetMembers(ctx, &model.GetCommunityMembersRequest{
		CommunityID: created.Community.ID,
		Role:        "owner",
	})
	require.NoError(t, err)
	require.Len(t, resp.Members, 1)
	require.Equal(t, owner.ID, resp.Members[0].UserID)
}

func Test_communityDomain_Update_Permission(t *testing.T) {
	ctx := testutil.MockContext()
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewCommunityDomain(repository.NewCommunityRepository(), repository.NewUserRepository(), engine)

	community, err := testutil.SampleCommunity(ctx, nil)
	require.NoError(t, err)

	stranger, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, stranger.ID)

	_, err = domain.Update(ctx, &model.UpdateCommunityRequest{ID: community.ID, Name: "Taken Over"})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}
