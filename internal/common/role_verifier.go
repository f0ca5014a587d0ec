package common

import (
	"context"
	"errors"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/errorx"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CommunityRoleVerifier checks the requesting user's membership role
// before a community-scoped mutation.
type CommunityRoleVerifier struct {
	communityRepo repository.CommunityRepository
}

func NewCommunityRoleVerifier(communityRepo repository.CommunityRepository) *CommunityRoleVerifier {
	return &CommunityRoleVerifier{communityRepo: communityRepo}
}

func (v *CommunityRoleVerifier) Verify(
	ctx context.Context, communityID string, roles ...entity.MembershipRole,
) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	member, err := v.communityRepo.GetActiveMember(ctx, communityID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community member: %v", err)
		return errorx.Unknown
	}

	if !slices.Contains(roles, member.Role) {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}
