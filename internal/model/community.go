package model

type Community struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	OwnerID     string `json:"owner_id"`
	MaxMembers  int    `json:"max_members"`
	MemberCount int    `json:"member_count"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
}

type CommunityMember struct {
	ID          string `json:"id"`
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	JoinedAt    string `json:"joined_at"`
}

type CreateCommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	MaxMembers  int    `json:"max_members"`
}

type CreateCommunityResponse struct {
	Community Community `json:"community"`
}

type GetCommunityRequest struct {
	ID string `json:"id"`
}

type GetCommunityResponse struct {
	Community Community `json:"community"`
}

type GetCommunitiesRequest struct {
	Type    string `json:"type"`
	OwnerID string `json:"owner_id"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type GetCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type UpdateCommunityRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxMembers  int    `json:"max_members"`
}

type UpdateCommunityResponse struct {
	Community Community `json:"community"`
}

type DeleteCommunityRequest struct {
	ID string `json:"id"`
}

type DeleteCommunityResponse struct{}

type JoinCommunityRequest struct {
	CommunityID string `json:"community_id"`
}

type JoinCommunityResponse struct {
	Member CommunityMember `json:"member"`
}

type LeaveCommunityRequest struct {
	CommunityID string `json:"community_id"`
}

type LeaveCommunityResponse struct{}

type GetCommunityMembersRequest struct {
	CommunityID string `json:"community_id"`
	Role        string `json:"role"`
	Offset      int    `json:"offset"`
	Limit       int    `json:"limit"`
}

type GetCommunityMembersResponse struct {
	Members []CommunityMember `json:"members"`
}

type UpdateCommunityMemberRoleRequest struct {
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

type UpdateCommunityMemberRoleResponse struct {
	Member CommunityMember `json:"member"`
}

type RemoveCommunityMemberRequest struct {
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
}

type RemoveCommunityMemberResponse struct{}
