package entity

import "github.com/coopnet-lab/backend/pkg/enum"

type CommunityType string

var (
	CommunityTypePublic  = enum.New(CommunityType("public"))
	CommunityTypePrivate = enum.New(CommunityType("private"))
)

type MembershipRole string

var (
	MembershipRoleOwner     = enum.New(MembershipRole("owner"))
	MembershipRoleAdmin     = enum.New(MembershipRole("admin"))
	MembershipRoleModerator = enum.New(MembershipRole("moderator"))
	MembershipRoleMember    = enum.New(MembershipRole("member"))
)

type Community struct {
	Base
	Name        string
	Description string        `gorm:"type:longtext"`
	Type        CommunityType `gorm:"default:public"`

	OwnerID string
	Owner   User `gorm:"foreignKey:OwnerID"`

	// MaxMembers of zero means unlimited.
	MaxMembers  int
	MemberCount int  `gorm:"default:0"`
	Active      bool `gorm:"default:true"`
}

// CommunityMember carries no unique index on (community, user) because a
// member who left keeps the old inactive row and gets a fresh one on
// rejoin. Active membership is enforced at the repository level.
type CommunityMember struct {
	Base
	CommunityID string    `gorm:"index:idx_members_community_user"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	UserID string `gorm:"index:idx_members_community_user"`
	User   User   `gorm:"foreignKey:UserID"`

	Role   MembershipRole `gorm:"default:member"`
	Active bool           `gorm:"default:true"`
}
