package entity

import "github.com/coopnet-lab/backend/pkg/enum"

type MemberType string

var (
	MemberTypeYoung        = enum.New(MemberType("young"))
	MemberTypeEntrepreneur = enum.New(MemberType("entrepreneur"))
	MemberTypeRetiree      = enum.New(MemberType("retiree"))
	MemberTypeGeneral      = enum.New(MemberType("general"))
)

// User is a cooperative member. Members are never hard-deleted, only
// deactivated.
type User struct {
	Base
	Name       string
	Email      string `gorm:"unique"`
	Phone      string
	MemberType MemberType `gorm:"default:general"`
	Active     bool       `gorm:"default:true"`
}
