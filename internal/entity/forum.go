package entity

import (
	"database/sql"

	"github.com/coopnet-lab/backend/pkg/enum"
)

type PostStatus string

var (
	PostStatusDraft     = enum.New(PostStatus("draft"))
	PostStatusPublished = enum.New(PostStatus("published"))
	PostStatusArchived  = enum.New(PostStatus("archived"))
)

type Post struct {
	Base
	Title   string
	Content string `gorm:"type:longtext"`
	Status  PostStatus `gorm:"default:published"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	CommunityID sql.NullString
	Tags        string

	ViewsCount  int          `gorm:"default:0"`
	LikesCount  int          `gorm:"default:0"`
	PublishedAt sql.NullTime `gorm:"index"`
}

type Comment struct {
	Base
	PostID string `gorm:"index"`
	Post   Post   `gorm:"foreignKey:PostID"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	Content string `gorm:"type:longtext"`

	// ParentID points at another comment for threaded replies.
	ParentID sql.NullString
}
