package entity

import (
	"database/sql"
	"time"
)

// Badge is a catalog entry. Badges are granted automatically once a
// member's lifetime points reach PointsRequired.
type Badge struct {
	Base
	Name           string `gorm:"unique"`
	Description    string
	Icon           string
	PointsRequired int
	Category       string
}

// UserBadge keys on (user, badge) so a concurrent double grant collapses
// into a single row.
type UserBadge struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	BadgeID string `gorm:"primaryKey"`
	Badge   Badge  `gorm:"foreignKey:BadgeID"`

	EarnedAt time.Time
}

// UserLevel is created lazily the first time a member earns points or is
// looked up. TotalPoints only ever grows; Level only ever rises.
type UserLevel struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Level            int `gorm:"default:1"`
	ExperiencePoints int `gorm:"default:0"`
	TotalPoints      int `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PointRecord is the append-only ledger. Rows are never updated or
// deleted, including zero-point rows for unrecognized sources.
type PointRecord struct {
	Base
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Points      int
	Source      string
	SourceID    sql.NullString
	Description string
}
