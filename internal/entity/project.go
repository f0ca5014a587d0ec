package entity

import (
	"database/sql"

	"github.com/coopnet-lab/backend/pkg/enum"
)

type ProjectStatus string

var (
	ProjectStatusProposed    = enum.New(ProjectStatus("proposed"))
	ProjectStatusVoting      = enum.New(ProjectStatus("voting"))
	ProjectStatusApproved    = enum.New(ProjectStatus("approved"))
	ProjectStatusInExecution = enum.New(ProjectStatus("in_execution"))
	ProjectStatusCompleted   = enum.New(ProjectStatus("completed"))
	ProjectStatusRejected    = enum.New(ProjectStatus("rejected"))
)

// Project is a social-impact proposal members vote on.
type Project struct {
	Base
	Title       string
	Description string `gorm:"type:longtext"`
	Category    string
	Status      ProjectStatus `gorm:"default:proposed"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	VotingStart  sql.NullTime
	VotingEnd    sql.NullTime
	VotesFor     int
	VotesAgainst int

	EstimatedBudget      string
	BeneficiaryCommunity string
}

type Vote struct {
	Base
	ProjectID string  `gorm:"uniqueIndex:idx_votes_project_user"`
	Project   Project `gorm:"foreignKey:ProjectID"`

	UserID string `gorm:"uniqueIndex:idx_votes_project_user"`
	User   User   `gorm:"foreignKey:UserID"`

	VoteFor bool
	Comment string `gorm:"type:longtext"`
}
