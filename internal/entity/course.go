package entity

import (
	"database/sql"

	"github.com/coopnet-lab/backend/pkg/enum"
)

type CourseLevel string

var (
	CourseLevelBeginner     = enum.New(CourseLevel("beginner"))
	CourseLevelIntermediate = enum.New(CourseLevel("intermediate"))
	CourseLevelAdvanced     = enum.New(CourseLevel("advanced"))
)

type Course struct {
	Base
	Title       string
	Description string `gorm:"type:longtext"`
	Category    string
	Level       CourseLevel `gorm:"default:beginner"`

	InstructorID string
	Instructor   User `gorm:"foreignKey:InstructorID"`

	DurationHours int
	Active        bool `gorm:"default:true"`
}

type CourseEnrollment struct {
	Base
	CourseID string `gorm:"uniqueIndex:idx_enrollments_course_user"`
	Course   Course `gorm:"foreignKey:CourseID"`

	UserID string `gorm:"uniqueIndex:idx_enrollments_course_user"`
	User   User   `gorm:"foreignKey:UserID"`

	Progress    int `gorm:"default:0"`
	IsCompleted bool
	CompletedAt sql.NullTime
}
