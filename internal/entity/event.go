package entity

import (
	"database/sql"
	"time"

	"github.com/coopnet-lab/backend/pkg/enum"
)

type EventType string

var (
	EventTypeCooperativeFair     = enum.New(EventType("cooperative_fair"))
	EventTypeLecture             = enum.New(EventType("lecture"))
	EventTypeBusinessRound       = enum.New(EventType("business_round"))
	EventTypeEducationalActivity = enum.New(EventType("educational_activity"))
	EventTypeOther               = enum.New(EventType("other"))
)

type Event struct {
	Base
	Title       string
	Description string `gorm:"type:longtext"`
	EventType   EventType

	StartDate time.Time `gorm:"index"`
	EndDate   sql.NullTime

	Location string
	Address  string

	// MaxCapacity of zero means unlimited.
	MaxCapacity       int
	RegistrationsOpen bool `gorm:"default:true"`

	OrganizerID string
	Organizer   User `gorm:"foreignKey:OrganizerID"`
}

type EventRegistration struct {
	Base
	EventID string `gorm:"uniqueIndex:idx_registrations_event_user"`
	Event   Event  `gorm:"foreignKey:EventID"`

	UserID string `gorm:"uniqueIndex:idx_registrations_event_user"`
	User   User   `gorm:"foreignKey:UserID"`

	Attended bool
	Feedback string `gorm:"type:longtext"`
}
