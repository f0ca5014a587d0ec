package repository

import (
	"context"
	"time"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/pkg/xcontext"
)

type EventFilter struct {
	EventType entity.EventType
	From      time.Time
	To        time.Time
	Upcoming  bool
}

type EventRepository interface {
	Create(ctx context.Context, data *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetList(ctx context.Context, filter EventFilter, offset, limit int) ([]entity.Event, error)
	UpdateByID(ctx context.Context, id string, data *entity.Event) error
	DeleteByID(ctx context.Context, id string) error
	CreateRegistration(ctx context.Context, data *entity.EventRegistration) error
	GetRegistration(ctx context.Context, eventID, userID string) (*entity.EventRegistration, error)
	GetRegistrations(ctx context.Context, eventID string) ([]entity.EventRegistration, error)
	GetRegistrationsByUser(ctx context.Context, userID string) ([]entity.EventRegistration, error)
	CountRegistrations(ctx context.Context, eventID string) (int64, error)
	UpdateRegistration(ctx context.Context, id string, data *entity.EventRegistration) error
}

type eventRepository struct{}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, data *entity.Event) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetList(
	ctx context.Context, filter EventFilter, offset, limit int,
) ([]entity.Event, error) {
	var result []entity.Event
	tx := xcontext.DB(ctx).
		Offset(offset).Limit(limit).
		Order("start_date ASC")

	if filter.EventType != "" {
		tx = tx.Where("event_type=?", filter.EventType)
	}

	if !filter.From.IsZero() {
		tx = tx.Where("start_date >= ?", filter.From)
	}

	if !filter.To.IsZero() {
		tx = tx.Where("start_date <= ?", filter.To)
	}

	if filter.Upcoming {
		tx = tx.Where("start_date >= ?", time.Now())
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) UpdateByID(ctx context.Context, id string, data *entity.Event) error {
	return xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *eventRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Event{}, "id=?", id).Error
}

func (r *eventRepository) CreateRegistration(ctx context.Context, data *entity.EventRegistration) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *eventRepository) GetRegistration(
	ctx context.Context, eventID, userID string,
) (*entity.EventRegistration, error) {
	var result entity.EventRegistration
	err := xcontext.DB(ctx).
		Where("event_id=? AND user_id=?", eventID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetRegistrations(
	ctx context.Context, eventID string,
) ([]entity.EventRegistration, error) {
	var result []entity.EventRegistration
	err := xcontext.DB(ctx).
		Where("event_id=?", eventID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) GetRegistrationsByUser(
	ctx context.Context, userID string,
) ([]entity.EventRegistration, error) {
	var result []entity.EventRegistration
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) CountRegistrations(ctx context.Context, eventID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.EventRegistration{}).
		Where("event_id=?", eventID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *eventRepository) UpdateRegistration(
	ctx context.Context, id string, data *entity.EventRegistration,
) error {
	return xcontext.DB(ctx).
		Model(&entity.EventRegistration{}).
		Where("id=?", id).
		Updates(data).Error
}
