package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/coopnet-lab/backend/internal/common"
	"github.com/coopnet-lab/backend/internal/domain/gamification"
	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/model"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/enum"
	"github.com/coopnet-lab/backend/pkg/errorx"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sourceEventRegistration = "event_registration"

type EventDomain interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.CreateEventResponse, error)
	Get(ctx context.Context, req *model.GetEventRequest) (*model.GetEventResponse, error)
	GetList(ctx context.Context, req *model.GetEventsRequest) (*model.GetEventsResponse, error)
	Update(ctx context.Context, req *model.UpdateEventRequest) (*model.UpdateEventResponse, error)
	Delete(ctx context.Context, req *model.DeleteEventRequest) (*model.DeleteEventResponse, error)
	Register(ctx context.Context, req *model.RegisterEventRequest) (*model.RegisterEventResponse, error)
	GetRegistrations(ctx context.Context, req *model.GetEventRegistrationsRequest) (*model.GetEventRegistrationsResponse, error)
	GetMyRegistrations(ctx context.Context, req *model.GetMyEventRegistrationsRequest) (*model.GetMyEventRegistrationsResponse, error)
	MarkAttendance(ctx context.Context, req *model.MarkEventAttendanceRequest) (*model.MarkEventAttendanceResponse, error)
}

type eventDomain struct {
	eventRepo repository.EventRepository
	engine    *gamification.Engine
}

func NewEventDomain(
	eventRepo repository.EventRepository,
	engine *gamification.Engine,
) *eventDomain {
	return &eventDomain{eventRepo: eventRepo, engine: engine}
}

func (d *eventDomain) Create(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	eventType, err := enum.ToEnum[entity.EventType](req.EventType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid event type %s", req.EventType)
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid start date %s", req.StartDate)
	}

	event := &entity.Event{
		Base:              entity.Base{ID: uuid.NewString()},
		Title:             req.Title,
		Description:       req.Description,
		EventType:         eventType,
		StartDate:         startDate,
		Location:          req.Location,
		Address:           req.Address,
		MaxCapacity:       req.MaxCapacity,
		RegistrationsOpen: true,
		OrganizerID:       xcontext.RequestUserID(ctx),
	}

	if req.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid end date %s", req.EndDate)
		}

		if endDate.Before(startDate) {
			return nil, errorx.New(errorx.BadRequest, "The end date is before the start date")
		}

		event.EndDate = sql.NullTime{Valid: true, Time: endDate}
	}

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateEventResponse{Event: model.ConvertEvent(event)}, nil
}

func (d *eventDomain) Get(
	ctx context.Context, req *model.GetEventRequest,
) (*model.GetEventResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetEventResponse{Event: model.ConvertEvent(event)}, nil
}

func (d *eventDomain) GetList(
	ctx context.Context, req *model.GetEventsRequest,
) (*model.GetEventsResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.EventFilter{Upcoming: req.Upcoming}
	if req.EventType != "" {
		filter.EventType, err = enum.ToEnum[entity.EventType](req.EventType)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid event type %s", req.EventType)
		}
	}

	if req.From != "" {
		filter.From, err = time.Parse(time.RFC3339, req.From)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid from date %s", req.From)
		}
	}

	if req.To != "" {
		filter.To, err = time.Parse(time.RFC3339, req.To)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid to date %s", req.To)
		}
	}

	events, err := d.eventRepo.GetList(ctx, filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of events: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Event{}
	for i := range events {
		resp = append(resp, model.ConvertEvent(&events[i]))
	}

	return &model.GetEventsResponse{Events: resp}, nil
}

func (d *eventDomain) Update(
	ctx context.Context, req *model.UpdateEventRequest,
) (*model.UpdateEventResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	if event.OrganizerID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the organizer can update the event")
	}

	changes := entity.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Address:     req.Address,
		MaxCapacity: req.MaxCapacity,
	}

	if err := d.eventRepo.UpdateByID(ctx, req.ID, &changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update event: %v", err)
		return nil, errorx.Unknown
	}

	// A zero-valued flag is skipped by a struct update, so the toggle
	// goes through a dedicated update.
	if req.RegistrationsOpen != nil {
		err := xcontext.DB(ctx).Model(&entity.Event{}).
			Where("id=?", req.ID).
			Update("registrations_open", *req.RegistrationsOpen).Error
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update registrations flag: %v", err)
			return nil, errorx.Unknown
		}
	}

	event, err = d.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get event after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateEventResponse{Event: model.ConvertEvent(event)}, nil
}

func (d *eventDomain) Delete(
	ctx context.Context, req *model.DeleteEventRequest,
) (*model.DeleteEventResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	if event.OrganizerID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the organizer can delete the event")
	}

	if err := d.eventRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteEventResponse{}, nil
}

func (d *eventDomain) Register(
	ctx context.Context, req *model.RegisterEventRequest,
) (*model.RegisterEventResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	if !event.RegistrationsOpen {
		return nil, errorx.New(errorx.Unavailable, "Registrations are closed for this event")
	}

	_, err = d.eventRepo.GetRegistration(ctx, req.EventID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already registered for this event")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get registration: %v", err)
		return nil, errorx.Unknown
	}

	if event.MaxCapacity > 0 {
		count, err := d.eventRepo.CountRegistrations(ctx, req.EventID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count registrations: %v", err)
			return nil, errorx.Unknown
		}

		if count >= int64(event.MaxCapacity) {
			return nil, errorx.New(errorx.Unavailable, "The event is full")
		}
	}

	registration := &entity.EventRegistration{
		Base:    entity.Base{ID: uuid.NewString()},
		EventID: req.EventID,
		UserID:  userID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.eventRepo.CreateRegistration(ctx, registration); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create registration: %v", err)
		return nil, errorx.Unknown
	}

	_, err = d.engine.Award(ctx, userID, sourceEventRegistration, event.ID, "Registered for event "+event.Title)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.RegisterEventResponse{Registration: model.ConvertEventRegistration(registration)}, nil
}

func (d *eventDomain) GetRegistrations(
	ctx context.Context, req *model.GetEventRegistrationsRequest,
) (*model.GetEventRegistrationsResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	if event.OrganizerID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the organizer can list registrations")
	}

	registrations, err := d.eventRepo.GetRegistrations(ctx, req.EventID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get registrations: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.EventRegistration{}
	for i := range registrations {
		resp = append(resp, model.ConvertEventRegistration(&registrations[i]))
	}

	return &model.GetEventRegistrationsResponse{Registrations: resp}, nil
}

func (d *eventDomain) GetMyRegistrations(
	ctx context.Context, _ *model.GetMyEventRegistrationsRequest,
) (*model.GetMyEventRegistrationsResponse, error) {
	registrations, err := d.eventRepo.GetRegistrationsByUser(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get registrations: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.EventRegistration{}
	for i := range registrations {
		resp = append(resp, model.ConvertEventRegistration(&registrations[i]))
	}

	return &model.GetMyEventRegistrationsResponse{Registrations: resp}, nil
}

func (d *eventDomain) MarkAttendance(
	ctx context.Context, req *model.MarkEventAttendanceRequest,
) (*model.MarkEventAttendanceResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	if event.OrganizerID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the organizer can mark attendance")
	}

	registration, err := d.eventRepo.GetRegistration(ctx, req.EventID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found registration")
		}

		xcontext.Logger(ctx).Errorf("Cannot get registration: %v", err)
		return nil, errorx.Unknown
	}

	changes := entity.EventRegistration{Attended: true, Feedback: req.Feedback}
	if err := d.eventRepo.UpdateRegistration(ctx, registration.ID, &changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update registration: %v", err)
		return nil, errorx.Unknown
	}

	registration.Attended = true
	if req.Feedback != "" {
		registration.Feedback = req.Feedback
	}

	return &model.MarkEventAttendanceResponse{
		Registration: model.ConvertEventRegistration(registration),
	}, nil
}
