package domain

import (
	"testing"
	"time"

	"github.com/coopnet-lab/backend/internal/domain/gamification"
	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/model"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/testutil"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_eventDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID("organizer")
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewEventDomain(repository.NewEventRepository(), engine)

	start := time.Now().Add(48 * time.Hour)
	resp, err := domain.Create(ctx, &model.CreateEventRequest{
		Title:     "Cooperative Fair 2026",
		EventType: "cooperative_fair",
		StartDate: start.Format(time.RFC3339),
		EndDate:   start.Add(8 * time.Hour).Format(time.RFC3339),
		Location:  "Central Square",
	})
	require.NoError(t, err)
	require.Equal(t, "Cooperative Fair 2026", resp.Event.Title)
	require.Equal(t, "organizer", resp.Event.OrganizerID)
	require.True(t, resp.Event.RegistrationsOpen)
}

func Test_eventDomain_Create_InvalidDates(t *testing.T) {
	ctx := testutil.MockContextWithUserID("organizer")
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewEventDomain(repository.NewEventRepository(), engine)

	start := time.Now().Add(48 * time.Hour)
	_, err := domain.Create(ctx, &model.CreateEventRequest{
		Title:     "Backwards Event",
		EventType: "lecture",
		StartDate: start.Format(time.RFC3339),
		EndDate:   start.Add(-time.Hour).Format(time.RFC3339),
	})
	require.Error(t, err)
	require.Equal(t, "The end date is before the start date", err.Error())
}

func Test_eventDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	engine := gamification.NewEngine(pointRepo, repository.NewBadgeRepository(), nil)
	domain := NewEventDomain(repository.NewEventRepository(), engine)

	event, err := testutil.SampleEvent(ctx, nil)
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	resp, err := domain.Register(ctx, &model.RegisterEventRequest{EventID: event.ID})
	require.NoError(t, err)
	require.Equal(t, event.ID, resp.Registration.EventID)
	require.Equal(t, user.ID, resp.Registration.UserID)
	require.False(t, resp.Registration.Attended)

	userLevel, err := pointRepo.GetLevel(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 5, userLevel.TotalPoints)

	_, err = domain.Register(ctx, &model.RegisterEventRequest{EventID: event.ID})
	require.Error(t, err)
	require.Equal(t, "Already registered for this event", err.Error())
}

func Test_eventDomain_Register_Closed(t *testing.T) {
	ctx := testutil.MockContext()
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewEventDomain(repository.NewEventRepository(), engine)

	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: "organizer"})
	require.NoError(t, err)

	closed := false
	organizerCtx := xcontext.WithRequestUserID(ctx, "organizer")
	_, err = domain.Update(organizerCtx, &model.UpdateEventRequest{
		ID:                event.ID,
		RegistrationsOpen: &closed,
	})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	_, err = domain.Register(ctx, &model.RegisterEventRequest{EventID: event.ID})
	require.Error(t, err)
	require.Equal(t, "Registrations are closed for this event", err.Error())
}

func Test_eventDomain_Register_Full(t *testing.T) {
	ctx := testutil.MockContext()
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewEventDomain(repository.NewEventRepository(), engine)

	event, err := testutil.SampleEvent(ctx, &entity.Event{MaxCapacity: 1})
	require.NoError(t, err)

	first, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	_, err = domain.Register(xcontext.WithRequestUserID(ctx, first.ID), &model.RegisterEventRequest{EventID: event.ID})
	require.NoError(t, err)

	second, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	_, err = domain.Register(xcontext.WithRequestUserID(ctx, second.ID), &model.RegisterEventRequest{EventID: event.ID})
	require.Error(t, err)
	require.Equal(t, "The event is full", err.Error())
}

func Test_eventDomain_GetMyRegistrations(t *testing.T) {
	ctx := testutil.MockContext()
	engine := gamification.NewEngine(repository.NewPointRepository(), repository.NewBadgeRepository(), nil)
	domain := NewEventDomain(repository.NewEventRepository(), engine)

	first, err := testutil.SampleEvent(ctx, nil)
	require.NoError(t, err)
	second, err := testutil.SampleEvent(ctx, nil)
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	_, err = domain.Register(ctx, &model.RegisterEventRequest{EventID: first.ID})
	require.NoError(t, err)
	_, err = domain.Register(ctx, &model.RegisterEventRequest{EventID: second.ID})
	require.NoError(t, err)

	resp, err := domain.GetMyRegistrations(ctx, &model.GetMyEventRegistrationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Registrations, 2)
	for _, registration := range resp.Registrations {
		require.Equal(t, user.ID, registration.UserID)
	}
}

func Test_eventDomain_MarkAttendance(t *testing.T) {
	ctx := testutil.MockContext()
	pointRepo := repository.NewPointRepository()
	engine := gamification.NewEngine(pointRepo, repository.NewBadgeRepository(), nil)
	domain := NewEventDomain(repository.NewEventRepository(), engine)

	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: "organizer"})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	_, err = domain.Register(userCtx, &model.RegisterEventRequest{EventID: event.ID})
	require.NoError(t, err)

	// Attendees cannot mark themselves.
	_, err = domain.MarkAttendance(userCtx, &model.MarkEventAttendanceRequest{
		EventID: event.ID,
		UserID:  user.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Only the organizer can mark attendance", err.Error())

	organizerCtx := xcontext.WithRequestUserID(ctx, "organizer")
	resp, err := domain.MarkAttendance(organizerCtx, &model.MarkEventAttendanceRequest{
		EventID:  event.ID,
		UserID:   user.ID,
		Feedback: "great turnout",
	})
	require.NoError(t, err)
	require.True(t, resp.Registration.Attended)
	require.Equal(t, "great turnout", resp.Registration.Feedback)

	// Attendance alone awards nothing, only the registration did.
	userLevel, err := pointRepo.GetLevel(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 5, userLevel.TotalPoints)
}
