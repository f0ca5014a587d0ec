package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/google/uuid"
)

// SampleUser creates a user with randomized fields. Non-zero fields of
// init overwrite the generated ones.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	sample := &entity.User{
		Base:       entity.Base{ID: uuid.NewString()},
		Name:       uuid.NewString(),
		Email:      uuid.NewString() + "@example.org",
		MemberType: entity.MemberTypeGeneral,
		Active:     true,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewUserRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SampleCommunity(ctx context.Context, init *entity.Community) (entity.Community, error) {
	sample := &entity.Community{
		Base:    entity.Base{ID: uuid.NewString()},
		Name:    uuid.NewString(),
		Type:    entity.CommunityTypePublic,
		OwnerID: uuid.NewString(),
		Active:  true,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewCommunityRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SampleEvent(ctx context.Context, init *entity.Event) (entity.Event, error) {
	sample := &entity.Event{
		Base:              entity.Base{ID: uuid.NewString()},
		Title:             uuid.NewString(),
		EventType:         entity.EventTypeLecture,
		StartDate:         time.Now().Add(24 * time.Hour),
		Location:          uuid.NewString(),
		RegistrationsOpen: true,
		OrganizerID:       uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewEventRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SampleCourse(ctx context.Context, init *entity.Course) (entity.Course, error) {
	sample := &entity.Course{
		Base:         entity.Base{ID: uuid.NewString()},
		Title:        uuid.NewString(),
		Level:        entity.CourseLevelBeginner,
		InstructorID: uuid.NewString(),
		Active:       true,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewCourseRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SamplePost(ctx context.Context, init *entity.Post) (entity.Post, error) {
	sample := &entity.Post{
		Base:     entity.Base{ID: uuid.NewString()},
		Title:    uuid.NewString(),
		Content:  uuid.NewString(),
		Status:   entity.PostStatusPublished,
		AuthorID: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewForumRepository().CreatePost(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SampleProject(ctx context.Context, init *entity.Project) (entity.Project, error) {
	sample := &entity.Project{
		Base:     entity.Base{ID: uuid.NewString()},
		Title:    uuid.NewString(),
		Status:   entity.ProjectStatusProposed,
		AuthorID: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewProjectRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SampleBadge(ctx context.Context, init *entity.Badge) (entity.Badge, error) {
	sample := &entity.Badge{
		Base: entity.Base{ID: uuid.NewString()},
		Name: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewBadgeRepository().Upsert(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
