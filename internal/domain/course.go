package domain

import (
	"context"
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

const (
	sourceCourseEnrollment = "course_enrollment"
	sourceCourseCompletion = "course_completion"
)

type CourseDomain interface {
	Create(ctx context.Context, req *model.CreateCourseRequest) (*model.CreateCourseResponse, error)
	Get(ctx context.Context, req *model.GetCourseRequest) (*model.GetCourseResponse, error)
	GetList(ctx context.Context, req *model.GetCoursesRequest) (*model.GetCoursesResponse, error)
	Update(ctx context.Context, req *model.UpdateCourseRequest) (*model.UpdateCourseResponse, error)
	Delete(ctx context.Context, req *model.DeleteCourseRequest) (*model.DeleteCourseResponse, error)
	Enroll(ctx context.Context, req *model.EnrollCourseRequest) (*model.EnrollCourseResponse, error)
	UpdateProgress(ctx context.Context, req *model.UpdateCourseProgressRequest) (*model.UpdateCourseProgressResponse, error)
	Complete(ctx context.Context, req *model.CompleteCourseRequest) (*model.CompleteCourseResponse, error)
	GetMyEnrollments(ctx context.Context, req *model.GetMyEnrollmentsRequest) (*model.GetMyEnrollmentsResponse, error)
	GetEnrollments(ctx context.Context, req *model.GetCourseEnrollmentsRequest) (*model.GetCourseEnrollmentsResponse, error)
}

type courseDomain struct {
	courseRepo repository.CourseRepository
	engine     *gamification.Engine
}

func NewCourseDomain(
	courseRepo repository.CourseRepository,
	engine *gamification.Engine,
) *courseDomain {
	return &courseDomain{courseRepo: courseRepo, engine: engine}
}

func (d *courseDomain) Create(
	ctx context.Context, req *model.CreateCourseRequest,
) (*model.CreateCourseResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	level := entity.CourseLevelBeginner
	if req.Level != "" {
		var err error
		level, err = enum.ToEnum[entity.CourseLevel](req.Level)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid course level %s", req.Level)
		}
	}

	course := &entity.Course{
		Base:          entity.Base{ID: uuid.NewString()},
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Level:         level,
		InstructorID:  xcontext.RequestUserID(ctx),
		DurationHours: req.DurationHours,
		Active:        true,
	}

	if err := d.courseRepo.Create(ctx, course); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create course: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCourseResponse{Course: model.ConvertCourse(course)}, nil
}

func (d *courseDomain) Get(
	ctx context.Context, req *model.GetCourseRequest,
) (*model.GetCourseResponse, error) {
	course, err := d.courseRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get course: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCourseResponse{Course: model.ConvertCourse(course)}, nil
}

func (d *courseDomain) GetList(
	ctx context.Context, req *model.GetCoursesRequest,
) (*model.GetCoursesResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.CourseFilter{Category: req.Category, ActiveOnly: true}
	if req.Level != "" {
		filter.Level, err = enum.ToEnum[entity.CourseLevel](req.Level)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid course level %s", req.Level)
		}
	}

	courses, err := d.courseRepo.GetList(ctx, filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of courses: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Course{}
	for i := range courses {
		resp = append(resp, model.ConvertCourse(&courses[i]))
	}

	return &model.GetCoursesResponse{Courses: resp}, nil
}

func (d *courseDomain) Update(
	ctx context.Context, req *model.UpdateCourseRequest,
) (*model.UpdateCourseResponse, error) {
	course, err := d.courseRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get course: %v", err)
		return nil, errorx.Unknown
	}

	if course.InstructorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the instructor can update the course")
	}

	changes := entity.Course{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		DurationHours: req.DurationHours,
	}

	if req.Level != "" {
		changes.Level, err = enum.ToEnum[entity.CourseLevel](req.Level)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid course level %s", req.Level)
		}
	}

	if err := d.courseRepo.UpdateByID(ctx, req.ID, &changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update course: %v", err)
		return nil, errorx.Unknown
	}

	course, err = d.courseRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get course after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCourseResponse{Course: model.ConvertCourse(course)}, nil
}

func (d *courseDomain) Delete(
	ctx context.Context, req *model.DeleteCourseRequest,
) (*model.DeleteCourseResponse, error) {
	course, err := d.courseRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get course: %v", err)
		return nil, errorx.Unknown
	}

	if course.InstructorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the instructor can delete the course")
	}

	if err := d.courseRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete course: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCourseResponse{}, nil
}

func (d *courseDomain) Enroll(
	ctx context.Context, req *model.EnrollCourseRequest,
) (*model.EnrollCourseResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	course, err := d.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get course: %v", err)
		return nil, errorx.Unknown
	}

	if !course.Active {
		return nil, errorx.New(errorx.Unavailable, "The course is no longer active")
	}

	_, err = d.courseRepo.GetEnrollment(ctx, req.CourseID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already enrolled in this course")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get enrollment: %v", err)
		return nil, errorx.Unknown
	}

	enrollment := &entity.CourseEnrollment{
		Base:     entity.Base{ID: uuid.NewString()},
		CourseID: req.CourseID,
		UserID:   userID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.courseRepo.CreateEnrollment(ctx, enrollment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create enrollment: %v", err)
		return nil, errorx.Unknown
	}

	_, err = d.engine.Award(ctx, userID, sourceCourseEnrollment, course.ID, "Enrolled in course "+course.Title)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.EnrollCourseResponse{Enrollment: model.ConvertCourseEnrollment(enrollment)}, nil
}

func (d *courseDomain) UpdateProgress(
	ctx context.Context, req *model.UpdateCourseProgressRequest,
) (*model.UpdateCourseProgressResponse, error) {
	if req.Progress < 0 || req.Progress > 100 {
		return nil, errorx.New(errorx.BadRequest, "Progress must be between 0 and 100")
	}

	userID := xcontext.RequestUserID(ctx)
	enrollment, err := d.courseRepo.GetEnrollment(ctx, req.CourseID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not enrolled in this course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get enrollment: %v", err)
		return nil, errorx.Unknown
	}

	if enrollment.IsCompleted {
		return nil, errorx.New(errorx.BadRequest, "The course was already completed")
	}

	if err := d.courseRepo.UpdateProgress(ctx, enrollment.ID, req.Progress); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update progress: %v", err)
		return nil, errorx.Unknown
	}

	enrollment.Progress = req.Progress
	return &model.UpdateCourseProgressResponse{
		Enrollment: model.ConvertCourseEnrollment(enrollment),
	}, nil
}

func (d *courseDomain) Complete(
	ctx context.Context, req *model.CompleteCourseRequest,
) (*model.CompleteCourseResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	course, err := d.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get course: %v", err)
		return nil, errorx.Unknown
	}

	enrollment, err := d.courseRepo.GetEnrollment(ctx, req.CourseID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not enrolled in this course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get enrollment: %v", err)
		return nil, errorx.Unknown
	}

	if enrollment.IsCompleted {
		return nil, errorx.New(errorx.BadRequest, "The course was already completed")
	}

	now := time.Now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.courseRepo.Complete(ctx, enrollment.ID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "The course was already completed")
		}

		xcontext.Logger(ctx).Errorf("Cannot complete enrollment: %v", err)
		return nil, errorx.Unknown
	}

	_, err = d.engine.Award(ctx, userID, sourceCourseCompletion, course.ID, "Completed course "+course.Title)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	enrollment.IsCompleted = true
	enrollment.Progress = 100
	enrollment.CompletedAt.Valid = true
	enrollment.CompletedAt.Time = now
	return &model.CompleteCourseResponse{
		Enrollment: model.ConvertCourseEnrollment(enrollment),
	}, nil
}

func (d *courseDomain) GetMyEnrollments(
	ctx context.Context, req *model.GetMyEnrollmentsRequest,
) (*model.GetMyEnrollmentsResponse, error) {
	enrollments, err := d.courseRepo.GetEnrollmentsByUser(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get enrollments: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.CourseEnrollment{}
	for i := range enrollments {
		resp = append(resp, model.ConvertCourseEnrollment(&enrollments[i]))
	}

	return &model.GetMyEnrollmentsResponse{Enrollments: resp}, nil
}

func (d *courseDomain) GetEnrollments(
	ctx context.Context, req *model.GetCourseEnrollmentsRequest,
) (*model.GetCourseEnrollmentsResponse, error) {
	course, err := d.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get course: %v", err)
		return nil, errorx.Unknown
	}

	if course.InstructorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the instructor can list enrollments")
	}

	enrollments, err := d.courseRepo.GetEnrollmentsByCourse(ctx, req.CourseID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get enrollments: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.CourseEnrollment{}
	for i := range enrollments {
		resp = append(resp, model.ConvertCourseEnrollment(&enrollments[i]))
	}

	return &model.GetCourseEnrollmentsResponse{Enrollments: resp}, nil
}
