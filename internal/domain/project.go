package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/coopnet-lab/backend/internal/common"
	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/model"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/enum"
	"github.com/coopnet-lab/backend/pkg/errorx"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectDomain interface {
	Create(ctx context.Context, req *model.CreateProjectRequest) (*model.CreateProjectResponse, error)
	Get(ctx context.Context, req *model.GetProjectRequest) (*model.GetProjectResponse, error)
	GetList(ctx context.Context, req *model.GetProjectsRequest) (*model.GetProjectsResponse, error)
	Update(ctx context.Context, req *model.UpdateProjectRequest) (*model.UpdateProjectResponse, error)
	Delete(ctx context.Context, req *model.DeleteProjectRequest) (*model.DeleteProjectResponse, error)
	OpenVoting(ctx context.Context, req *model.OpenProjectVotingRequest) (*model.OpenProjectVotingResponse, error)
	Vote(ctx context.Context, req *model.VoteProjectRequest) (*model.VoteProjectResponse, error)
	GetVotes(ctx context.Context, req *model.GetProjectVotesRequest) (*model.GetProjectVotesResponse, error)
}

type projectDomain struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

func NewProjectDomain(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
) *projectDomain {
	return &projectDomain{projectRepo: projectRepo, userRepo: userRepo}
}

func (d *projectDomain) Create(
	ctx context.Context, req *model.CreateProjectRequest,
) (*model.CreateProjectResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	userID := xcontext.RequestUserID(ctx)
	if _, err := d.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	project := &entity.Project{
		Base:                 entity.Base{ID: uuid.NewString()},
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		Status:               entity.ProjectStatusProposed,
		AuthorID:             userID,
		EstimatedBudget:      req.EstimatedBudget,
		BeneficiaryCommunity: req.BeneficiaryCommunity,
	}

	if err := d.projectRepo.Create(ctx, project); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateProjectResponse{Project: model.ConvertProject(project)}, nil
}

func (d *projectDomain) Get(
	ctx context.Context, req *model.GetProjectRequest,
) (*model.GetProjectResponse, error) {
	project, err := d.projectRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found project")
		}

		xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetProjectResponse{Project: model.ConvertProject(project)}, nil
}

func (d *projectDomain) GetList(
	ctx context.Context, req *model.GetProjectsRequest,
) (*model.GetProjectsResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.ProjectFilter{
		Category: req.Category,
		AuthorID: req.AuthorID,
	}

	if req.Status != "" {
		filter.Status, err = enum.ToEnum[entity.ProjectStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid project status %s", req.Status)
		}
	}

	projects, err := d.projectRepo.GetList(ctx, filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of projects: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Project{}
	for i := range projects {
		resp = append(resp, model.ConvertProject(&projects[i]))
	}

	return &model.GetProjectsResponse{Projects: resp}, nil
}

func (d *projectDomain) Update(
	ctx context.Context, req *model.UpdateProjectRequest,
) (*model.UpdateProjectResponse, error) {
	project, err := d.projectRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found project")
		}

		xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
		return nil, errorx.Unknown
	}

	if project.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can update the project")
	}

	changes := entity.Project{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}

	if req.Status != "" {
		changes.Status, err = enum.ToEnum[entity.ProjectStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid project status %s", req.Status)
		}
	}

	if err := d.projectRepo.UpdateByID(ctx, req.ID, &changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update project: %v", err)
		return nil, errorx.Unknown
	}

	project, err = d.projectRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get project after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateProjectResponse{Project: model.ConvertProject(project)}, nil
}

func (d *projectDomain) Delete(
	ctx context.Context, req *model.DeleteProjectRequest,
) (*model.DeleteProjectResponse, error) {
	project, err := d.projectRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found project")
		}

		xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
		return nil, errorx.Unknown
	}

	if project.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete the project")
	}

	if project.Status == entity.ProjectStatusVoting {
		return nil, errorx.New(errorx.BadRequest, "Cannot delete a project while voting is open")
	}

	if err := d.projectRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteProjectResponse{}, nil
}

func (d *projectDomain) OpenVoting(
	ctx context.Context, req *model.OpenProjectVotingRequest,
) (*model.OpenProjectVotingResponse, error) {
	project, err := d.projectRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found project")
		}

		xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
		return nil, errorx.Unknown
	}

	if project.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can open voting")
	}

	if project.Status != entity.ProjectStatusProposed {
		return nil, errorx.New(errorx.BadRequest, "Voting can only be opened on a proposed project")
	}

	votingStart, err := time.Parse(time.RFC3339, req.VotingStart)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid voting start %s", req.VotingStart)
	}

	votingEnd, err := time.Parse(time.RFC3339, req.VotingEnd)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid voting end %s", req.VotingEnd)
	}

	if !votingEnd.After(votingStart) {
		return nil, errorx.New(errorx.BadRequest, "The voting window is empty")
	}

	changes := entity.Project{
		Status:      entity.ProjectStatusVoting,
		VotingStart: sql.NullTime{Valid: true, Time: votingStart},
		VotingEnd:   sql.NullTime{Valid: true, Time: votingEnd},
	}

	if err := d.projectRepo.UpdateByID(ctx, req.ID, &changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot open voting: %v", err)
		return nil, errorx.Unknown
	}

	project, err = d.projectRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get project after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.OpenProjectVotingResponse{Project: model.ConvertProject(project)}, nil
}

func (d *projectDomain) Vote(
	ctx context.Context, req *model.VoteProjectRequest,
) (*model.VoteProjectResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	project, err := d.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found project")
		}

		xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
		return nil, errorx.Unknown
	}

	if project.Status != entity.ProjectStatusVoting {
		return nil, errorx.New(errorx.BadRequest, "The project is not open for voting")
	}

	now := time.Now()
	if project.VotingStart.Valid && now.Before(project.VotingStart.Time) {
		return nil, errorx.New(errorx.BadRequest, "Voting has not started yet")
	}

	if project.VotingEnd.Valid && now.After(project.VotingEnd.Time) {
		return nil, errorx.New(errorx.BadRequest, "Voting has already ended")
	}

	_, err = d.projectRepo.GetVote(ctx, req.ProjectID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already voted on this project")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get vote: %v", err)
		return nil, errorx.Unknown
	}

	vote := &entity.Vote{
		Base:      entity.Base{ID: uuid.NewString()},
		ProjectID: req.ProjectID,
		UserID:    userID,
		VoteFor:   req.VoteFor,
		Comment:   req.Comment,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.projectRepo.CreateVote(ctx, vote); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create vote: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.projectRepo.IncreaseVoteCount(ctx, req.ProjectID, req.VoteFor); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase vote count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.VoteProjectResponse{Vote: model.ConvertVote(vote)}, nil
}

func (d *projectDomain) GetVotes(
	ctx context.Context, req *model.GetProjectVotesRequest,
) (*model.GetProjectVotesResponse, error) {
	if _, err := d.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found project")
		}

		xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
		return nil, errorx.Unknown
	}

	votes, err := d.projectRepo.GetVotes(ctx, req.ProjectID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get votes: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Vote{}
	for i := range votes {
		resp = append(resp, model.ConvertVote(&votes[i]))
	}

	return &model.GetProjectVotesResponse{Votes: resp}, nil
}
