package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/model"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/testutil"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_projectDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewProjectDomain(repository.NewProjectRepository(), repository.NewUserRepository())

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	resp, err := domain.Create(ctx, &model.CreateProjectRequest{
		Title:       "Shared irrigation system",
		Description: "Pipes and pumps for the west fields",
		Category:    "infrastructure",
	})
	require.NoError(t, err)
	require.Equal(t, "proposed", resp.Project.Status)
	require.Equal(t, user.ID, resp.Project.AuthorID)
	require.Equal(t, 0, resp.Project.VotesFor)
}

func Test_projectDomain_OpenVoting(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewProjectDomain(repository.NewProjectRepository(), repository.NewUserRepository())

	project, err := testutil.SampleProject(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, project.AuthorID)

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(24 * time.Hour)

	_, err = domain.OpenVoting(ctx, &model.OpenProjectVotingRequest{
		ID:          project.ID,
		VotingStart: end.Format(time.RFC3339),
		VotingEnd:   start.Format(time.RFC3339),
	})
	require.Error(t, err)
	require.Equal(t, "The voting window is empty", err.Error())

	resp, err := domain.OpenVoting(ctx, &model.OpenProjectVotingRequest{
		ID:          project.ID,
		VotingStart: start.Format(time.RFC3339),
		VotingEnd:   end.Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.Equal(t, "voting", resp.Project.Status)

	// Voting can only be opened once.
	_, err = domain.OpenVoting(ctx, &model.OpenProjectVotingRequest{
		ID:          project.ID,
		VotingStart: start.Format(time.RFC3339),
		VotingEnd:   end.Format(time.RFC3339),
	})
	require.Error(t, err)
	require.Equal(t, "Voting can only be opened on a proposed project", err.Error())
}

func Test_projectDomain_Vote(t *testing.T) {
	ctx := testutil.MockContext()
	projectRepo := repository.NewProjectRepository()
	domain := NewProjectDomain(projectRepo, repository.NewUserRepository())

	project, err := testutil.SampleProject(ctx, &entity.Project{
		Status:      entity.ProjectStatusVoting,
		VotingStart: sql.NullTime{Valid: true, Time: time.Now().Add(-time.Hour)},
		VotingEnd:   sql.NullTime{Valid: true, Time: time.Now().Add(time.Hour)},
	})
	require.NoError(t, err)

	voterFor, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	resp, err := domain.Vote(xcontext.WithRequestUserID(ctx, voterFor.ID), &model.VoteProjectRequest{
		ProjectID: project.ID,
		VoteFor:   true,
		Comment:   "We need this",
	})
	require.NoError(t, err)
	require.True(t, resp.Vote.VoteFor)

	voterAgainst, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = domain.Vote(xcontext.WithRequestUserID(ctx, voterAgainst.ID), &model.VoteProjectRequest{
		ProjectID: project.ID,
		VoteFor:   false,
	})
	require.NoError(t, err)

	updated, err := projectRepo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, 1, updated.VotesFor)
	require.Equal(t, 1, updated.VotesAgainst)

	// One vote per user per project.
	_, err = domain.Vote(xcontext.WithRequestUserID(ctx, voterFor.ID), &model.VoteProjectRequest{
		ProjectID: project.ID,
		VoteFor:   false,
	})
	require.Error(t, err)
	require.Equal(t, "Already voted on this project", err.Error())
}

func Test_projectDomain_Vote_OutsideWindow(t *testing.T) {
	ctx := testutil.MockContextWithUserID("voter")
	domain := NewProjectDomain(repository.NewProjectRepository(), repository.NewUserRepository())

	notStarted, err := testutil.SampleProject(ctx, &entity.Project{
		Status:      entity.ProjectStatusVoting,
		VotingStart: sql.NullTime{Valid: true, Time: time.Now().Add(time.Hour)},
		VotingEnd:   sql.NullTime{Valid: true, Time: time.Now().Add(2 * time.Hour)},
	})
	require.NoError(t, err)

	_, err = domain.Vote(ctx, &model.VoteProjectRequest{ProjectID: notStarted.ID, VoteFor: true})
	require.Error(t, err)
	require.Equal(t, "Voting has not started yet", err.Error())

	ended, err := testutil.SampleProject(ctx, &entity.Project{
		Status:      entity.ProjectStatusVoting,
		VotingStart: sql.NullTime{Valid: true, Time: time.Now().Add(-2 * time.Hour)},
		VotingEnd:   sql.NullTime{Valid: true, Time: time.Now().Add(-time.Hour)},
	})
	require.NoError(t, err)

	_, err = domain.Vote(ctx, &model.VoteProjectRequest{ProjectID: ended.ID, VoteFor: true})
	require.Error(t, err)
	require.Equal(t, "Voting has already ended", err.Error())

	proposed, err := testutil.SampleProject(ctx, nil)
	require.NoError(t, err)

	_, err = domain.Vote(ctx, &model.VoteProjectRequest{ProjectID: proposed.ID, VoteFor: true})
	require.Error(t, err)
	require.Equal(t, "The project is not open for voting", err.Error())
}

func Test_projectDomain_Delete_WhileVoting(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewProjectDomain(repository.NewProjectRepository(), repository.NewUserRepository())

	project, err := testutil.SampleProject(ctx, &entity.Project{Status: entity.ProjectStatusVoting})
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, project.AuthorID)

	_, err = domain.Delete(ctx, &model.DeleteProjectRequest{ID: project.ID})
	require.Error(t, err)
	require.Equal(t, "Cannot delete a project while voting is open", err.Error())
}
