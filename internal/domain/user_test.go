package domain

import (
	"testing"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/model"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/structutil"
	"github.com/coopnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewUserDomain(repository.NewUserRepository())

	resp, err := domain.Create(ctx, &model.CreateUserRequest{
		Name:       "Maria Souza",
		Email:      "maria@example.org",
		MemberType: "entrepreneur",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.User.ID)
	require.Equal(t, "entrepreneur", resp.User.MemberType)
	require.True(t, resp.User.Active)

	_, err = domain.Create(ctx, &model.CreateUserRequest{
		Name:  "Another Maria",
		Email: "maria@example.org",
	})
	require.Error(t, err)
	require.Equal(t, "The email was registered before", err.Error())
}

func Test_userDomain_Create_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewUserDomain(repository.NewUserRepository())

	_, err := domain.Create(ctx, &model.CreateUserRequest{Email: "no-name@example.org"})
	require.Error(t, err)
	require.Equal(t, "Not allow an empty name", err.Error())

	_, err = domain.Create(ctx, &model.CreateUserRequest{Name: "No Email"})
	require.Error(t, err)
	require.Equal(t, "Not allow an empty email", err.Error())

	_, err = domain.Create(ctx, &model.CreateUserRequest{
		Name:       "Bad Type",
		Email:      "bad-type@example.org",
		MemberType: "alien",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid member type alien", err.Error())
}

func Test_userDomain_Get_ByEmail(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewUserDomain(repository.NewUserRepository())

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	resp, err := domain.Get(ctx, &model.GetUserRequest{Email: user.Email})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.User.ID)

	_, err = domain.Get(ctx, &model.GetUserRequest{})
	require.Error(t, err)
	require.Equal(t, "Not allow an empty id and email", err.Error())
}

func Test_userDomain_Update(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewUserDomain(repository.NewUserRepository())

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	resp, err := domain.Update(ctx, &model.UpdateUserRequest{
		ID:         user.ID,
		Name:       "Renamed",
		MemberType: "retiree",
	})
	require.NoError(t, err)
	require.True(t, structutil.PartialEqual(model.User{
		Name:       "Renamed",
		MemberType: "retiree",
		Email:      user.Email,
	}, resp.User))
}

func Test_userDomain_Deactivate(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()
	domain := NewUserDomain(userRepo)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = domain.Deactivate(ctx, &model.DeactivateUserRequest{ID: user.ID})
	require.NoError(t, err)

	got, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, got.Active)

	users, err := userRepo.GetList(ctx, repository.UserFilter{ActiveOnly: true}, 0, 10)
	require.NoError(t, err)
	for _, u := range users {
		require.NotEqual(t, user.ID, u.ID)
	}
}

func Test_userDomain_GetList_Filter(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewUserDomain(repository.NewUserRepository())

	_, err := testutil.SampleUser(ctx, &entity.User{MemberType: entity.MemberTypeYoung})
	require.NoError(t, err)
	_, err = testutil.SampleUser(ctx, &entity.User{MemberType: entity.MemberTypeRetiree})
	require.NoError(t, err)

	resp, err := domain.GetList(ctx, &model.GetUsersRequest{MemberType: "young"})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	require.Equal(t, "young", resp.Users[0].MemberType)
}
