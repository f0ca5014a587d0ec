package domain

import (
	"context"
	"errors"

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

type UserDomain interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.CreateUserResponse, error)
	Get(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	GetList(ctx context.Context, req *model.GetUsersRequest) (*model.GetUsersResponse, error)
	Update(ctx context.Context, req *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	Deactivate(ctx context.Context, req *model.DeactivateUserRequest) (*model.DeactivateUserResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

func (d *userDomain) Create(
	ctx context.Context, req *model.CreateUserRequest,
) (*model.CreateUserResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	if req.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty email")
	}

	memberType := entity.MemberTypeGeneral
	if req.MemberType != "" {
		var err error
		memberType, err = enum.ToEnum[entity.MemberType](req.MemberType)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid member type %s", req.MemberType)
		}
	}

	_, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "The email was registered before")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:       entity.Base{ID: uuid.NewString()},
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		MemberType: memberType,
		Active:     true,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateUserResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) Get(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	if req.ID == "" && req.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id and email")
	}

	var user *entity.User
	var err error
	if req.ID != "" {
		user, err = d.userRepo.GetByID(ctx, req.ID)
	} else {
		user, err = d.userRepo.GetByEmail(ctx, req.Email)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) GetList(
	ctx context.Context, req *model.GetUsersRequest,
) (*model.GetUsersResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.UserFilter{ActiveOnly: req.ActiveOnly}
	if req.MemberType != "" {
		filter.MemberType, err = enum.ToEnum[entity.MemberType](req.MemberType)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid member type %s", req.MemberType)
		}
	}

	users, err := d.userRepo.GetList(ctx, filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of users: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.User{}
	for i := range users {
		resp = append(resp, model.ConvertUser(&users[i]))
	}

	return &model.GetUsersResponse{Users: resp}, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	changes := entity.User{
		Name:  req.Name,
		Phone: req.Phone,
	}

	if req.MemberType != "" {
		changes.MemberType, err = enum.ToEnum[entity.MemberType](req.MemberType)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid member type %s", req.MemberType)
		}
	}

	if err := d.userRepo.UpdateByID(ctx, user.ID, &changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err = d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) Deactivate(
	ctx context.Context, req *model.DeactivateUserRequest,
) (*model.DeactivateUserResponse, error) {
	if _, err := d.userRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.Deactivate(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deactivate user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeactivateUserResponse{}, nil
}
