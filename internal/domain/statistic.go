package domain

import (
	"context"
	"errors"

	"github.com/coopnet-lab/backend/internal/common"
	"github.com/coopnet-lab/backend/internal/domain/gamification"
	"github.com/coopnet-lab/backend/internal/domain/statistic"
	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/model"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/errorx"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type StatisticDomain interface {
	GetUserStats(ctx context.Context, req *model.GetUserStatsRequest) (*model.GetUserStatsResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetUserBadges(ctx context.Context, req *model.GetUserBadgesRequest) (*model.GetUserBadgesResponse, error)
	GetAllBadges(ctx context.Context, req *model.GetAllBadgesRequest) (*model.GetAllBadgesResponse, error)
	GetPointHistory(ctx context.Context, req *model.GetPointHistoryRequest) (*model.GetPointHistoryResponse, error)
	AddPoints(ctx context.Context, req *model.AddPointsRequest) (*model.AddPointsResponse, error)
}

type statisticDomain struct {
	pointRepo   repository.PointRepository
	badgeRepo   repository.BadgeRepository
	userRepo    repository.UserRepository
	engine      *gamification.Engine
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(
	pointRepo repository.PointRepository,
	badgeRepo repository.BadgeRepository,
	userRepo repository.UserRepository,
	engine *gamification.Engine,
	leaderboard statistic.Leaderboard,
) *statisticDomain {
	return &statisticDomain{
		pointRepo:   pointRepo,
		badgeRepo:   badgeRepo,
		userRepo:    userRepo,
		engine:      engine,
		leaderboard: leaderboard,
	}
}

func (d *statisticDomain) GetUserStats(
	ctx context.Context, req *model.GetUserStatsRequest,
) (*model.GetUserStatsResponse, error) {
	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	// Stats are well-defined for any known user, even before the first
	// point award.
	if err := d.pointRepo.EnsureLevel(ctx, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure user level row: %v", err)
		return nil, errorx.Unknown
	}

	userLevel, err := d.pointRepo.GetLevel(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user level: %v", err)
		return nil, errorx.Unknown
	}

	badgeCount, err := d.badgeRepo.CountByUserID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count user badges: %v", err)
		return nil, errorx.Unknown
	}

	rank, err := d.leaderboard.GetRank(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	gamificationCfg := xcontext.Configs(ctx).Gamification
	recentBadges, err := d.badgeRepo.GetRecentByUserID(ctx, req.UserID, gamificationCfg.RecentBadges)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recent badges: %v", err)
		return nil, errorx.Unknown
	}

	recentPoints, err := d.pointRepo.GetRecordsByUserID(ctx, req.UserID, 0, gamificationCfg.RecentPoints)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recent point records: %v", err)
		return nil, errorx.Unknown
	}

	modelBadges, err := d.convertUserBadges(ctx, recentBadges)
	if err != nil {
		return nil, err
	}

	modelPoints := []model.PointRecord{}
	for i := range recentPoints {
		modelPoints = append(modelPoints, model.ConvertPointRecord(&recentPoints[i]))
	}

	return &model.GetUserStatsResponse{
		Level:        model.ConvertUserLevel(userLevel),
		NextLevelAt:  gamification.PointsForNextLevel(gamificationCfg.LevelThresholds, userLevel.Level),
		Rank:         int(rank),
		BadgeCount:   int(badgeCount),
		RecentBadges: modelBadges,
		RecentPoints: modelPoints,
	}, nil
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	entries, err := d.leaderboard.GetTop(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := []model.LeaderboardEntry{}
	for _, entry := range entries {
		user, err := d.userRepo.GetByID(ctx, entry.UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get leaderboard user: %v", err)
			return nil, errorx.Unknown
		}

		userLevel, err := d.pointRepo.GetLevel(ctx, entry.UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get leaderboard user level: %v", err)
			return nil, errorx.Unknown
		}

		badgeCount, err := d.badgeRepo.CountByUserID(ctx, entry.UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count leaderboard user badges: %v", err)
			return nil, errorx.Unknown
		}

		resp = append(resp, model.LeaderboardEntry{
			Rank:        entry.Rank,
			UserID:      entry.UserID,
			Name:        user.Name,
			Level:       userLevel.Level,
			TotalPoints: entry.TotalPoints,
			BadgeCount:  int(badgeCount),
		})
	}

	return &model.GetLeaderboardResponse{Entries: resp}, nil
}

func (d *statisticDomain) GetUserBadges(
	ctx context.Context, req *model.GetUserBadgesRequest,
) (*model.GetUserBadgesResponse, error) {
	userBadges, err := d.badgeRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user badges: %v", err)
		return nil, errorx.Unknown
	}

	modelBadges, err := d.convertUserBadges(ctx, userBadges)
	if err != nil {
		return nil, err
	}

	return &model.GetUserBadgesResponse{Badges: modelBadges}, nil
}

func (d *statisticDomain) GetAllBadges(
	ctx context.Context, req *model.GetAllBadgesRequest,
) (*model.GetAllBadgesResponse, error) {
	badges, err := d.badgeRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badges: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Badge{}
	for i := range badges {
		resp = append(resp, model.ConvertBadge(&badges[i]))
	}

	return &model.GetAllBadgesResponse{Badges: resp}, nil
}

func (d *statisticDomain) GetPointHistory(
	ctx context.Context, req *model.GetPointHistoryRequest,
) (*model.GetPointHistoryResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	records, err := d.pointRepo.GetRecordsByUserID(ctx, req.UserID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point records: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.PointRecord{}
	for i := range records {
		resp = append(resp, model.ConvertPointRecord(&records[i]))
	}

	return &model.GetPointHistoryResponse{Records: resp}, nil
}

// AddPoints is the manual entry point for sources without a dedicated
// action, for example attendance imported after an event.
func (d *statisticDomain) AddPoints(
	ctx context.Context, req *model.AddPointsRequest,
) (*model.AddPointsResponse, error) {
	if req.Source == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty source")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	result, err := d.engine.Award(ctx, req.UserID, req.Source, req.SourceID, req.Description)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	newBadges := []model.Badge{}
	for i := range result.NewBadges {
		newBadges = append(newBadges, model.ConvertBadge(&result.NewBadges[i]))
	}

	return &model.AddPointsResponse{
		Points:    result.Points,
		Level:     model.ConvertUserLevel(&result.Level),
		NewBadges: newBadges,
	}, nil
}

func (d *statisticDomain) convertUserBadges(
	ctx context.Context, userBadges []entity.UserBadge,
) ([]model.UserBadge, error) {
	resp := []model.UserBadge{}
	for i := range userBadges {
		badge, err := d.badgeRepo.GetByID(ctx, userBadges[i].BadgeID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get badge: %v", err)
			return nil, errorx.Unknown
		}

		resp = append(resp, model.ConvertUserBadge(&userBadges[i], badge))
	}

	return resp, nil
}
