package gamification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/coopnet-lab/backend/internal/entity"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/errorx"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Leaderboard is notified whenever a member's lifetime points change.
type Leaderboard interface {
	ChangePointLeaderboard(ctx context.Context, userID string, value int64) error
}

// Result describes what a single award produced.
type Result struct {
	Points    int
	Level     entity.UserLevel
	NewBadges []entity.Badge
}

// Engine records point awards, raises levels, and grants badges. Every
// mutation goes through the repositories so it joins whatever transaction
// the caller opened.
type Engine struct {
	pointRepo   repository.PointRepository
	badgeRepo   repository.BadgeRepository
	leaderboard Leaderboard
}

func NewEngine(
	pointRepo repository.PointRepository,
	badgeRepo repository.BadgeRepository,
	leaderboard Leaderboard,
) *Engine {
	return &Engine{
		pointRepo:   pointRepo,
		badgeRepo:   badgeRepo,
		leaderboard: leaderboard,
	}
}

// Award appends a ledger row and applies its points to the member's
// progress. Unrecognized sources still get a zero-point ledger row so the
// action is traceable, but they cannot change level or badges.
func (e *Engine) Award(
	ctx context.Context, userID, source, sourceID, description string,
) (*Result, error) {
	points := xcontext.Configs(ctx).Gamification.PointValues[source]

	record := &entity.PointRecord{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      userID,
		Points:      points,
		Source:      source,
		Description: description,
	}

	if sourceID != "" {
		record.SourceID = sql.NullString{Valid: true, String: sourceID}
	}

	if err := e.pointRepo.CreateRecord(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point record: %v", err)
		return nil, errorx.Unknown
	}

	if err := e.pointRepo.EnsureLevel(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure user level row: %v", err)
		return nil, errorx.Unknown
	}

	if points > 0 {
		if err := e.pointRepo.AddPoints(ctx, userID, points); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot add points: %v", err)
			return nil, errorx.Unknown
		}
	}

	userLevel, err := e.pointRepo.GetLevel(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user level: %v", err)
		return nil, errorx.Unknown
	}

	thresholds := xcontext.Configs(ctx).Gamification.LevelThresholds
	newLevel := CalculateLevel(thresholds, userLevel.TotalPoints)
	if newLevel > userLevel.Level {
		if err := e.pointRepo.RaiseLevel(ctx, userID, newLevel); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot raise level: %v", err)
			return nil, errorx.Unknown
		}

		userLevel.Level = newLevel
	}

	newBadges, err := e.scanAndGrant(ctx, userID, userLevel.TotalPoints)
	if err != nil {
		return nil, err
	}

	if points > 0 && e.leaderboard != nil {
		// Ranking is a cache over user_levels, so a failed bump is not
		// worth failing the award.
		if err := e.leaderboard.ChangePointLeaderboard(ctx, userID, int64(points)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
		}
	}

	return &Result{Points: points, Level: *userLevel, NewBadges: newBadges}, nil
}

// scanAndGrant gives the member every badge whose requirement the
// lifetime points now satisfy. Grants already present are skipped.
func (e *Engine) scanAndGrant(
	ctx context.Context, userID string, totalPoints int,
) ([]entity.Badge, error) {
	eligible, err := e.badgeRepo.GetEligible(ctx, userID, totalPoints)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot scan eligible badges: %v", err)
		return nil, errorx.Unknown
	}

	granted := []entity.Badge{}
	for _, badge := range eligible {
		userBadge := &entity.UserBadge{
			UserID:   userID,
			BadgeID:  badge.ID,
			EarnedAt: time.Now(),
		}

		if err := e.badgeRepo.GrantToUser(ctx, userBadge); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot grant badge to user: %v", err)
			return nil, errorx.Unknown
		}

		granted = append(granted, badge)
	}

	return granted, nil
}
