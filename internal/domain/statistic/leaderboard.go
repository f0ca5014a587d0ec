package statistic

import (
	"context"
	"sort"

	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/errorx"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"github.com/coopnet-lab/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const keyPointLeaderboard = "leaderboard:points"

// loadBatchSize bounds one database page while warming the redis key.
const loadBatchSize = 500

type Entry struct {
	UserID      string
	TotalPoints int
	Rank        int
}

type Leaderboard interface {
	GetTop(ctx context.Context, offset, limit int) ([]Entry, error)
	GetRank(ctx context.Context, userID string) (uint64, error)
	ChangePointLeaderboard(ctx context.Context, userID string, value int64) error
}

type leaderboard struct {
	pointRepo   repository.PointRepository
	redisClient xredis.Client
}

func New(pointRepo repository.PointRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{pointRepo: pointRepo, redisClient: redisClient}
}

func (l *leaderboard) GetTop(ctx context.Context, offset, limit int) ([]Entry, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, keyPointLeaderboard, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	// Redis reverse ranges return equal scores in reverse lexical member
	// order. Equal totals rank by user id ascending, so re-sort the tie
	// runs before assigning ranks.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}

		return results[i].Member.(string) < results[j].Member.(string)
	})

	entries := []Entry{}
	for i, z := range results {
		entries = append(entries, Entry{
			UserID:      z.Member.(string),
			TotalPoints: int(z.Score),
			Rank:        offset + i + 1,
		})
	}

	return entries, nil
}

func (l *leaderboard) GetRank(ctx context.Context, userID string) (uint64, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	rank, err := l.redisClient.ZRevRank(ctx, keyPointLeaderboard, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangePointLeaderboard(
	ctx context.Context, userID string, value int64,
) error {
	ok, err := l.redisClient.Exist(ctx, keyPointLeaderboard)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, no need to update. It will be
	// rebuilt from database on the next read.
	if !ok {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, keyPointLeaderboard, value, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)
	}

	return nil
}

func (l *leaderboard) ensureLoaded(ctx context.Context) error {
	ok, err := l.redisClient.Exist(ctx, keyPointLeaderboard)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	if ok {
		return nil
	}

	for offset := 0; ; offset += loadBatchSize {
		levels, err := l.pointRepo.GetTopByPoints(ctx, offset, loadBatchSize)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot load leaderboard from database: %v", err)
			return errorx.Unknown
		}

		for _, level := range levels {
			err := l.redisClient.ZAdd(ctx, keyPointLeaderboard, redis.Z{
				Member: level.UserID,
				Score:  float64(level.TotalPoints),
			})
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
				return errorx.Unknown
			}
		}

		if len(levels) < loadBatchSize {
			break
		}
	}

	return nil
}
