package model

type Badge struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Icon           string `json:"icon,omitempty"`
	PointsRequired int    `json:"points_required"`
	Category       string `json:"category,omitempty"`
}

type UserBadge struct {
	Badge    Badge  `json:"badge"`
	EarnedAt string `json:"earned_at"`
}

type PointRecord struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Points      int    `json:"points"`
	Source      string `json:"source"`
	SourceID    string `json:"source_id,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type UserLevel struct {
	UserID           string `json:"user_id"`
	Level            int    `json:"level"`
	ExperiencePoints int    `json:"experience_points"`
	TotalPoints      int    `json:"total_points"`
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	TotalPoints int    `json:"total_points"`
	BadgeCount  int    `json:"badge_count"`
}

type AddPointsRequest struct {
	UserID      string `json:"user_id"`
	Source      string `json:"source"`
	SourceID    string `json:"source_id"`
	Description string `json:"description"`
}

type AddPointsResponse struct {
	Points    int       `json:"points"`
	Level     UserLevel `json:"level"`
	NewBadges []Badge   `json:"new_badges"`
}

type GetUserStatsRequest struct {
	UserID string `json:"user_id"`
}

type GetUserStatsResponse struct {
	Level        UserLevel     `json:"level"`
	NextLevelAt  int           `json:"next_level_at"`
	Rank         int           `json:"rank"`
	BadgeCount   int           `json:"badge_count"`
	RecentBadges []UserBadge   `json:"recent_badges"`
	RecentPoints []PointRecord `json:"recent_points"`
}

type GetLeaderboardRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type GetUserBadgesRequest struct {
	UserID string `json:"user_id"`
}

type GetUserBadgesResponse struct {
	Badges []UserBadge `json:"badges"`
}

type GetAllBadgesRequest struct{}

type GetAllBadgesResponse struct {
	Badges []Badge `json:"badges"`
}

type GetPointHistoryRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetPointHistoryResponse struct {
	Records []PointRecord `json:"records"`
}
