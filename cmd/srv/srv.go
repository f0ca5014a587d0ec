package main

import (
	"context"
	"net/http"

	"github.com/coopnet-lab/backend/config"
	"github.com/coopnet-lab/backend/internal/domain"
	"github.com/coopnet-lab/backend/internal/domain/gamification"
	"github.com/coopnet-lab/backend/internal/domain/statistic"
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/pkg/logger"
	"github.com/coopnet-lab/backend/pkg/router"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"github.com/coopnet-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient xredis.Client

	userRepo      repository.UserRepository
	projectRepo   repository.ProjectRepository
	eventRepo     repository.EventRepository
	forumRepo     repository.ForumRepository
	communityRepo repository.CommunityRepository
	courseRepo    repository.CourseRepository
	badgeRepo     repository.BadgeRepository
	pointRepo     repository.PointRepository

	engine      *gamification.Engine
	leaderboard statistic.Leaderboard

	userDomain      domain.UserDomain
	projectDomain   domain.ProjectDomain
	eventDomain     domain.EventDomain
	forumDomain     domain.ForumDomain
	communityDomain domain.CommunityDomain
	courseDomain    domain.CourseDomain
	statisticDomain domain.StatisticDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	var err error
	s.configs, err = config.Load(cctx.String("config"))
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" || s.configs.Env == "testing" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) newContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)
	return ctx
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.projectRepo = repository.NewProjectRepository()
	s.eventRepo = repository.NewEventRepository()
	s.forumRepo = repository.NewForumRepository()
	s.communityRepo = repository.NewCommunityRepository()
	s.courseRepo = repository.NewCourseRepository()
	s.badgeRepo = repository.NewBadgeRepository()
	s.pointRepo = repository.NewPointRepository()
}

func (s *srv) loadDomains() {
	s.leaderboard = statistic.New(s.pointRepo, s.redisClient)
	s.engine = gamification.NewEngine(s.pointRepo, s.badgeRepo, s.leaderboard)

	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.projectDomain = domain.NewProjectDomain(s.projectRepo, s.userRepo)
	s.eventDomain = domain.NewEventDomain(s.eventRepo, s.engine)
	s.forumDomain = domain.NewForumDomain(s.forumRepo, s.engine)
	s.communityDomain = domain.NewCommunityDomain(s.communityRepo, s.userRepo, s.engine)
	s.courseDomain = domain.NewCourseDomain(s.courseRepo, s.engine)
	s.statisticDomain = domain.NewStatisticDomain(
		s.pointRepo, s.badgeRepo, s.userRepo, s.engine, s.leaderboard)
}
