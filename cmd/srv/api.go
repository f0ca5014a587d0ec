package main

import (
	"context"
	"net/http"

	"github.com/coopnet-lab/backend/internal/middleware"
	"github.com/coopnet-lab/backend/internal/model"
	"github.com/coopnet-lab/backend/pkg/router"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.ctx = s.newContext()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: s.configs.ApiServer.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	})

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: c.Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	s.logger.Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.Identity)

	router.GET(s.router, "/health", getHealth)

	// Public read API
	{
		router.GET(s.router, "/getUser", s.userDomain.Get)
		router.GET(s.router, "/getUsers", s.userDomain.GetList)

		router.GET(s.router, "/getProject", s.projectDomain.Get)
		router.GET(s.router, "/getProjects", s.projectDomain.GetList)
		router.GET(s.router, "/getProjectVotes", s.projectDomain.GetVotes)

		router.GET(s.router, "/getEvent", s.eventDomain.Get)
		router.GET(s.router, "/getEvents", s.eventDomain.GetList)

		router.GET(s.router, "/getPost", s.forumDomain.GetPost)
		router.GET(s.router, "/getPosts", s.forumDomain.GetPosts)
		router.GET(s.router, "/getComments", s.forumDomain.GetComments)

		router.GET(s.router, "/getCommunity", s.communityDomain.Get)
		router.GET(s.router, "/getCommunities", s.communityDomain.GetList)
		router.GET(s.router, "/getCommunityMembers", s.communityDomain.GetMembers)

		router.GET(s.router, "/getCourse", s.courseDomain.Get)
		router.GET(s.router, "/getCourses", s.courseDomain.GetList)

		router.GET(s.router, "/getUserStats", s.statisticDomain.GetUserStats)
		router.GET(s.router, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
		router.GET(s.router, "/getUserBadges", s.statisticDomain.GetUserBadges)
		router.GET(s.router, "/getAllBadges", s.statisticDomain.GetAllBadges)
		router.GET(s.router, "/getPointHistory", s.statisticDomain.GetPointHistory)
	}

	// These following APIs need an identified user.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate)
	{
		// User API
		router.POST(authRouter, "/createUser", s.userDomain.Create)
		router.POST(authRouter, "/updateUser", s.userDomain.Update)
		router.POST(authRouter, "/deactivateUser", s.userDomain.Deactivate)

		// Project API
		router.POST(authRouter, "/createProject", s.projectDomain.Create)
		router.POST(authRouter, "/updateProject", s.projectDomain.Update)
		router.POST(authRouter, "/deleteProject", s.projectDomain.Delete)
		router.POST(authRouter, "/openProjectVoting", s.projectDomain.OpenVoting)
		router.POST(authRouter, "/voteProject", s.projectDomain.Vote)

		// Event API
		router.POST(authRouter, "/createEvent", s.eventDomain.Create)
		router.POST(authRouter, "/updateEvent", s.eventDomain.Update)
		router.POST(authRouter, "/deleteEvent", s.eventDomain.Delete)
		router.POST(authRouter, "/registerEvent", s.eventDomain.Register)
		router.GET(authRouter, "/getEventRegistrations", s.eventDomain.GetRegistrations)
		router.GET(authRouter, "/getMyEventRegistrations", s.eventDomain.GetMyRegistrations)
		router.POST(authRouter, "/markEventAttendance", s.eventDomain.MarkAttendance)

		// Forum API
		router.POST(authRouter, "/createPost", s.forumDomain.CreatePost)
		router.POST(authRouter, "/updatePost", s.forumDomain.UpdatePost)
		router.POST(authRouter, "/deletePost", s.forumDomain.DeletePost)
		router.POST(authRouter, "/likePost", s.forumDomain.LikePost)
		router.POST(authRouter, "/createComment", s.forumDomain.CreateComment)
		router.POST(authRouter, "/deleteComment", s.forumDomain.DeleteComment)

		// Community API
		router.POST(authRouter, "/createCommunity", s.communityDomain.Create)
		router.POST(authRouter, "/updateCommunity", s.communityDomain.Update)
		router.POST(authRouter, "/deleteCommunity", s.communityDomain.Delete)
		router.POST(authRouter, "/joinCommunity", s.communityDomain.Join)
		router.POST(authRouter, "/leaveCommunity", s.communityDomain.Leave)
		router.POST(authRouter, "/updateCommunityMemberRole", s.communityDomain.UpdateMemberRole)
		router.POST(authRouter, "/removeCommunityMember", s.communityDomain.RemoveMember)

		// Course API
		router.POST(authRouter, "/createCourse", s.courseDomain.Create)
		router.POST(authRouter, "/updateCourse", s.courseDomain.Update)
		router.POST(authRouter, "/deleteCourse", s.courseDomain.Delete)
		router.POST(authRouter, "/enrollCourse", s.courseDomain.Enroll)
		router.POST(authRouter, "/updateCourseProgress", s.courseDomain.UpdateProgress)
		router.POST(authRouter, "/completeCourse", s.courseDomain.Complete)
		router.GET(authRouter, "/getMyEnrollments", s.courseDomain.GetMyEnrollments)
		router.GET(authRouter, "/getCourseEnrollments", s.courseDomain.GetEnrollments)

		// Gamification API
		router.POST(authRouter, "/addPoints", s.statisticDomain.AddPoints)
	}
}

func getHealth(ctx context.Context, req *model.GetHealthRequest) (*model.GetHealthResponse, error) {
	return &model.GetHealthResponse{Status: "healthy"}, nil
}
