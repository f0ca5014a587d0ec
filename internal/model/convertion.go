package model

import (
	"time"

	"github.com/coopnet-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		MemberType: string(user.MemberType),
		Active:     user.Active,
		CreatedAt:  user.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertProject(project *entity.Project) Project {
	if project == nil {
		return Project{}
	}

	votingStart := ""
	if project.VotingStart.Valid {
		votingStart = project.VotingStart.Time.Format(DefaultTimeLayout)
	}

	votingEnd := ""
	if project.VotingEnd.Valid {
		votingEnd = project.VotingEnd.Time.Format(DefaultTimeLayout)
	}

	return Project{
		ID:                   project.ID,
		Title:                project.Title,
		Description:          project.Description,
		Category:             project.Category,
		Status:               string(project.Status),
		AuthorID:             project.AuthorID,
		VotingStart:          votingStart,
		VotingEnd:            votingEnd,
		VotesFor:             project.VotesFor,
		VotesAgainst:         project.VotesAgainst,
		EstimatedBudget:      project.EstimatedBudget,
		BeneficiaryCommunity: project.BeneficiaryCommunity,
		CreatedAt:            project.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertVote(vote *entity.Vote) Vote {
	if vote == nil {
		return Vote{}
	}

	return Vote{
		ID:        vote.ID,
		ProjectID: vote.ProjectID,
		UserID:    vote.UserID,
		VoteFor:   vote.VoteFor,
		Comment:   vote.Comment,
		CreatedAt: vote.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertEvent(event *entity.Event) Event {
	if event == nil {
		return Event{}
	}

	endDate := ""
	if event.EndDate.Valid {
		endDate = event.EndDate.Time.Format(DefaultTimeLayout)
	}

	return Event{
		ID:                event.ID,
		Title:             event.Title,
		Description:       event.Description,
		EventType:         string(event.EventType),
		StartDate:         event.StartDate.Format(DefaultTimeLayout),
		EndDate:           endDate,
		Location:          event.Location,
		Address:           event.Address,
		MaxCapacity:       event.MaxCapacity,
		RegistrationsOpen: event.RegistrationsOpen,
		OrganizerID:       event.OrganizerID,
		CreatedAt:         event.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertEventRegistration(registration *entity.EventRegistration) EventRegistration {
	if registration == nil {
		return EventRegistration{}
	}

	return EventRegistration{
		ID:        registration.ID,
		EventID:   registration.EventID,
		UserID:    registration.UserID,
		Attended:  registration.Attended,
		Feedback:  registration.Feedback,
		CreatedAt: registration.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPost(post *entity.Post) Post {
	if post == nil {
		return Post{}
	}

	publishedAt := ""
	if post.PublishedAt.Valid {
		publishedAt = post.PublishedAt.Time.Format(DefaultTimeLayout)
	}

	return Post{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		Status:      string(post.Status),
		AuthorID:    post.AuthorID,
		CommunityID: post.CommunityID.String,
		Tags:        post.Tags,
		ViewsCount:  post.ViewsCount,
		LikesCount:  post.LikesCount,
		PublishedAt: publishedAt,
		CreatedAt:   post.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertComment(comment *entity.Comment) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		ParentID:  comment.ParentID.String,
		CreatedAt: comment.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertCommunity(community *entity.Community) Community {
	if community == nil {
		return Community{}
	}

	return Community{
		ID:          community.ID,
		Name:        community.Name,
		Description: community.Description,
		Type:        string(community.Type),
		OwnerID:     community.OwnerID,
		MaxMembers:  community.MaxMembers,
		MemberCount: community.MemberCount,
		Active:      community.Active,
		CreatedAt:   community.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertCommunityMember(member *entity.CommunityMember) CommunityMember {
	if member == nil {
		return CommunityMember{}
	}

	return CommunityMember{
		ID:          member.ID,
		CommunityID: member.CommunityID,
		UserID:      member.UserID,
		Role:        string(member.Role),
		JoinedAt:    member.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertCourse(course *entity.Course) Course {
	if course == nil {
		return Course{}
	}

	return Course{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		Category:      course.Category,
		Level:         string(course.Level),
		InstructorID:  course.InstructorID,
		DurationHours: course.DurationHours,
		Active:        course.Active,
		CreatedAt:     course.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertCourseEnrollment(enrollment *entity.CourseEnrollment) CourseEnrollment {
	if enrollment == nil {
		return CourseEnrollment{}
	}

	completedAt := ""
	if enrollment.CompletedAt.Valid {
		completedAt = enrollment.CompletedAt.Time.Format(DefaultTimeLayout)
	}

	return CourseEnrollment{
		ID:          enrollment.ID,
		CourseID:    enrollment.CourseID,
		UserID:      enrollment.UserID,
		Progress:    enrollment.Progress,
		IsCompleted: enrollment.IsCompleted,
		CompletedAt: completedAt,
		EnrolledAt:  enrollment.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertBadge(badge *entity.Badge) Badge {
	if badge == nil {
		return Badge{}
	}

	return Badge{
		ID:             badge.ID,
		Name:           badge.Name,
		Description:    badge.Description,
		Icon:           badge.Icon,
		PointsRequired: badge.PointsRequired,
		Category:       badge.Category,
	}
}

func ConvertUserBadge(userBadge *entity.UserBadge, badge *entity.Badge) UserBadge {
	if userBadge == nil {
		return UserBadge{}
	}

	return UserBadge{
		Badge:    ConvertBadge(badge),
		EarnedAt: userBadge.EarnedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPointRecord(record *entity.PointRecord) PointRecord {
	if record == nil {
		return PointRecord{}
	}

	return PointRecord{
		ID:          record.ID,
		UserID:      record.UserID,
		Points:      record.Points,
		Source:      record.Source,
		SourceID:    record.SourceID.String,
		Description: record.Description,
		CreatedAt:   record.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertUserLevel(level *entity.UserLevel) UserLevel {
	if level == nil {
		return UserLevel{}
	}

	return UserLevel{
		UserID:           level.UserID,
		Level:            level.Level,
		ExperiencePoints: level.ExperiencePoints,
		TotalPoints:      level.TotalPoints,
	}
}
