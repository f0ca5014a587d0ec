package model

type Course struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Level         string `json:"level"`
	InstructorID  string `json:"instructor_id"`
	DurationHours int    `json:"duration_hours"`
	Active        bool   `json:"active"`
	CreatedAt     string `json:"created_at"`
}

type CourseEnrollment struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	UserID      string `json:"user_id"`
	Progress    int    `json:"progress"`
	IsCompleted bool   `json:"is_completed"`
	CompletedAt string `json:"completed_at,omitempty"`
	EnrolledAt  string `json:"enrolled_at"`
}

type CreateCourseRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Level         string `json:"level"`
	DurationHours int    `json:"duration_hours"`
}

type CreateCourseResponse struct {
	Course Course `json:"course"`
}

type GetCourseRequest struct {
	ID string `json:"id"`
}

type GetCourseResponse struct {
	Course Course `json:"course"`
}

type GetCoursesRequest struct {
	Category string `json:"category"`
	Level    string `json:"level"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetCoursesResponse struct {
	Courses []Course `json:"courses"`
}

type UpdateCourseRequest struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Level         string `json:"level"`
	DurationHours int    `json:"duration_hours"`
}

type UpdateCourseResponse struct {
	Course Course `json:"course"`
}

type DeleteCourseRequest struct {
	ID string `json:"id"`
}

type DeleteCourseResponse struct{}

type EnrollCourseRequest struct {
	CourseID string `json:"course_id"`
}

type EnrollCourseResponse struct {
	Enrollment CourseEnrollment `json:"enrollment"`
}

type UpdateCourseProgressRequest struct {
	CourseID string `json:"course_id"`
	Progress int    `json:"progress"`
}

type UpdateCourseProgressResponse struct {
	Enrollment CourseEnrollment `json:"enrollment"`
}

type CompleteCourseRequest struct {
	CourseID string `json:"course_id"`
}

type CompleteCourseResponse struct {
	Enrollment CourseEnrollment `json:"enrollment"`
}

type GetMyEnrollmentsRequest struct{}

type GetMyEnrollmentsResponse struct {
	Enrollments []CourseEnrollment `json:"enrollments"`
}

type GetCourseEnrollmentsRequest struct {
	CourseID string `json:"course_id"`
}

type GetCourseEnrollmentsResponse struct {
	Enrollments []CourseEnrollment `json:"enrollments"`
}
