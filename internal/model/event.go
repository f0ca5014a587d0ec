package model

type Event struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	EventType         string `json:"event_type"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date,omitempty"`
	Location          string `json:"location"`
	Address           string `json:"address,omitempty"`
	MaxCapacity       int    `json:"max_capacity"`
	RegistrationsOpen bool   `json:"registrations_open"`
	OrganizerID       string `json:"organizer_id"`
	CreatedAt         string `json:"created_at"`
}

type EventRegistration struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	UserID    string `json:"user_id"`
	Attended  bool   `json:"attended"`
	Feedback  string `json:"feedback,omitempty"`
	CreatedAt string `json:"created_at"`
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventType   string `json:"event_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	MaxCapacity int    `json:"max_capacity"`
}

type CreateEventResponse struct {
	Event Event `json:"event"`
}

type GetEventRequest struct {
	ID string `json:"id"`
}

type GetEventResponse struct {
	Event Event `json:"event"`
}

type GetEventsRequest struct {
	EventType string `json:"event_type"`
	From      string `json:"from"`
	To        string `json:"to"`
	Upcoming  bool   `json:"upcoming"`
	Offset    int    `json:"offset"`
	Limit     int    `json:"limit"`
}

type GetEventsResponse struct {
	Events []Event `json:"events"`
}

type UpdateEventRequest struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Location          string `json:"location"`
	Address           string `json:"address"`
	MaxCapacity       int    `json:"max_capacity"`
	RegistrationsOpen *bool  `json:"registrations_open"`
}

type UpdateEventResponse struct {
	Event Event `json:"event"`
}

type DeleteEventRequest struct {
	ID string `json:"id"`
}

type DeleteEventResponse struct{}

type RegisterEventRequest struct {
	EventID string `json:"event_id"`
}

type RegisterEventResponse struct {
	Registration EventRegistration `json:"registration"`
}

type GetEventRegistrationsRequest struct {
	EventID string `json:"event_id"`
}

type GetEventRegistrationsResponse struct {
	Registrations []EventRegistration `json:"registrations"`
}

type GetMyEventRegistrationsRequest struct{}

type GetMyEventRegistrationsResponse struct {
	Registrations []EventRegistration `json:"registrations"`
}

type MarkEventAttendanceRequest struct {
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	Feedback string `json:"feedback"`
}

type MarkEventAttendanceResponse struct {
	Registration EventRegistration `json:"registration"`
}
