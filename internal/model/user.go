package model

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	MemberType string `json:"member_type"`
	Active     bool   `json:"active"`
	CreatedAt  string `json:"created_at"`
}

type CreateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	MemberType string `json:"member_type"`
}

type CreateUserResponse struct {
	User User `json:"user"`
}

type GetUserRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type GetUsersRequest struct {
	MemberType string `json:"member_type"`
	ActiveOnly bool   `json:"active_only"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

type GetUsersResponse struct {
	Users []User `json:"users"`
}

type UpdateUserRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	MemberType string `json:"member_type"`
}

type UpdateUserResponse struct {
	User User `json:"user"`
}

type DeactivateUserRequest struct {
	ID string `json:"id"`
}

type DeactivateUserResponse struct{}
