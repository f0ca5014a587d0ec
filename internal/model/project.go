package model

type Project struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Description          string `json:"description"`
	Category             string `json:"category"`
	Status               string `json:"status"`
	AuthorID             string `json:"author_id"`
	VotingStart          string `json:"voting_start,omitempty"`
	VotingEnd            string `json:"voting_end,omitempty"`
	VotesFor             int    `json:"votes_for"`
	VotesAgainst         int    `json:"votes_against"`
	EstimatedBudget      string `json:"estimated_budget,omitempty"`
	BeneficiaryCommunity string `json:"beneficiary_community,omitempty"`
	CreatedAt            string `json:"created_at"`
}

type Vote struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	VoteFor   bool   `json:"vote_for"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

type CreateProjectRequest struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	Category             string `json:"category"`
	EstimatedBudget      string `json:"estimated_budget"`
	BeneficiaryCommunity string `json:"beneficiary_community"`
}

type CreateProjectResponse struct {
	Project Project `json:"project"`
}

type GetProjectRequest struct {
	ID string `json:"id"`
}

type GetProjectResponse struct {
	Project Project `json:"project"`
}

type GetProjectsRequest struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	AuthorID string `json:"author_id"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetProjectsResponse struct {
	Projects []Project `json:"projects"`
}

type UpdateProjectRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
}

type UpdateProjectResponse struct {
	Project Project `json:"project"`
}

type DeleteProjectRequest struct {
	ID string `json:"id"`
}

type DeleteProjectResponse struct{}

type OpenProjectVotingRequest struct {
	ID          string `json:"id"`
	VotingStart string `json:"voting_start"`
	VotingEnd   string `json:"voting_end"`
}

type OpenProjectVotingResponse struct {
	Project Project `json:"project"`
}

type VoteProjectRequest struct {
	ProjectID string `json:"project_id"`
	VoteFor   bool   `json:"vote_for"`
	Comment   string `json:"comment"`
}

type VoteProjectResponse struct {
	Vote Vote `json:"vote"`
}

type GetProjectVotesRequest struct {
	ProjectID string `json:"project_id"`
}

type GetProjectVotesResponse struct {
	Votes []Vote `json:"votes"`
}
