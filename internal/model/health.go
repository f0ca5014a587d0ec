package model

type GetHealthRequest struct{}

type GetHealthResponse struct {
	Status string `json:"status"`
}
