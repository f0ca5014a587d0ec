package model

type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Status      string `json:"status"`
	AuthorID    string `json:"author_id"`
	CommunityID string `json:"community_id,omitempty"`
	Tags        string `json:"tags,omitempty"`
	ViewsCount  int    `json:"views_count"`
	LikesCount  int    `json:"likes_count"`
	PublishedAt string `json:"published_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
	ParentID  string `json:"parent_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

type CreatePostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Status      string `json:"status"`
	CommunityID string `json:"community_id"`
	Tags        string `json:"tags"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetPostRequest struct {
	ID string `json:"id"`
}

type GetPostResponse struct {
	Post Post `json:"post"`
}

type GetPostsRequest struct {
	Status      string `json:"status"`
	AuthorID    string `json:"author_id"`
	CommunityID string `json:"community_id"`
	Tag         string `json:"tag"`
	Offset      int    `json:"offset"`
	Limit       int    `json:"limit"`
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
}

type UpdatePostRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
	Tags    string `json:"tags"`
}

type UpdatePostResponse struct {
	Post Post `json:"post"`
}

type DeletePostRequest struct {
	ID string `json:"id"`
}

type DeletePostResponse struct{}

type LikePostRequest struct {
	PostID string `json:"post_id"`
}

type LikePostResponse struct{}

type CreateCommentRequest struct {
	PostID   string `json:"post_id"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id"`
}

type CreateCommentResponse struct {
	Comment Comment `json:"comment"`
}

type GetCommentsRequest struct {
	PostID string `json:"post_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type DeleteCommentRequest struct {
	ID string `json:"id"`
}

type DeleteCommentResponse struct{}
