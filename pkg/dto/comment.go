package dto

// CommentRequest is the body of POST /api/comments/.
type CommentRequest struct {
	ProjectID int64  `json:"project_id" validate:"required,gt=0"`
	Content   string `json:"content" validate:"required,min=5,max=500"`
}

// ReportRequest is the body of POST /api/comments/{id}/report/.
type ReportRequest struct {
	Reason string `json:"reason" validate:"required,max=255"`
}

// FollowResponse is returned by follow and unfollow.
type FollowResponse struct {
	IsFollowing bool `json:"is_following"`
}
