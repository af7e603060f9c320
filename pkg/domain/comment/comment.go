// Package comment holds the project comment record.
package comment

import "time"

// Content length bounds enforced when a comment is submitted.
const (
	MinContentLength = 5
	MaxContentLength = 500
)

// Comment is a user's message on a project. Deleted comments are kept with
// IsDeleted set. UserName and UserAvatarURL are copies of the author's
// profile taken when the comment was served.
type Comment struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"project_id"`
	UserID        int64     `json:"user_id"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	IsReported    bool      `json:"is_reported"`
	IsDeleted     bool      `json:"is_deleted"`
	UserName      string    `json:"user_name,omitempty"`
	UserAvatarURL string    `json:"user_avatar_url,omitempty"`
}

// Visible reports whether the comment should be shown in a project thread.
func (c *Comment) Visible() bool {
	return !c.IsDeleted
}
