package api

import (
	"time"

	"blogsphere/internal/client/session"
)

type LoginResult struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type Blog struct {
	ID         string        `json:"id"`
	AuthorID   string        `json:"authorId"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	CoverImage string        `json:"coverImage,omitempty"`
	Tags       []string      `json:"tags"`
	Author     *session.User `json:"author,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type BlogInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CoverImage string   `json:"coverImage,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// BlogPatch holds the fields to change; nil fields are left as they are.
type BlogPatch struct {
	Title      *string  `json:"title,omitempty"`
	Content    *string  `json:"content,omitempty"`
	CoverImage *string  `json:"coverImage,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type Comment struct {
	ID        string        `json:"id"`
	BlogID    string        `json:"blogId"`
	AuthorID  string        `json:"authorId"`
	ParentID  *string       `json:"parentId,omitempty"`
	Content   string        `json:"content"`
	Author    *session.User `json:"author,omitempty"`
	Replies   []Comment     `json:"replies,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

type Notification struct {
	ID          string        `json:"id"`
	RecipientID string        `json:"recipientId"`
	ActorID     string        `json:"actorId"`
	Type        string        `json:"type"`
	BlogID      *string       `json:"blogId,omitempty"`
	CommentID   *string       `json:"commentId,omitempty"`
	Message     string        `json:"message"`
	Read        bool          `json:"read"`
	Actor       *session.User `json:"actor,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type Photo struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Caption     string    `json:"caption"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}
