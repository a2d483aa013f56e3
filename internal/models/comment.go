package models

import "time"

// Comment is a single comment inside a content partition. Likes equals the
// size of LikedBy after every mutation.
type Comment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
	Likes      int       `json:"likes"`
	LikedBy    []string  `json:"likedBy"`
}

// LikedByUser reports whether userID already likes the comment.
func (c *Comment) LikedByUser(userID string) bool {
	for _, id := range c.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// CreateCommentRequest defines the request body for posting a comment.
// Blank bodies are dropped by the comment store, not rejected here.
type CreateCommentRequest struct {
	Body string `json:"body" validate:"max=500"`
}
