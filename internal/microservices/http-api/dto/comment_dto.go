package dto

import (
	"time"

	"titlehub/internal/microservices/http-api/models"
)

// CreateCommentRequest for creating or replacing a comment's text
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=5000"`
}

type UpdateCommentRequest = CreateCommentRequest

// CommentResponse shows the author by username
type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func CommentFromModel(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Text:    c.Text,
		Author:  c.Author.Username,
		PubDate: c.PubDate,
	}
}

func CommentsFromModels(list []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(list))
	for i := range list {
		out = append(out, CommentFromModel(&list[i]))
	}
	return out
}
