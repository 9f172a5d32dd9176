package service

import (
	"context"

	"github.com/article-comments-api/internal/models"
	"github.com/article-comments-api/internal/repository"
	"github.com/rs/zerolog"
)

// CommentService defines the comment store operations. Creation and the text
// edit need an authenticated principal; reads are anonymous.
type CommentService interface {
	CreateComment(ctx context.Context, principal *models.Principal, articleTitle, text string) (*models.Comment, error)
	CreateReply(ctx context.Context, principal *models.Principal, commentID, text string) (*models.Reply, error)
	GetComments(ctx context.Context, articleTitle string) ([]*models.Comment, error)
	GetCommentCount(ctx context.Context, articleTitle string) (int, error)
	UpdateCommentText(ctx context.Context, principal *models.Principal, commentID, text string) error
	FindComment(ctx context.Context, commentID string) (*models.Comment, error)
	GetTotals(ctx context.Context) (comments int, replies int, err error)
}

// ModerationService gates every content transition behind the moderator guard
// and applies it atomically against the target comment or reply.
type ModerationService interface {
	RemoveComment(ctx context.Context, principal *models.Principal, commentID string) error
	RemoveReply(ctx context.Context, principal *models.Principal, commentID, replyID string) error
	RedactComment(ctx context.Context, principal *models.Principal, commentID string) error
	RedactReply(ctx context.Context, principal *models.Principal, commentID, replyID string) error
	PartialRedactComment(ctx context.Context, principal *models.Principal, commentID, redactedText string) error
	PartialRedactReply(ctx context.Context, principal *models.Principal, commentID, replyID, redactedText string) error
}

// Services holds all service interfaces
type Services struct {
	Comment    CommentService
	Moderation ModerationService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Comment:    newCommentService(repos.Comment, repos.Stats, log),
		Moderation: newModerationService(repos.Comment, log),
	}
}
