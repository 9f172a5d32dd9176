package repository

import (
	"context"
	"time"

	"github.com/article-comments-api/internal/database"
	"github.com/article-comments-api/internal/models"
)

// CommentRepository defines the interface for comment data operations.
// Lookup methods return (nil, nil) when the record does not exist; mutation
// methods report a false bool instead. Errors mean the backend failed.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	// AppendReply appends a reply to the parent comment's sequence. The parent
	// lookup and the append happen in one transaction with the parent row
	// locked, so concurrent appends to the same comment cannot lose updates.
	// Returns the parent's article title and whether the parent exists.
	AppendReply(ctx context.Context, commentID string, reply *models.Reply) (string, bool, error)
	GetByArticle(ctx context.Context, articleTitle string) ([]*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	UpdateText(ctx context.Context, id, body string) (bool, error)
	// ModerateComment applies a content transition to a comment as a single
	// atomic update.
	ModerateComment(ctx context.Context, id string, status models.ModerationStatus, body, moderatedBy string, at time.Time) (bool, error)
	// ModerateReply applies a content transition to a reply resolved by
	// (commentID, replyID); false when the path does not resolve.
	ModerateReply(ctx context.Context, commentID, replyID string, status models.ModerationStatus, body, moderatedBy string, at time.Time) (bool, error)
	CountByArticle(ctx context.Context, articleTitle string) (int, error)
	// Totals returns corpus-wide comment and reply counts
	Totals(ctx context.Context) (comments int, replies int, err error)
}

// StatsRepository defines the interface for the per-article comment counter
type StatsRepository interface {
	// IncrementCount upserts the stats row, creating it at 1 if absent. The
	// increment is a single statement, so concurrent creations on the same
	// article cannot lose increments.
	IncrementCount(ctx context.Context, articleTitle string) error
	// GetCount returns the counter and whether a stats row exists.
	GetCount(ctx context.Context, articleTitle string) (int, bool, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Comment CommentRepository
	Stats   StatsRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Comment: NewCommentRepo(db),
		Stats:   NewStatsRepo(db),
	}
}
