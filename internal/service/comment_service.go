package service

import (
	"context"
	"fmt"
	"time"

	"github.com/article-comments-api/internal/models"
	"github.com/article-comments-api/internal/repository"
	"github.com/article-comments-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	stats    repository.StatsRepository
	log      zerolog.Logger
}

func newCommentService(comments repository.CommentRepository, stats repository.StatsRepository, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		stats:    stats,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// CreateComment persists a new comment and bumps the article counter
func (s *commentService) CreateComment(ctx context.Context, principal *models.Principal, articleTitle, text string) (*models.Comment, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}
	if errs := validation.ValidateCommentInput(articleTitle, text); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, errs[0].Message)
	}

	comment := &models.Comment{
		ID:           uuid.New().String(),
		ArticleTitle: articleTitle,
		Author:       principal.Username,
		Body:         text,
		Moderation:   models.ModerationNormal,
		CreatedAt:    time.Now().UTC(),
		Replies:      []models.Reply{},
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.incrementStats(ctx, articleTitle)

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("article_title", articleTitle).
		Str("author", comment.Author).
		Msg("Comment created")

	return comment, nil
}

// CreateReply appends a reply to the parent comment's sequence
func (s *commentService) CreateReply(ctx context.Context, principal *models.Principal, commentID, text string) (*models.Reply, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}
	if errs := validation.ValidateReplyInput(text); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, errs[0].Message)
	}

	reply := &models.Reply{
		ID:         uuid.New().String(),
		Author:     principal.Username,
		Body:       text,
		Moderation: models.ModerationNormal,
		CreatedAt:  time.Now().UTC(),
	}

	articleTitle, found, err := s.comments.AppendReply(ctx, commentID, reply)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	s.incrementStats(ctx, articleTitle)

	s.log.Info().
		Str("reply_id", reply.ID).
		Str("comment_id", commentID).
		Str("author", reply.Author).
		Msg("Reply created")

	return reply, nil
}

// GetComments returns all comments for the exact article title, replies in
// insertion order. An unknown article yields an empty slice, not an error.
func (s *commentService) GetComments(ctx context.Context, articleTitle string) ([]*models.Comment, error) {
	comments, err := s.comments.GetByArticle(ctx, articleTitle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return comments, nil
}

// GetCommentCount returns the maintained counter, falling back to a direct
// count of top-level comments when no stats row exists yet. The fallback does
// not include replies, so it can undercount relative to the counter.
func (s *commentService) GetCommentCount(ctx context.Context, articleTitle string) (int, error) {
	count, found, err := s.stats.GetCount(ctx, articleTitle)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if found {
		return count, nil
	}

	count, err = s.comments.CountByArticle(ctx, articleTitle)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}

// UpdateCommentText replaces a comment's text. Any authenticated user may
// edit any comment; there is no ownership check at this layer or below.
func (s *commentService) UpdateCommentText(ctx context.Context, principal *models.Principal, commentID, text string) error {
	if principal == nil {
		return ErrUnauthorized
	}
	if errs := validation.ValidateReplyInput(text); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrBadRequest, errs[0].Message)
	}

	updated, err := s.comments.UpdateText(ctx, commentID, text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

// FindComment resolves a single comment by id
func (s *commentService) FindComment(ctx context.Context, commentID string) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

// GetTotals returns corpus-wide comment and reply counts for the metrics
// endpoint
func (s *commentService) GetTotals(ctx context.Context) (int, int, error) {
	comments, replies, err := s.comments.Totals(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return comments, replies, nil
}

// incrementStats runs after the creating write has committed. A failed
// increment does not undo the creation; the counter's fallback path covers
// articles whose stats row never materialized.
func (s *commentService) incrementStats(ctx context.Context, articleTitle string) {
	if err := s.stats.IncrementCount(ctx, articleTitle); err != nil {
		s.log.Error().Err(err).
			Str("article_title", articleTitle).
			Msg("Failed to increment comment count")
	}
}
