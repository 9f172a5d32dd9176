package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/article-comments-api/internal/models"
	"github.com/article-comments-api/internal/repository"
	"github.com/rs/zerolog"
)

// moderationService is the concrete implementation of ModerationService.
// Every operation applies the same guard: no principal is Unauthorized, a
// principal without the moderator flag is Forbidden. The flag itself comes
// from the identity provider and is trusted as-is.
type moderationService struct {
	comments repository.CommentRepository
	log      zerolog.Logger
}

func newModerationService(comments repository.CommentRepository, log zerolog.Logger) *moderationService {
	return &moderationService{
		comments: comments,
		log:      log.With().Str("service", "moderation").Logger(),
	}
}

func (s *moderationService) guard(principal *models.Principal) error {
	if principal == nil {
		return ErrUnauthorized
	}
	if !principal.IsModerator {
		return ErrForbidden
	}
	return nil
}

// RemoveComment soft-deletes a comment: the body becomes the removal
// tombstone and the record is retained for audit and count integrity.
func (s *moderationService) RemoveComment(ctx context.Context, principal *models.Principal, commentID string) error {
	if err := s.guard(principal); err != nil {
		return err
	}
	return s.moderateComment(ctx, principal, commentID, models.ModerationRemoved, models.CommentRemovedTombstone)
}

// RemoveReply soft-deletes a reply in place; the body becomes empty
func (s *moderationService) RemoveReply(ctx context.Context, principal *models.Principal, commentID, replyID string) error {
	if err := s.guard(principal); err != nil {
		return err
	}
	return s.moderateReply(ctx, principal, commentID, replyID, models.ModerationRemoved, "")
}

// RedactComment replaces the body with the fixed redaction tombstone
func (s *moderationService) RedactComment(ctx context.Context, principal *models.Principal, commentID string) error {
	if err := s.guard(principal); err != nil {
		return err
	}
	return s.moderateComment(ctx, principal, commentID, models.ModerationRedacted, models.CommentRedactedTombstone)
}

// RedactReply replaces the reply body with the fixed redaction tombstone
func (s *moderationService) RedactReply(ctx context.Context, principal *models.Principal, commentID, replyID string) error {
	if err := s.guard(principal); err != nil {
		return err
	}
	return s.moderateReply(ctx, principal, commentID, replyID, models.ModerationRedacted, models.ReplyRedactedTombstone)
}

// PartialRedactComment replaces the body with moderator-supplied text
func (s *moderationService) PartialRedactComment(ctx context.Context, principal *models.Principal, commentID, redactedText string) error {
	if err := s.guard(principal); err != nil {
		return err
	}
	if strings.TrimSpace(redactedText) == "" {
		return fmt.Errorf("%w: redactedText is required", ErrBadRequest)
	}
	return s.moderateComment(ctx, principal, commentID, models.ModerationPartiallyRedacted, redactedText)
}

// PartialRedactReply replaces the reply body with moderator-supplied text
func (s *moderationService) PartialRedactReply(ctx context.Context, principal *models.Principal, commentID, replyID, redactedText string) error {
	if err := s.guard(principal); err != nil {
		return err
	}
	if strings.TrimSpace(redactedText) == "" {
		return fmt.Errorf("%w: redactedText is required", ErrBadRequest)
	}
	return s.moderateReply(ctx, principal, commentID, replyID, models.ModerationPartiallyRedacted, redactedText)
}

func (s *moderationService) moderateComment(ctx context.Context, principal *models.Principal, commentID string, status models.ModerationStatus, body string) error {
	found, err := s.comments.ModerateComment(ctx, commentID, status, body, principal.Username, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().
		Str("comment_id", commentID).
		Str("status", string(status)).
		Str("moderator", principal.Username).
		Msg("Comment moderated")
	return nil
}

func (s *moderationService) moderateReply(ctx context.Context, principal *models.Principal, commentID, replyID string, status models.ModerationStatus, body string) error {
	found, err := s.comments.ModerateReply(ctx, commentID, replyID, status, body, principal.Username, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().
		Str("comment_id", commentID).
		Str("reply_id", replyID).
		Str("status", string(status)).
		Str("moderator", principal.Username).
		Msg("Reply moderated")
	return nil
}
