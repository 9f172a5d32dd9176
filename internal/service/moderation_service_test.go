package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/article-comments-api/internal/models"
	"github.com/article-comments-api/internal/service"
)

func TestModeration_Unauthorized(t *testing.T) {
	services, commentRepo, _ := setupServices()
	ctx := context.Background()

	comment, err := services.Comment.CreateComment(ctx, testPrincipal("alice", false), "Test Article", "original")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	if err := services.Moderation.RemoveComment(ctx, nil, comment.ID); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
	if commentRepo.Comments[comment.ID].Body != "original" {
		t.Error("Body must be unchanged after a rejected moderation")
	}
}

func TestModeration_Forbidden(t *testing.T) {
	services, commentRepo, _ := setupServices()
	ctx := context.Background()
	author := testPrincipal("alice", false)

	comment, err := services.Comment.CreateComment(ctx, author, "Test Article", "original")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	// The author itself is not a moderator, so even its own comment is off limits
	if err := services.Moderation.RemoveComment(ctx, author, comment.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("RemoveComment: expected ErrForbidden, got %v", err)
	}
	if err := services.Moderation.RedactComment(ctx, author, comment.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("RedactComment: expected ErrForbidden, got %v", err)
	}
	if err := services.Moderation.PartialRedactComment(ctx, author, comment.ID, "x"); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("PartialRedactComment: expected ErrForbidden, got %v", err)
	}

	stored := commentRepo.Comments[comment.ID]
	if stored.Body != "original" || stored.Moderation != models.ModerationNormal {
		t.Error("Comment must be unchanged after rejected moderations")
	}
}

func TestRemoveComment(t *testing.T) {
	services, _, _ := setupServices()
	ctx := context.Background()
	moderator := testPrincipal("mod", true)

	comment, err := services.Comment.CreateComment(ctx, testPrincipal("alice", false), "Test Article", "rude text")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	if err := services.Moderation.RemoveComment(ctx, moderator, comment.ID); err != nil {
		t.Fatalf("RemoveComment failed: %v", err)
	}

	found, err := services.Comment.FindComment(ctx, comment.ID)
	if err != nil {
		t.Fatalf("FindComment failed: %v", err)
	}
	if found.Moderation != models.ModerationRemoved {
		t.Errorf("Expected status 'removed', got %s", found.Moderation)
	}
	if found.Body != models.CommentRemovedTombstone {
		t.Errorf("Expected removal tombstone, got '%s'", found.Body)
	}
	if found.ModeratedBy != "mod" {
		t.Errorf("Expected moderatedBy 'mod', got '%s'", found.ModeratedBy)
	}
	if found.ModeratedAt == nil || found.ModeratedAt.IsZero() {
		t.Error("ModeratedAt should be stamped")
	}
}

func TestRemoveComment_CountUnchanged(t *testing.T) {
	services, _, _ := setupServices()
	ctx := context.Background()

	comment, err := services.Comment.CreateComment(ctx, testPrincipal("alice", false), "Test Article", "rude text")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	if err := services.Moderation.RemoveComment(ctx, testPrincipal("mod", true), comment.ID); err != nil {
		t.Fatalf("RemoveComment failed: %v", err)
	}

	count, err := services.Comment.GetCommentCount(ctx, "Test Article")
	if err != nil {
		t.Fatalf("GetCommentCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Removal must not change the count, got %d", count)
	}

	comments, _ := services.Comment.GetComments(ctx, "Test Article")
	if len(comments) != 1 {
		t.Errorf("Removed comment should still be listed, got %d comments", len(comments))
	}
}

func TestRemoveReply_EmptyBody(t *testing.T) {
	services, _, _ := setupServices()
	ctx := context.Background()

	comment, err := services.Comment.CreateComment(ctx, testPrincipal("alice", false), "Test Article", "parent")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	reply, err := services.Comment.CreateReply(ctx, testPrincipal("bob", false), comment.ID, "rude reply")
	if err != nil {
		t.Fatalf("CreateReply failed: %v", err)
	}

	if err := services.Moderation.RemoveReply(ctx, testPrincipal("mod", true), comment.ID, reply.ID); err != nil {
		t.Fatalf("RemoveReply failed: %v", err)
	}

	found, _ := services.Comment.FindComment(ctx, comment.ID)
	if len(found.Replies) != 1 {
		t.Fatalf("Reply must stay in the sequence, got %d replies", len(found.Replies))
	}
	if found.Replies[0].Moderation != models.ModerationRemoved {
		t.Errorf("Expected status 'removed', got %s", found.Replies[0].Moderation)
	}
	if found.Replies[0].Body != "" {
		t.Errorf("Removed reply body should be empty, got '%s'", found.Replies[0].Body)
	}
}

func TestRedactComment(t *testing.T) {
	services, _, _ := setupServices()
	ctx := context.Background()

	comment, err := services.Comment.CreateComment(ctx, testPrincipal("alice", false), "Test Article", "sensitive")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	if err := services.Moderation.RedactComment(ctx, testPrincipal("mod", true), comment.ID); err != nil {
		t.Fatalf("RedactComment failed: %v", err)
	}

	found, _ := services.Comment.FindComment(ctx, comment.ID)
	if found.Moderation != models.ModerationRedacted {
		t.Errorf("Expected status 'redacted', got %s", found.Moderation)
	}
	if found.Body != models.CommentRedactedTombstone {
		t.Errorf("Expected redaction tombstone, got '%s'", found.Body)
	}
}

func TestRedactReply(t *testing.T) {
	services, _, _ := setupServices()
	ctx := context.Background()

	comment, err := services.Comment.CreateComment(ctx, testPrincipal("alice", false), "Test Article", "parent")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	reply, err := services.Comment.CreateReply(ctx, testPrincipal("bob", false), comment.ID, "sensitive")
	if err != nil {
		t.Fatalf("CreateReply failed: %v", err)
	}

	if err := services.Moderation.RedactReply(ctx, testPrincipal("mod", true), comment.ID, reply.ID); err != nil {
		t.Fatalf("RedactReply failed: %v", err)
	}

	found, _ := services.Comment.FindComment(ctx, comment.ID)
	if found.Replies[0].Moderation != models.ModerationRedacted {
		t.Errorf("Expected status 'redacted', got %s", found.Replies[0].Moderation)
	}
	if found.Replies[0].Body != models.ReplyRedactedTombstone {
		t.Errorf("Expected reply redaction tombstone, got '%s'", found.Replies[0].Body)
	}
}

func TestPartialRedactComment(t *testing.T) {
	services, _, _ := setupServices()
	ctx := context.Background()

	comment, err := services.Comment.CreateComment(ctx, testPrincipal("alice", false), "Test Article", "call me at 555-0100")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	err = services.Moderation.PartialRedactComment(ctx, testPrincipal("mod", true), comment.ID, "call me at [redacted]")
	if err != nil {
		t.Fatalf("PartialRedactComment failed: %v", err)
	}

	found, _ := services.Comment.FindComment(ctx, comment.ID)
	if found.Moderation != models.ModerationPartiallyRedacted {
		t.Errorf("Expected status 'partially_redacted', got %s", found.Moderation)
	}
	if found.Body != "call me at [redacted]" {
		t.Errorf("Expected the supplied text, got '%s'", found.Body)
	}
}

func TestPartialRedact_EmptyText(t *testing.T) {
	services, commentRepo, _ := setupServices()
	ctx := context.Background()
	moderator := testPrincipal("mod", true)

	comment, err := services.Comment.CreateComment(ctx, testPrincipal("alice", false), "Test Article", "original")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	err = services.Moderation.PartialRedactComment(ctx, moderator, comment.ID, "  ")
	if !errors.Is(err, service.ErrBadRequest) {
		t.Errorf("Expected ErrBadRequest, got %v", err)
	}

	stored := commentRepo.Comments[comment.ID]
	if stored.Body != "original" || stored.Moderation != models.ModerationNormal {
		t.Error("Comment must be unchanged after a rejected partial redaction")
	}

	err = services.Moderation.PartialRedactReply(ctx, moderator, comment.ID, "some-reply", "")
	if !errors.Is(err, service.ErrBadRequest) {
		t.Errorf("Expected ErrBadRequest for reply, got %v", err)
	}
}

func TestModeration_TargetNotFound(t *testing.T) {
	services, _, _ := setupServices()
	ctx := context.Background()
	moderator := testPrincipal("mod", true)

	if err := services.Moderation.RemoveComment(ctx, moderator, "missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("RemoveComment: expected ErrNotFound, got %v", err)
	}
	if err := services.Moderation.RedactComment(ctx, moderator, "missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("RedactComment: expected ErrNotFound, got %v", err)
	}
	if err := services.Moderation.RemoveReply(ctx, moderator, "missing", "also-missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("RemoveReply: expected ErrNotFound, got %v", err)
	}

	// A real comment with the wrong reply id is also not found
	comment, err := services.Comment.CreateComment(ctx, testPrincipal("alice", false), "Test Article", "parent")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if err := services.Moderation.RedactReply(ctx, moderator, comment.ID, "no-such-reply"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("RedactReply: expected ErrNotFound, got %v", err)
	}
}

func TestModeration_TransitionsOverwrite(t *testing.T) {
	services, _, _ := setupServices()
	ctx := context.Background()
	moderator := testPrincipal("mod", true)

	comment, err := services.Comment.CreateComment(ctx, testPrincipal("alice", false), "Test Article", "original")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	// Transitions are not monotonic; a removed comment can be redacted and
	// the last write wins.
	if err := services.Moderation.RemoveComment(ctx, moderator, comment.ID); err != nil {
		t.Fatalf("RemoveComment failed: %v", err)
	}
	if err := services.Moderation.RedactComment(ctx, moderator, comment.ID); err != nil {
		t.Fatalf("RedactComment failed: %v", err)
	}

	found, _ := services.Comment.FindComment(ctx, comment.ID)
	if found.Moderation != models.ModerationRedacted {
		t.Errorf("Expected status 'redacted' after overwrite, got %s", found.Moderation)
	}
	if found.Body != models.CommentRedactedTombstone {
		t.Errorf("Expected redaction tombstone after overwrite, got '%s'", found.Body)
	}
}

func TestModeration_StoreUnavailable(t *testing.T) {
	services, commentRepo, _ := setupServices()
	commentRepo.UpdateError = errors.New("connection refused")

	err := services.Moderation.RemoveComment(context.Background(), testPrincipal("mod", true), "any-id")
	if !errors.Is(err, service.ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", err)
	}
}
