package models

import (
	"time"
)

// ModerationStatus is the content lifecycle state of a comment or reply.
// Transitions are applied in place by a moderator and are not required to
// move forward only: a removed comment may still be redacted afterwards.
type ModerationStatus string

const (
	ModerationNormal            ModerationStatus = "normal"
	ModerationRemoved           ModerationStatus = "removed"
	ModerationRedacted          ModerationStatus = "redacted"
	ModerationPartiallyRedacted ModerationStatus = "partially_redacted"
)

// Tombstone text substituted for removed/redacted content. The strings are
// part of the external contract and rendered verbatim by clients.
const (
	CommentRemovedTombstone  = "[Comment removed by a moderator]"
	CommentRedactedTombstone = "[This comment has been redacted by a moderator]"
	ReplyRedactedTombstone   = "[This reply has been redacted by a moderator]"
)

// Comment is a top-level comment on an article. The article title string used
// at creation time is the canonical lookup key; no normalization is applied.
type Comment struct {
	ID           string           `json:"id" db:"id"`
	ArticleTitle string           `json:"articleTitle" db:"article_title"`
	Author       string           `json:"username" db:"author"`
	Body         string           `json:"text" db:"body"`
	Moderation   ModerationStatus `json:"moderation" db:"moderation_status"`
	ModeratedAt  *time.Time       `json:"moderatedAt,omitempty" db:"moderated_at"`
	ModeratedBy  string           `json:"moderatedBy,omitempty" db:"moderated_by"`
	CreatedAt    time.Time        `json:"timestamp" db:"created_at"`
	Replies      []Reply          `json:"replies" db:"-"`
}

// Reply is a nested reply under a comment. Replies are append-only: they are
// never reordered or removed from the sequence, only content-transitioned.
type Reply struct {
	ID          string           `json:"id" db:"id"`
	Author      string           `json:"username" db:"author"`
	Body        string           `json:"text" db:"body"`
	Moderation  ModerationStatus `json:"moderation" db:"moderation_status"`
	ModeratedAt *time.Time       `json:"moderatedAt,omitempty" db:"moderated_at"`
	ModeratedBy string           `json:"moderatedBy,omitempty" db:"moderated_by"`
	CreatedAt   time.Time        `json:"timestamp" db:"created_at"`
}

// MaxCommentWords is the maximum allowed words in a comment or reply body
const MaxCommentWords = 500

// MaxArticleTitleLength caps the article title key length
const MaxArticleTitleLength = 300
