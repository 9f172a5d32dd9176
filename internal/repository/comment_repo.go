package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/article-comments-api/internal/database"
	"github.com/article-comments-api/internal/models"
	"github.com/lib/pq"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, article_title, author, body, moderation_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.ArticleTitle, comment.Author, comment.Body,
		comment.Moderation, comment.CreatedAt,
	)
	return err
}

// AppendReply appends a reply to the parent's sequence. The parent row is
// locked FOR UPDATE for the duration of the transaction, which serializes
// concurrent appends to the same comment and keeps the position counter
// gap-free.
func (r *commentRepo) AppendReply(ctx context.Context, commentID string, reply *models.Reply) (string, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, err
	}
	defer tx.Rollback()

	var articleTitle string
	err = tx.QueryRowContext(ctx,
		`SELECT article_title FROM comments WHERE id = $1 FOR UPDATE`,
		commentID,
	).Scan(&articleTitle)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	query := `
		INSERT INTO replies (id, comment_id, position, author, body, moderation_status, created_at)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM replies WHERE comment_id = $2),
			$3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, query,
		reply.ID, commentID, reply.Author, reply.Body, reply.Moderation, reply.CreatedAt,
	)
	if err != nil {
		return "", false, err
	}

	if err := tx.Commit(); err != nil {
		return "", false, err
	}

	return articleTitle, true, nil
}

// GetByArticle retrieves all comments whose article title exactly matches,
// each with its replies in insertion order. Returns an empty slice when no
// comments exist.
func (r *commentRepo) GetByArticle(ctx context.Context, articleTitle string) ([]*models.Comment, error) {
	query := `
		SELECT id, article_title, author, body, moderation_status, moderated_at, moderated_by, created_at
		FROM comments WHERE article_title = $1 ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, articleTitle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*models.Comment{}
	byID := make(map[string]*models.Comment)
	ids := make([]string, 0)

	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
		byID[comment.ID] = comment
		ids = append(ids, comment.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return comments, nil
	}

	replyQuery := `
		SELECT id, comment_id, author, body, moderation_status, moderated_at, moderated_by, created_at
		FROM replies WHERE comment_id = ANY($1) ORDER BY comment_id, position
	`
	replyRows, err := r.db.QueryContext(ctx, replyQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer replyRows.Close()

	for replyRows.Next() {
		var commentID string
		reply, err := scanReply(replyRows, &commentID)
		if err != nil {
			return nil, err
		}
		if parent, ok := byID[commentID]; ok {
			parent.Replies = append(parent.Replies, *reply)
		}
	}

	return comments, replyRows.Err()
}

// GetByID retrieves a comment with its replies in insertion order
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT id, article_title, author, body, moderation_status, moderated_at, moderated_by, created_at
		FROM comments WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)
	comment, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	replyQuery := `
		SELECT id, comment_id, author, body, moderation_status, moderated_at, moderated_by, created_at
		FROM replies WHERE comment_id = $1 ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, replyQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var commentID string
		reply, err := scanReply(rows, &commentID)
		if err != nil {
			return nil, err
		}
		comment.Replies = append(comment.Replies, *reply)
	}

	return comment, rows.Err()
}

// UpdateText replaces a comment's body directly
func (r *commentRepo) UpdateText(ctx context.Context, id, body string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comments SET body = $2 WHERE id = $1`, id, body)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ModerateComment applies a content transition to a comment in one statement
func (r *commentRepo) ModerateComment(ctx context.Context, id string, status models.ModerationStatus, body, moderatedBy string, at time.Time) (bool, error) {
	query := `
		UPDATE comments SET body = $2, moderation_status = $3, moderated_at = $4, moderated_by = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, body, status, at, moderatedBy)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ModerateReply applies a content transition to a reply within its parent.
// Matching on both ids means a missing parent and a missing reply are
// indistinguishable: neither resolves.
func (r *commentRepo) ModerateReply(ctx context.Context, commentID, replyID string, status models.ModerationStatus, body, moderatedBy string, at time.Time) (bool, error) {
	query := `
		UPDATE replies SET body = $3, moderation_status = $4, moderated_at = $5, moderated_by = $6
		WHERE comment_id = $1 AND id = $2
	`
	result, err := r.db.ExecContext(ctx, query, commentID, replyID, body, status, at, moderatedBy)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// CountByArticle counts top-level comments for an article. Replies are not
// included; this backs the self-healing fallback of the comment count.
func (r *commentRepo) CountByArticle(ctx context.Context, articleTitle string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE article_title = $1`, articleTitle).Scan(&count)
	return count, err
}

// Totals returns corpus-wide comment and reply counts
func (r *commentRepo) Totals(ctx context.Context) (int, int, error) {
	var comments, replies int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&comments); err != nil {
		return 0, 0, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM replies`).Scan(&replies); err != nil {
		return 0, 0, err
	}
	return comments, replies, nil
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(s scanner) (*models.Comment, error) {
	var comment models.Comment
	var moderatedAt sql.NullTime
	var moderatedBy sql.NullString

	err := s.Scan(
		&comment.ID, &comment.ArticleTitle, &comment.Author, &comment.Body,
		&comment.Moderation, &moderatedAt, &moderatedBy, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if moderatedAt.Valid {
		comment.ModeratedAt = &moderatedAt.Time
	}
	comment.ModeratedBy = moderatedBy.String
	comment.Replies = []models.Reply{}
	return &comment, nil
}

func scanReply(s scanner, commentID *string) (*models.Reply, error) {
	var reply models.Reply
	var moderatedAt sql.NullTime
	var moderatedBy sql.NullString

	err := s.Scan(
		&reply.ID, commentID, &reply.Author, &reply.Body,
		&reply.Moderation, &moderatedAt, &moderatedBy, &reply.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if moderatedAt.Valid {
		reply.ModeratedAt = &moderatedAt.Time
	}
	reply.ModeratedBy = moderatedBy.String
	return &reply, nil
}
