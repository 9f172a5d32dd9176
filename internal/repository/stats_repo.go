package repository

import (
	"context"
	"database/sql"

	"github.com/article-comments-api/internal/database"
)

// statsRepo is the concrete implementation of StatsRepository
type statsRepo struct {
	db *database.DB
}

// NewStatsRepo creates a new article stats repository
func NewStatsRepo(db *database.DB) StatsRepository {
	return &statsRepo{db: db}
}

// IncrementCount upserts the stats row for an article. A single statement,
// so concurrent creations on the same article both land. There is no
// decrement anywhere: the counter tracks total authored content.
func (r *statsRepo) IncrementCount(ctx context.Context, articleTitle string) error {
	query := `
		INSERT INTO article_stats (article_title, comment_count)
		VALUES ($1, 1)
		ON CONFLICT (article_title) DO UPDATE SET
			comment_count = article_stats.comment_count + 1
	`
	_, err := r.db.ExecContext(ctx, query, articleTitle)
	return err
}

// GetCount returns the maintained counter and whether a stats row exists
func (r *statsRepo) GetCount(ctx context.Context, articleTitle string) (int, bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT comment_count FROM article_stats WHERE article_title = $1`,
		articleTitle).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}
