package models

// ArticleStats is the denormalized per-article counter. It counts comment and
// reply creation events; moderation never decrements it, so the count tracks
// total authored content rather than currently visible content.
type ArticleStats struct {
	ArticleTitle string `json:"articleTitle" db:"article_title"`
	CommentCount int    `json:"commentCount" db:"comment_count"`
}
