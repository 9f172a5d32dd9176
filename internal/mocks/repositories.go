package mocks

import (
	"context"
	"time"

	"github.com/article-comments-api/internal/models"
)

// MockCommentRepository is an in-memory implementation of CommentRepository.
// Comments keep their creation order so read-backs are deterministic.
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	Order       []string
	CreateError error
	AppendError error
	QueryError  error
	UpdateError error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	stored := *comment
	stored.Replies = append([]models.Reply{}, comment.Replies...)
	m.Comments[comment.ID] = &stored
	m.Order = append(m.Order, comment.ID)
	return nil
}

func (m *MockCommentRepository) AppendReply(ctx context.Context, commentID string, reply *models.Reply) (string, bool, error) {
	if m.AppendError != nil {
		return "", false, m.AppendError
	}
	parent, exists := m.Comments[commentID]
	if !exists {
		return "", false, nil
	}
	parent.Replies = append(parent.Replies, *reply)
	return parent.ArticleTitle, true, nil
}

func (m *MockCommentRepository) GetByArticle(ctx context.Context, articleTitle string) ([]*models.Comment, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	comments := []*models.Comment{}
	for _, id := range m.Order {
		if c := m.Comments[id]; c.ArticleTitle == articleTitle {
			copied := *c
			copied.Replies = append([]models.Reply{}, c.Replies...)
			comments = append(comments, &copied)
		}
	}
	return comments, nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	c, exists := m.Comments[id]
	if !exists {
		return nil, nil
	}
	copied := *c
	copied.Replies = append([]models.Reply{}, c.Replies...)
	return &copied, nil
}

func (m *MockCommentRepository) UpdateText(ctx context.Context, id, body string) (bool, error) {
	if m.UpdateError != nil {
		return false, m.UpdateError
	}
	c, exists := m.Comments[id]
	if !exists {
		return false, nil
	}
	c.Body = body
	return true, nil
}

func (m *MockCommentRepository) ModerateComment(ctx context.Context, id string, status models.ModerationStatus, body, moderatedBy string, at time.Time) (bool, error) {
	if m.UpdateError != nil {
		return false, m.UpdateError
	}
	c, exists := m.Comments[id]
	if !exists {
		return false, nil
	}
	c.Body = body
	c.Moderation = status
	c.ModeratedBy = moderatedBy
	c.ModeratedAt = &at
	return true, nil
}

func (m *MockCommentRepository) ModerateReply(ctx context.Context, commentID, replyID string, status models.ModerationStatus, body, moderatedBy string, at time.Time) (bool, error) {
	if m.UpdateError != nil {
		return false, m.UpdateError
	}
	parent, exists := m.Comments[commentID]
	if !exists {
		return false, nil
	}
	for i := range parent.Replies {
		if parent.Replies[i].ID == replyID {
			parent.Replies[i].Body = body
			parent.Replies[i].Moderation = status
			parent.Replies[i].ModeratedBy = moderatedBy
			parent.Replies[i].ModeratedAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCommentRepository) CountByArticle(ctx context.Context, articleTitle string) (int, error) {
	if m.QueryError != nil {
		return 0, m.QueryError
	}
	count := 0
	for _, c := range m.Comments {
		if c.ArticleTitle == articleTitle {
			count++
		}
	}
	return count, nil
}

func (m *MockCommentRepository) Totals(ctx context.Context) (int, int, error) {
	if m.QueryError != nil {
		return 0, 0, m.QueryError
	}
	replies := 0
	for _, c := range m.Comments {
		replies += len(c.Replies)
	}
	return len(m.Comments), replies, nil
}

// MockStatsRepository is an in-memory implementation of StatsRepository
type MockStatsRepository struct {
	Counts         map[string]int
	IncrementError error
	QueryError     error
	IncrementCalls int
}

func NewMockStatsRepository() *MockStatsRepository {
	return &MockStatsRepository{
		Counts: make(map[string]int),
	}
}

func (m *MockStatsRepository) IncrementCount(ctx context.Context, articleTitle string) error {
	m.IncrementCalls++
	if m.IncrementError != nil {
		return m.IncrementError
	}
	m.Counts[articleTitle]++
	return nil
}

func (m *MockStatsRepository) GetCount(ctx context.Context, articleTitle string) (int, bool, error) {
	if m.QueryError != nil {
		return 0, false, m.QueryError
	}
	count, exists := m.Counts[articleTitle]
	return count, exists, nil
}
