package api

import (
	"net/http"

	"github.com/article-comments-api/internal/auth"
	"github.com/article-comments-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment store endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// GetComments handles GET /api/comments/:articleTitle
func (h *CommentHandler) GetComments(c *gin.Context) {
	ctx := c.Request.Context()
	articleTitle := c.Param("articleTitle")

	comments, err := h.services.Comment.GetComments(ctx, articleTitle)
	if err != nil {
		h.log.Error().Err(err).Str("article_title", articleTitle).Msg("Failed to get comments")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// CreateComment handles POST /api/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()
	principal := auth.PrincipalFromContext(c)

	var req struct {
		ArticleTitle string `json:"articleTitle"`
		Text         string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.services.Comment.CreateComment(ctx, principal, req.ArticleTitle, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": comment.ID})
}

// CreateReply handles POST /api/comments/:commentId/replies
func (h *CommentHandler) CreateReply(c *gin.Context) {
	h.createReply(c, c.Param("commentId"))
}

// CreateNestedReply handles POST /api/comments/:commentId/replies/:replyId/replies.
// Threading is flat: the new reply is appended to the top-level comment's
// sequence, not nested under the target reply.
func (h *CommentHandler) CreateNestedReply(c *gin.Context) {
	h.createReply(c, c.Param("commentId"))
}

func (h *CommentHandler) createReply(c *gin.Context, commentID string) {
	ctx := c.Request.Context()
	principal := auth.PrincipalFromContext(c)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.services.Comment.CreateReply(ctx, principal, commentID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": reply.ID})
}

// GetCommentCount handles GET /api/comment-count/:articleTitle
func (h *CommentHandler) GetCommentCount(c *gin.Context) {
	ctx := c.Request.Context()
	articleTitle := c.Param("articleTitle")

	count, err := h.services.Comment.GetCommentCount(ctx, articleTitle)
	if err != nil {
		h.log.Error().Err(err).Str("article_title", articleTitle).Msg("Failed to get comment count")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// UpdateComment handles PUT /api/comments/:commentId. Any authenticated user
// may edit any comment; ownership is not checked.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	ctx := c.Request.Context()
	principal := auth.PrincipalFromContext(c)
	commentID := c.Param("commentId")

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.services.Comment.UpdateCommentText(ctx, principal, commentID, req.Text); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment updated"})
}
