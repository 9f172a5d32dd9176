package api

import (
	"net/http"

	"github.com/article-comments-api/internal/auth"
	"github.com/article-comments-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ModerationHandler handles moderator-only content transitions
type ModerationHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(services *service.Services, log zerolog.Logger) *ModerationHandler {
	return &ModerationHandler{
		services: services,
		log:      log.With().Str("handler", "moderation").Logger(),
	}
}

// DeleteComment handles DELETE /api/comments/:commentId (soft delete)
func (h *ModerationHandler) DeleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	principal := auth.PrincipalFromContext(c)
	commentID := c.Param("commentId")

	if err := h.services.Moderation.RemoveComment(ctx, principal, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment removed"})
}

// DeleteReply handles DELETE /api/comments/:commentId/replies/:replyId
func (h *ModerationHandler) DeleteReply(c *gin.Context) {
	ctx := c.Request.Context()
	principal := auth.PrincipalFromContext(c)

	err := h.services.Moderation.RemoveReply(ctx, principal, c.Param("commentId"), c.Param("replyId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply removed"})
}

// RedactComment handles PUT /api/comments/:commentId/redact
func (h *ModerationHandler) RedactComment(c *gin.Context) {
	ctx := c.Request.Context()
	principal := auth.PrincipalFromContext(c)
	commentID := c.Param("commentId")

	if err := h.services.Moderation.RedactComment(ctx, principal, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment redacted"})
}

// RedactReply handles PUT /api/comments/:commentId/replies/:replyId/redact
func (h *ModerationHandler) RedactReply(c *gin.Context) {
	ctx := c.Request.Context()
	principal := auth.PrincipalFromContext(c)

	err := h.services.Moderation.RedactReply(ctx, principal, c.Param("commentId"), c.Param("replyId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply redacted"})
}

// PartialRedactComment handles PUT /api/comments/:commentId/partial-redact
func (h *ModerationHandler) PartialRedactComment(c *gin.Context) {
	ctx := c.Request.Context()
	principal := auth.PrincipalFromContext(c)
	commentID := c.Param("commentId")

	var req struct {
		RedactedText string `json:"redactedText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.services.Moderation.PartialRedactComment(ctx, principal, commentID, req.RedactedText)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment redacted"})
}

// PartialRedactReply handles PUT /api/comments/:commentId/replies/:replyId/partial-redact
func (h *ModerationHandler) PartialRedactReply(c *gin.Context) {
	ctx := c.Request.Context()
	principal := auth.PrincipalFromContext(c)

	var req struct {
		RedactedText string `json:"redactedText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.services.Moderation.PartialRedactReply(ctx, principal,
		c.Param("commentId"), c.Param("replyId"), req.RedactedText)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply redacted"})
}
