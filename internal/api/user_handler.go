package api

import (
	"net/http"

	"github.com/article-comments-api/internal/auth"
	"github.com/article-comments-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler serves the session-introspection endpoints the frontend polls.
// Login itself (the OIDC redirect dance) is an external collaborator; this
// handler only reflects what the session token asserts.
type UserHandler struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(cfg *config.Config, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		cfg: cfg,
		log: log.With().Str("handler", "user").Logger(),
	}
}

// GetUser handles GET /api/user
func (h *UserHandler) GetUser(c *gin.Context) {
	principal := auth.PrincipalFromContext(c)
	if principal == nil {
		c.JSON(http.StatusOK, gin.H{"username": nil, "is_moderator": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":     principal.Username,
		"is_moderator": principal.IsModerator,
	})
}

// GetUserDetails handles GET /api/user-details
func (h *UserHandler) GetUserDetails(c *gin.Context) {
	principal := auth.PrincipalFromContext(c)
	if principal == nil {
		c.JSON(http.StatusOK, gin.H{"username": nil, "email": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": principal.Username,
		"email":    principal.Email,
	})
}

// GetAPIKey handles GET /api/key; the key is handed to the frontend for
// article search against the news API
func (h *UserHandler) GetAPIKey(c *gin.Context) {
	if h.cfg.NYTAPIKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API key not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": h.cfg.NYTAPIKey})
}
