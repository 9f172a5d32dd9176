package validation

import (
	"fmt"
	"strings"

	"github.com/article-comments-api/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateCommentInput validates the payload for creating a comment
func ValidateCommentInput(articleTitle, text string) []ValidationError {
	var errors []ValidationError

	if articleTitle == "" {
		errors = append(errors, ValidationError{Field: "articleTitle", Message: "articleTitle is required"})
	} else if len(articleTitle) > models.MaxArticleTitleLength {
		errors = append(errors, ValidationError{
			Field:   "articleTitle",
			Message: fmt.Sprintf("articleTitle exceeds maximum of %d characters", models.MaxArticleTitleLength),
		})
	}

	errors = append(errors, validateText(text)...)
	return errors
}

// ValidateReplyInput validates the payload for creating a reply or editing a
// comment's text; the article title is inherited from the parent
func ValidateReplyInput(text string) []ValidationError {
	return validateText(text)
}

func validateText(text string) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(text) == "" {
		errors = append(errors, ValidationError{Field: "text", Message: "text is required"})
		return errors
	}

	wordCount := len(strings.Fields(text))
	if wordCount > models.MaxCommentWords {
		errors = append(errors, ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("text exceeds maximum of %d words (has %d)", models.MaxCommentWords, wordCount),
		})
	}

	return errors
}
