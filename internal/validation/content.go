// Package validation holds input validation rules for user-supplied content.
package validation

import (
	"strings"

	"memeverse/internal/models"
)

const (
	// MaxTitleLen caps upload titles.
	MaxTitleLen = 100
	// MaxCommentLen caps comment bodies.
	MaxCommentLen = 500
	// MaxProfileNameLen caps profile display names.
	MaxProfileNameLen = 50
	// MaxProfileBioLen caps profile bios.
	MaxProfileBioLen = 300
)

// ValidateMemeTitle validates an upload title. The title is checked as given;
// callers trim before validating.
func ValidateMemeTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > MaxTitleLen {
		return models.NewValidationError("Title is too long")
	}
	return nil
}

// ValidateCommentContent validates a comment body.
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Comment content is required")
	}
	if len(content) > MaxCommentLen {
		return models.NewValidationError("Comment is too long")
	}
	return nil
}

// ValidateProfileName validates a profile display name.
func ValidateProfileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("Name is required")
	}
	if len(name) > MaxProfileNameLen {
		return models.NewValidationError("Name is too long")
	}
	return nil
}

// ValidateProfileBio validates a profile bio.
func ValidateProfileBio(bio string) error {
	if len(bio) > MaxProfileBioLen {
		return models.NewValidationError("Bio is too long")
	}
	return nil
}
