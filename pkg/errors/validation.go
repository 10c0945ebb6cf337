package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds strategy and canvas names.
const maxNameLength = 64

// ValidateStrategyName validates a layout strategy name before it is used as a
// registry key or appears in a URL path.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No path separators
//   - Maximum length of 64 characters
func ValidateStrategyName(name string) error {
	return validateName("strategy", name)
}

// ValidateCanvasName validates a canvas identifier supplied by API clients.
// It applies the same rules as [ValidateStrategyName].
func ValidateCanvasName(name string) error {
	return validateName("canvas", name)
}

func validateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "%s name contains invalid characters: %q", kind, name)
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "%s name cannot contain path separators: %q", kind, name)
	}

	return nil
}
