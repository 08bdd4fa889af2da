package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// topicCodeRegex matches topic codes: a letter or digit followed by letters,
// digits, underscores or dashes. Codes double as Graphviz node IDs.
var topicCodeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateTopicCode validates a topic code used as a registry key.
//
// The validation rules are intentionally conservative:
//   - No empty codes
//   - Maximum length of 64 characters
//   - ASCII letters, digits, '_' and '-' only
func ValidateTopicCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidTopic, "topic code cannot be empty")
	}
	if len(code) > 64 {
		return New(ErrCodeInvalidTopic, "topic code too long (max 64 characters): %q", code)
	}
	if !topicCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidTopic, "invalid topic code: %q", code)
	}
	return nil
}

// ValidateLabel validates a display name or division label.
// Labels may contain any printable text but no control characters
// other than the newline used for multi-line node labels.
func ValidateLabel(kind, label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidTopic, "%s cannot be empty", kind)
	}
	for _, r := range label {
		if r != '\n' && unicode.IsControl(r) {
			return New(ErrCodeInvalidTopic, "%s contains invalid control characters: %q", kind, label)
		}
	}
	return nil
}

// ValidateOutputPath validates a file name for a rendered artifact.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must end in .png
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if !strings.EqualFold(pathExt(path), ".png") {
		return New(ErrCodeInvalidPath, "output path must end in .png: %q", path)
	}
	return nil
}

func pathExt(path string) string {
	i := strings.LastIndexAny(path, "./\\")
	if i < 0 || path[i] != '.' {
		return ""
	}
	return path[i:]
}
