package upload

import (
	"path/filepath"
	"strings"
)

const fallbackBaseName = "default"

// buildImageName derives the stored filename: the user-chosen base name
// (or "default") plus the uploaded file's extension.
func buildImageName(baseName, original string) string {
	base := safeBaseName(baseName)
	if base == "" {
		base = fallbackBaseName
	}
	return base + filepath.Ext(strings.TrimSpace(original))
}

// safeBaseName reduces raw to a safe path segment without extension,
// or "" when nothing safe remains.
func safeBaseName(raw string) string {
	name := safeName(raw)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// safeName returns the base name of raw only when it passes
// isSafeSegment.
func safeName(raw string) string {
	name := filepath.Base(strings.TrimSpace(raw))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	if !isSafeSegment(name) {
		return ""
	}
	return name
}

// isSafeSegment returns true when s contains only alphanumerics,
// hyphens, underscores, or dots.
func isSafeSegment(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			continue
		}
		return false
	}
	return true
}
