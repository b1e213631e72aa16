package workflows

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9._-]+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Slugify returns a filesystem-friendly slug for a workflow or credential
// name: lowercase, invalid characters replaced by dashes, dash runs
// collapsed. An empty result falls back to "workflow".
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = invalidChars.ReplaceAllString(slug, "-")
	slug = dashRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "workflow"
	}
	return slug
}

// FileName builds the canonical "<id>-<slug>.json" export file name.
func FileName(id any, name string) string {
	return fmt.Sprintf("%v-%s.json", id, Slugify(name))
}
