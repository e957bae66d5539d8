package util

import (
	"strings"
)

// ParseTags parses a comma separated tag string into a slice
func ParseTags(tagStr string) []string {
	if strings.TrimSpace(tagStr) == "" {
		return []string{}
	}

	// Remove brackets if present
	tagStr = strings.Trim(strings.TrimSpace(tagStr), "[]")

	tags := strings.Split(tagStr, ",")
	cleanTags := []string{}

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		tag = strings.Trim(tag, "\"'") // Remove quotes
		if tag != "" {
			cleanTags = append(cleanTags, tag)
		}
	}

	return cleanTags
}

// FormatHashtags renders tags as a space separated hashtag line.
// Blank tags are dropped and a leading "#" is added only when missing.
func FormatHashtags(tags []string) string {
	rendered := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		rendered = append(rendered, tag)
	}
	return strings.Join(rendered, " ")
}

// RemoveSpaces strips every space from s, used to turn names into tags
func RemoveSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
