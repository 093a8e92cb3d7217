package core

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field limits, counted in characters (runes).
const (
	MaxTitleLength   = 100
	MaxContentLength = 10000
	MaxTagLength     = 50
)

// ValidateTitle checks that a title is non-empty and within MaxTitleLength.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ValidationError("title", "title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ValidationError("title", fmt.Sprintf("title cannot exceed %d characters", MaxTitleLength))
	}
	return nil
}

// ValidateContent checks that content is within MaxContentLength.
func ValidateContent(content string) error {
	if utf8.RuneCountInString(content) > MaxContentLength {
		return ValidationError("content", fmt.Sprintf("content cannot exceed %d characters", MaxContentLength))
	}
	return nil
}

// ValidateTag checks that a tag is non-empty, short, and free of whitespace.
func ValidateTag(tag string) error {
	if strings.TrimSpace(tag) == "" {
		return ValidationError("tags", "tag cannot be empty")
	}
	if utf8.RuneCountInString(tag) > MaxTagLength {
		return ValidationError("tags", fmt.Sprintf("tag %q cannot exceed %d characters", tag, MaxTagLength))
	}
	if strings.IndexFunc(tag, unicode.IsSpace) >= 0 {
		return ValidationError("tags", fmt.Sprintf("tag %q cannot contain whitespace", tag))
	}
	return nil
}

// ValidateTags validates every tag in tags.
func ValidateTags(tags []string) error {
	for _, t := range tags {
		if err := ValidateTag(t); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMetadataKey checks that a metadata key is non-empty and not padded.
func ValidateMetadataKey(key string) error {
	if key == "" || strings.TrimSpace(key) != key {
		return ValidationError("metadata", fmt.Sprintf("invalid metadata key %q", key))
	}
	return nil
}

// dedupe returns tags with later exact duplicates removed, preserving order.
func dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
