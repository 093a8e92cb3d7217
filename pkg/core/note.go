package core

import (
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Metadata holds open-ended key/value annotations on a note.
type Metadata map[string]string

// Note is the central entity of the domain.
// It is agnostic to storage format; the fs adapter persists it as JSON.
type Note struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Content    string    `json:"content" yaml:"content"`
	Tags       []string  `json:"tags" yaml:"tags"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
	IsArchived bool      `json:"is_archived" yaml:"is_archived"`
	Metadata   Metadata  `json:"metadata" yaml:"metadata"`
}

// now is the clock used to stamp notes. Tests may replace it.
var now = func() time.Time {
	return time.Now().UTC()
}

// NewNote builds a validated note with a fresh id and CreatedAt == UpdatedAt.
// Repeated tags are collapsed to their first occurrence.
func NewNote(title, content string, tags []string) (Note, error) {
	if err := ValidateTitle(title); err != nil {
		return Note{}, err
	}
	if err := ValidateContent(content); err != nil {
		return Note{}, err
	}
	if err := ValidateTags(tags); err != nil {
		return Note{}, err
	}

	ts := now()
	return Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Tags:      dedupe(tags),
		CreatedAt: ts,
		UpdatedAt: ts,
		Metadata:  make(Metadata),
	}, nil
}

// Clone returns a deep copy that shares no mutable state with n.
func (n Note) Clone() Note {
	c := n
	c.Tags = slices.Clone(n.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	c.Metadata = maps.Clone(n.Metadata)
	if c.Metadata == nil {
		c.Metadata = make(Metadata)
	}
	return c
}

// touch advances UpdatedAt. The stamp always moves forward, even when the
// clock has not ticked since the previous mutation.
func (n *Note) touch() {
	ts := now()
	if !ts.After(n.UpdatedAt) {
		ts = n.UpdatedAt.Add(time.Nanosecond)
	}
	n.UpdatedAt = ts
}

// UpdateTitle replaces the title. It reports whether the title changed.
func (n *Note) UpdateTitle(title string) (bool, error) {
	if err := ValidateTitle(title); err != nil {
		return false, err
	}
	if title == n.Title {
		return false, nil
	}
	n.Title = title
	n.touch()
	return true, nil
}

// UpdateContent replaces the content. It reports whether the content changed.
func (n *Note) UpdateContent(content string) (bool, error) {
	if err := ValidateContent(content); err != nil {
		return false, err
	}
	if content == n.Content {
		return false, nil
	}
	n.Content = content
	n.touch()
	return true, nil
}

// SetTags replaces the whole tag list.
func (n *Note) SetTags(tags []string) (bool, error) {
	if err := ValidateTags(tags); err != nil {
		return false, err
	}
	tags = dedupe(tags)
	if slices.Equal(tags, n.Tags) {
		return false, nil
	}
	n.Tags = tags
	n.touch()
	return true, nil
}

// AddTag appends tag if absent. Adding a present tag is a silent no-op.
func (n *Note) AddTag(tag string) (bool, error) {
	if err := ValidateTag(tag); err != nil {
		return false, err
	}
	if n.HasTag(tag) {
		return false, nil
	}
	n.Tags = append(n.Tags, tag)
	n.touch()
	return true, nil
}

// RemoveTag removes tag and reports whether it was present.
func (n *Note) RemoveTag(tag string) bool {
	i := slices.Index(n.Tags, tag)
	if i < 0 {
		return false
	}
	n.Tags = slices.Delete(n.Tags, i, i+1)
	n.touch()
	return true
}

// HasTag reports whether the note carries tag (exact, case-sensitive match).
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Archive marks the note archived.
func (n *Note) Archive() bool {
	if n.IsArchived {
		return false
	}
	n.IsArchived = true
	n.touch()
	return true
}

// Unarchive clears the archived flag.
func (n *Note) Unarchive() bool {
	if !n.IsArchived {
		return false
	}
	n.IsArchived = false
	n.touch()
	return true
}

// AddMetadata sets key to value.
func (n *Note) AddMetadata(key, value string) (bool, error) {
	if err := ValidateMetadataKey(key); err != nil {
		return false, err
	}
	if old, ok := n.Metadata[key]; ok && old == value {
		return false, nil
	}
	if n.Metadata == nil {
		n.Metadata = make(Metadata)
	}
	n.Metadata[key] = value
	n.touch()
	return true, nil
}

// RemoveMetadata deletes key, returning the previous value if it existed.
func (n *Note) RemoveMetadata(key string) (string, bool) {
	old, ok := n.Metadata[key]
	if !ok {
		return "", false
	}
	delete(n.Metadata, key)
	n.touch()
	return old, true
}

// MatchesSearch reports whether query occurs, case-insensitively, in the
// title, the content, or any tag.
func (n Note) MatchesSearch(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) || n.MatchesContent(query) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// MatchesContent is MatchesSearch restricted to the content.
func (n Note) MatchesContent(query string) bool {
	return strings.Contains(strings.ToLower(n.Content), strings.ToLower(query))
}

// WordCount returns the number of whitespace-separated words in the content.
func (n Note) WordCount() int {
	return len(strings.Fields(n.Content))
}

// CharacterCount returns the number of characters in the content.
func (n Note) CharacterCount() int {
	return utf8.RuneCountInString(n.Content)
}

// IsEmpty reports whether both title and content are blank.
func (n Note) IsEmpty() bool {
	return strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == ""
}

// Preview returns at most maxChars characters of content, with "..." appended
// when it was cut.
func (n Note) Preview(maxChars int) string {
	if utf8.RuneCountInString(n.Content) <= maxChars {
		return n.Content
	}
	r := []rune(n.Content)
	return string(r[:maxChars]) + "..."
}
