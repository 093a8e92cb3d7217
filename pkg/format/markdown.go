package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notes/pkg/core"
)

// CreatedLayout is the timestamp layout of the Markdown info line.
const CreatedLayout = "2006-01-02 15:04 UTC"

const (
	tagsLabel    = "**Tags:**"
	createdLabel = "**Created:**"
	tagSep       = ", "
	ruler        = "---"
)

// MarkdownCodec writes one section per note:
//
//	# Title
//
//	**Tags:** a, b | **Created:** 2006-01-02 15:04 UTC
//
//	content
//
//	---
//
// Decode reads that layout back. A document starting with a "---" line is
// read as a single note with YAML frontmatter instead.
type MarkdownCodec struct{}

// NewMarkdownCodec creates a new Markdown codec.
func NewMarkdownCodec() *MarkdownCodec {
	return &MarkdownCodec{}
}

func (c *MarkdownCodec) Encode(w io.Writer, notes []core.Note) error {
	bw := bufio.NewWriter(w)
	for _, n := range notes {
		info := tagsLabel
		if len(n.Tags) > 0 {
			info += " " + strings.Join(n.Tags, tagSep)
		}
		fmt.Fprintf(bw, "# %s\n\n", strings.ReplaceAll(n.Title, "\n", " "))
		fmt.Fprintf(bw, "%s | %s %s\n\n", info, createdLabel, n.CreatedAt.UTC().Format(CreatedLayout))
		if n.Content != "" {
			bw.WriteString(n.Content)
			bw.WriteString("\n\n")
		}
		bw.WriteString(ruler + "\n\n")
	}
	return bw.Flush()
}

func (c *MarkdownCodec) Decode(r io.Reader) ([]core.Draft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, core.IOError("read", "", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	if strings.HasPrefix(text, ruler+"\n") {
		d, err := parseFrontmatter(text)
		if err != nil {
			return nil, core.SerializationError("", err)
		}
		return []core.Draft{d}, nil
	}

	drafts, err := parseSections(text)
	if err != nil {
		return nil, core.SerializationError("", err)
	}
	return drafts, nil
}

// section accumulates one "# Title" block while parsing.
type section struct {
	draft    core.Draft
	body     []string
	infoDone bool
}

func (s *section) finish() core.Draft {
	s.draft.Content = strings.Trim(strings.Join(s.body, "\n"), "\n")
	return s.draft
}

// parseSections reads the export layout. A "---" line only ends a section
// when the next non-blank line is a heading; otherwise it is content.
func parseSections(text string) ([]core.Draft, error) {
	var (
		drafts  []core.Draft
		cur     *section
		pending []string
	)

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := strings.TrimRight(raw, " \t")

		if pending != nil {
			if line == "" {
				pending = append(pending, raw)
				continue
			}
			if isHeading(line) {
				drafts = append(drafts, cur.finish())
				cur = nil
			} else {
				cur.body = append(cur.body, pending...)
			}
			pending = nil
		}

		if cur == nil {
			if line == "" {
				continue
			}
			if !isHeading(line) {
				return nil, fmt.Errorf("line %d: expected a '# ' heading, found %q", i+1, line)
			}
			cur = &section{draft: core.Draft{Title: strings.TrimSpace(line[2:])}}
			continue
		}

		if !cur.infoDone && line != "" {
			cur.infoDone = true
			if tags, ok := parseInfoLine(line); ok {
				cur.draft.Tags = tags
				continue
			}
		}

		if line == ruler {
			pending = []string{raw}
			continue
		}
		cur.body = append(cur.body, raw)
	}

	if cur != nil {
		drafts = append(drafts, cur.finish())
	}
	return drafts, nil
}

func isHeading(line string) bool {
	return strings.HasPrefix(line, "# ")
}

// parseInfoLine extracts the tags from a "**Tags:** ... | **Created:** ..." line.
// Tags hold no whitespace, so ", " separates them even when a tag contains a comma.
func parseInfoLine(line string) ([]string, bool) {
	if !strings.HasPrefix(line, tagsLabel) {
		return nil, strings.HasPrefix(line, createdLabel)
	}
	rest := strings.TrimPrefix(line, tagsLabel)
	if i := strings.Index(rest, "| "+createdLabel); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, true
	}
	return strings.Split(rest, tagSep), true
}

// splitTags reads a hand-written comma separated tag list.
func splitTags(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseFrontmatter reads a single note: YAML between two "---" lines, then the
// body. "title" and "tags" map to the note; other scalar keys become metadata.
// Without a title key the first "# " heading of the body is used.
func parseFrontmatter(text string) (core.Draft, error) {
	rest := strings.TrimPrefix(text, ruler+"\n")

	var head, body string
	switch {
	case strings.HasPrefix(rest, ruler+"\n"):
		body = rest[len(ruler)+1:]
	case rest == ruler:
	default:
		i := strings.Index(rest, "\n"+ruler+"\n")
		if i < 0 {
			if !strings.HasSuffix(rest, "\n"+ruler) {
				return core.Draft{}, errors.New("frontmatter started but no closing delimiter found")
			}
			i = len(rest) - len(ruler) - 1
			head = rest[:i]
		} else {
			head = rest[:i]
			body = rest[i+len(ruler)+2:]
		}
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(head), &fields); err != nil {
		return core.Draft{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	d := core.Draft{}
	for _, key := range sortedKeys(fields) {
		value := fields[key]
		if value == nil {
			continue
		}
		switch key {
		case "title":
			d.Title = fmt.Sprint(value)
		case "tags":
			tags, err := frontmatterTags(value)
			if err != nil {
				return core.Draft{}, err
			}
			d.Tags = tags
		case "archived", "is_archived":
			b, ok := value.(bool)
			if !ok {
				return core.Draft{}, fmt.Errorf("frontmatter %q must be a boolean", key)
			}
			d.Archived = b
		default:
			if !isScalar(value) {
				return core.Draft{}, fmt.Errorf("frontmatter %q must be a scalar to be kept as metadata", key)
			}
			if d.Metadata == nil {
				d.Metadata = make(core.Metadata)
			}
			d.Metadata[key] = fmt.Sprint(value)
		}
	}

	body = strings.TrimLeft(body, "\n")
	if d.Title == "" {
		first, remainder, _ := strings.Cut(body, "\n")
		if isHeading(strings.TrimRight(first, " \t")) {
			d.Title = strings.TrimSpace(first[2:])
			body = strings.TrimLeft(remainder, "\n")
		}
	}
	d.Content = strings.TrimRight(body, "\n")
	return d, nil
}

func frontmatterTags(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return splitTags(t), nil
	case []any:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			if !isScalar(item) || item == nil {
				return nil, errors.New("frontmatter tags must be a list of strings")
			}
			tags = append(tags, fmt.Sprint(item))
		}
		return tags, nil
	default:
		return nil, errors.New("frontmatter tags must be a list or a comma separated string")
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
