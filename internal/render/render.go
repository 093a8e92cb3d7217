// Package render turns service results into the human-readable CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/aretw0/notes/pkg/core"
)

const (
	// ShortIDLength is how many id characters listings show.
	ShortIDLength = 8

	listTimeLayout   = "2006-01-02 15:04"
	detailTimeLayout = "2006-01-02 15:04:05 UTC"
	ruleWidth        = 50
)

// Printer writes human-readable output. Now anchors relative times.
type Printer struct {
	W   io.Writer
	Now func() time.Time
}

// New creates a Printer on w using the wall clock.
func New(w io.Writer) *Printer {
	return &Printer{W: w, Now: time.Now}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ShortID abbreviates an id for listings.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

func (p *Printer) ago(t time.Time) string {
	return humanize.RelTime(t, p.Now(), "ago", "from now")
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.W, format, args...)
}

// NoteList prints a numbered listing, newest first as given.
func (p *Printer) NoteList(notes []core.Note) {
	if len(notes) == 0 {
		p.printf("No notes found.\n")
		return
	}

	p.printf("Found %d note(s):\n", len(notes))
	for i, n := range notes {
		marker := ""
		if n.IsArchived {
			marker = " [archived]"
		}
		p.printf("%d. [%s] %s (%s, %s)%s\n", i+1, ShortID(n.ID), n.Title,
			n.CreatedAt.UTC().Format(listTimeLayout), p.ago(n.CreatedAt), marker)
		if len(n.Tags) > 0 {
			p.printf("   Tags: %s\n", strings.Join(n.Tags, ", "))
		}
	}
}

// NoteDetail prints every field of a note followed by its content.
func (p *Printer) NoteDetail(n core.Note) {
	p.printf("Title: %s\n", n.Title)
	p.printf("ID: %s\n", n.ID)
	p.printf("Created: %s (%s)\n", n.CreatedAt.UTC().Format(detailTimeLayout), p.ago(n.CreatedAt))
	p.printf("Updated: %s (%s)\n", n.UpdatedAt.UTC().Format(detailTimeLayout), p.ago(n.UpdatedAt))
	if len(n.Tags) > 0 {
		p.printf("Tags: %s\n", strings.Join(n.Tags, ", "))
	}
	if n.IsArchived {
		p.printf("Archived: yes\n")
	}
	if len(n.Metadata) > 0 {
		p.printf("Metadata:\n")
		keys := make([]string, 0, len(n.Metadata))
		for k := range n.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p.printf("  %s: %s\n", k, n.Metadata[k])
		}
	}

	rule := strings.Repeat("-", ruleWidth)
	p.printf("\nContent:\n%s\n", rule)
	if n.Content != "" {
		p.printf("%s\n", n.Content)
	}
	p.printf("%s\n", rule)
}

// Created confirms a new note.
func (p *Printer) Created(n core.Note) {
	p.printf("Note created successfully with ID: %s\n", n.ID)
}

// Updated reports an edit.
func (p *Printer) Updated(res core.UpdateResult) {
	if !res.Changed {
		p.printf("No changes detected.\n")
		return
	}
	p.printf("Note updated successfully.\n")
}

// Archived reports an archive toggle.
func (p *Printer) Archived(res core.UpdateResult, archived bool) {
	state := "archived"
	if !archived {
		state = "unarchived"
	}
	if !res.Changed {
		p.printf("Note [%s] is already %s.\n", ShortID(res.Note.ID), state)
		return
	}
	p.printf("Note [%s] %s.\n", ShortID(res.Note.ID), state)
}

// Deleted confirms a removal.
func (p *Printer) Deleted(n core.Note) {
	p.printf("Deleted note [%s] %s\n", ShortID(n.ID), n.Title)
}

// Tagged reports the outcome of a tag call.
func (p *Printer) Tagged(res core.TagResult) {
	id := ShortID(res.Note.ID)
	if res.Removed {
		if len(res.Changed) > 0 {
			p.printf("Removed tags from [%s]: %s\n", id, strings.Join(res.Changed, ", "))
		}
		if len(res.Unchanged) > 0 {
			p.printf("Not present on [%s]: %s\n", id, strings.Join(res.Unchanged, ", "))
		}
	} else {
		if len(res.Changed) > 0 {
			p.printf("Added tags to [%s]: %s\n", id, strings.Join(res.Changed, ", "))
		}
		if len(res.Unchanged) > 0 {
			p.printf("Already present on [%s]: %s\n", id, strings.Join(res.Unchanged, ", "))
		}
	}
	if len(res.Changed) == 0 {
		p.printf("No changes detected.\n")
	}
}

// MetadataChanged reports a meta call.
func (p *Printer) MetadataChanged(res core.UpdateResult) {
	if !res.Changed {
		p.printf("No changes detected.\n")
		return
	}
	p.printf("Metadata of [%s] updated.\n", ShortID(res.Note.ID))
}

// Imported lists the notes created by an import.
func (p *Printer) Imported(source string, res core.ImportResult) {
	p.printf("Imported %d note(s) from %s\n", len(res.Notes), source)
	for _, n := range res.Notes {
		p.printf("  [%s] %s\n", ShortID(n.ID), n.Title)
	}
}

// Exported confirms an export written to a file.
func (p *Printer) Exported(count int, path string) {
	p.printf("Exported %d note(s) to %s\n", count, path)
}

// Stats prints the store summary, tags by descending use.
func (p *Printer) Stats(st core.Stats) {
	p.printf("Notes:      %s (%s archived)\n", humanize.Comma(int64(st.Notes)), humanize.Comma(int64(st.Archived)))
	p.printf("Words:      %s\n", humanize.Comma(int64(st.Words)))
	p.printf("Characters: %s\n", humanize.Comma(int64(st.Characters)))
	if st.Oldest != nil {
		p.printf("Oldest:     %s (%s)\n", st.Oldest.UTC().Format(listTimeLayout), p.ago(*st.Oldest))
	}
	if st.Newest != nil {
		p.printf("Newest:     %s (%s)\n", st.Newest.UTC().Format(listTimeLayout), p.ago(*st.Newest))
	}
	if len(st.Tags) == 0 {
		return
	}

	type tagCount struct {
		name  string
		count int
	}
	tags := make([]tagCount, 0, len(st.Tags))
	width := 0
	for name, count := range st.Tags {
		tags = append(tags, tagCount{name, count})
		width = max(width, len(name))
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].count != tags[j].count {
			return tags[i].count > tags[j].count
		}
		return tags[i].name < tags[j].name
	})

	p.printf("Tags:\n")
	for _, t := range tags {
		p.printf("  %-*s  %d\n", width, t.name, t.count)
	}
}

// Event prints one watch event.
func (p *Printer) Event(e core.Event) {
	p.printf("%s %-6s %s\n", time.Unix(e.Timestamp, 0).UTC().Format(detailTimeLayout), e.Type, e.ID)
}
