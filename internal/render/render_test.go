package render_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes/internal/render"
	"github.com/aretw0/notes/pkg/core"
)

var fixedNow = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

func newPrinter() (*render.Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return &render.Printer{W: &buf, Now: func() time.Time { return fixedNow }}, &buf
}

func sample(t *testing.T, title string, tags ...string) core.Note {
	t.Helper()
	n, err := core.NewNote(title, "body of "+title, tags)
	require.NoError(t, err)
	n.ID = "0123456789abcdef"
	n.CreatedAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	n.UpdatedAt = n.CreatedAt
	return n
}

func TestNoteList(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		p, buf := newPrinter()
		p.NoteList(nil)
		assert.Equal(t, "No notes found.\n", buf.String())
	})

	t.Run("Entries", func(t *testing.T) {
		p, buf := newPrinter()
		a := sample(t, "Groceries", "home", "errand")
		b := sample(t, "Old")
		b.Archive()

		p.NoteList([]core.Note{a, b})

		want := "Found 2 note(s):\n" +
			"1. [01234567] Groceries (2024-03-01 09:30, 3 days ago)\n" +
			"   Tags: home, errand\n" +
			"2. [01234567] Old (2024-03-01 09:30, 3 days ago) [archived]\n"
		assert.Equal(t, want, buf.String())
	})
}

func TestNoteDetail(t *testing.T) {
	p, buf := newPrinter()
	n := sample(t, "Groceries", "home")
	_, err := n.AddMetadata("store", "corner")
	require.NoError(t, err)
	n.UpdatedAt = n.CreatedAt

	p.NoteDetail(n)

	out := buf.String()
	assert.Contains(t, out, "Title: Groceries\n")
	assert.Contains(t, out, "ID: 0123456789abcdef\n")
	assert.Contains(t, out, "Created: 2024-03-01 09:30:00 UTC (3 days ago)\n")
	assert.Contains(t, out, "Tags: home\n")
	assert.Contains(t, out, "Metadata:\n  store: corner\n")
	rule := strings.Repeat("-", 50)
	assert.Contains(t, out, "Content:\n"+rule+"\nbody of Groceries\n"+rule+"\n")
}

func TestResults(t *testing.T) {
	n := sample(t, "Groceries")

	tests := []struct {
		name string
		fn   func(p *render.Printer)
		want string
	}{
		{"Created", func(p *render.Printer) { p.Created(n) }, "Note created successfully with ID: 0123456789abcdef\n"},
		{"Updated", func(p *render.Printer) { p.Updated(core.UpdateResult{Note: n, Changed: true}) }, "Note updated successfully.\n"},
		{"Unchanged", func(p *render.Printer) { p.Updated(core.UpdateResult{Note: n}) }, "No changes detected.\n"},
		{"Deleted", func(p *render.Printer) { p.Deleted(n) }, "Deleted note [01234567] Groceries\n"},
		{"Archived", func(p *render.Printer) { p.Archived(core.UpdateResult{Note: n, Changed: true}, true) }, "Note [01234567] archived.\n"},
		{"Already Active", func(p *render.Printer) { p.Archived(core.UpdateResult{Note: n}, false) }, "Note [01234567] is already unarchived.\n"},
		{"Exported", func(p *render.Printer) { p.Exported(2, "out.md") }, "Exported 2 note(s) to out.md\n"},
		{
			"Tag Added",
			func(p *render.Printer) {
				p.Tagged(core.TagResult{Note: n, Changed: []string{"a"}, Unchanged: []string{"b"}})
			},
			"Added tags to [01234567]: a\nAlready present on [01234567]: b\n",
		},
		{
			"Tag Remove Noop",
			func(p *render.Printer) {
				p.Tagged(core.TagResult{Note: n, Unchanged: []string{"x"}, Removed: true})
			},
			"Not present on [01234567]: x\nNo changes detected.\n",
		},
		{
			"Imported",
			func(p *render.Printer) { p.Imported("a.json", core.ImportResult{Notes: []core.Note{n}}) },
			"Imported 1 note(s) from a.json\n  [01234567] Groceries\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, buf := newPrinter()
			tt.fn(p)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestStats(t *testing.T) {
	p, buf := newPrinter()
	oldest := time.Date(2024, 2, 4, 12, 0, 0, 0, time.UTC)

	p.Stats(core.Stats{
		Notes:      1200,
		Archived:   3,
		Words:      45000,
		Characters: 250000,
		Tags:       map[string]int{"home": 2, "work": 5, "errand": 2},
		Oldest:     &oldest,
		Newest:     &fixedNow,
	})

	want := "Notes:      1,200 (3 archived)\n" +
		"Words:      45,000\n" +
		"Characters: 250,000\n" +
		"Oldest:     2024-02-04 12:00 (4 weeks ago)\n" +
		"Newest:     2024-03-04 12:00 (now)\n" +
		"Tags:\n" +
		"  work    5\n" +
		"  errand  2\n" +
		"  home    2\n"
	assert.Equal(t, want, buf.String())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", render.ShortID("abc"))
	assert.Equal(t, "01234567", render.ShortID("0123456789"))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.JSON(&buf, map[string]int{"notes": 1}))
	assert.Equal(t, "{\n  \"notes\": 1\n}\n", buf.String())
}
