package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes/pkg/core"
)

// harness runs the CLI in-process against a private notes directory.
type harness struct {
	t   *testing.T
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"NOTES_DIR", "NOTES_DEFAULT_LIMIT", "NOTES_EXPORT_FORMAT", "NOTES_VERBOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return &harness{t: t, dir: filepath.Join(t.TempDir(), "notes")}
}

type result struct {
	code   int
	stdout string
	stderr string
}

func (h *harness) runIn(stdin string, args ...string) result {
	h.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--dir", h.dir}, args...)
	code := run(full, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func (h *harness) run(args ...string) result {
	h.t.Helper()
	return h.runIn("", args...)
}

// ok runs a command that must succeed.
func (h *harness) ok(args ...string) string {
	h.t.Helper()
	res := h.run(args...)
	require.Equal(h.t, ExitSuccess, res.code, "args %v\nstderr: %s", args, res.stderr)
	return res.stdout
}

func (h *harness) create(title string, args ...string) core.Note {
	h.t.Helper()
	out := h.ok(append([]string{"--json", "create", title}, args...)...)
	var n core.Note
	require.NoError(h.t, json.Unmarshal([]byte(out), &n))
	return n
}

func (h *harness) listJSON(args ...string) []core.Note {
	h.t.Helper()
	out := h.ok(append([]string{"--json", "list"}, args...)...)
	var notes []core.Note
	require.NoError(h.t, json.Unmarshal([]byte(out), &notes))
	return notes
}

func TestCreateAndList(t *testing.T) {
	h := newHarness(t)

	out := h.ok("create", "First", "-c", "hello")
	assert.Contains(t, out, "Note created successfully with ID: ")

	h.create("Second", "-t", "work")

	notes := h.listJSON()
	require.Len(t, notes, 2)
	assert.Equal(t, "Second", notes[0].Title)
	assert.Equal(t, "First", notes[1].Title)

	human := h.ok("ls")
	assert.Contains(t, human, "Found 2 note(s):")
	assert.Contains(t, human, "Tags: work")

	assert.Len(t, h.listJSON("-l", "1"), 1)
	assert.Len(t, h.listJSON("--tag", "work"), 1)

	assert.FileExists(t, filepath.Join(h.dir, notes[0].ID+".json"))
}

func TestCreate_Aliases(t *testing.T) {
	h := newHarness(t)
	h.ok("new", "One")
	h.ok("add", "Two", "--tags", "a", "--tags", "b")

	notes := h.listJSON()
	require.Len(t, notes, 2)
	assert.Equal(t, []string{"a", "b"}, notes[0].Tags)
}

func TestCreate_TagsKeepCommas(t *testing.T) {
	h := newHarness(t)
	n := h.create("Settings", "--tags", "k=v,x")
	assert.Equal(t, []string{"k=v,x"}, n.Tags)

	h.ok("tag", n.ID, "a,b")
	var got core.Note
	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "show", n.ID)), &got))
	assert.Equal(t, []string{"k=v,x", "a,b"}, got.Tags)
}

func TestCreate_ContentFromStdin(t *testing.T) {
	h := newHarness(t)
	res := h.runIn("line one\nline two\n", "--json", "create", "Piped", "-c", "-")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	var n core.Note
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &n))
	assert.Equal(t, "line one\nline two", n.Content)
}

func TestSearch_Groceries(t *testing.T) {
	h := newHarness(t)
	n := h.create("Groceries", "-c", "milk, eggs", "-t", "home", "-t", "errand")
	h.create("Standup", "-c", "daily sync")

	var found []core.Note
	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "search", "egg")), &found))
	require.Len(t, found, 1)
	assert.Equal(t, n.ID, found[0].ID)

	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "search", "work")), &found))
	assert.Empty(t, found)

	// Title matches are excluded by --in-content.
	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "search", "groceries", "--in-content")), &found))
	assert.Empty(t, found)

	assert.Contains(t, h.ok("search", "nothing-matches"), "No notes found.")
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	n := h.create("Groceries", "-c", "milk")

	out := h.ok("show", n.ID)
	assert.Contains(t, out, "Title: Groceries")
	assert.Contains(t, out, "milk")

	out = h.ok("view", n.ID[:8])
	assert.Contains(t, out, "ID: "+n.ID)
}

func TestEdit(t *testing.T) {
	h := newHarness(t)
	n := h.create("Draft", "-t", "a")

	assert.Contains(t, h.ok("edit", n.ID, "--title", "Draft"), "No changes detected.")
	assert.Contains(t, h.ok("edit", n.ID, "--title", "Final", "--tags", "x", "--tags", "y"), "Note updated successfully.")

	var got core.Note
	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "show", n.ID)), &got))
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, []string{"x", "y"}, got.Tags)
	assert.True(t, got.UpdatedAt.After(n.UpdatedAt))

	// An invalid field aborts the whole edit.
	res := h.run("edit", n.ID, "--title", "Again", "--content", strings.Repeat("x", core.MaxContentLength+1))
	assert.Equal(t, ExitDataError, res.code)
	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "show", n.ID)), &got))
	assert.Equal(t, "Final", got.Title)

	h.ok("edit", n.ID, "--tags", "")
	got = core.Note{}
	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "show", n.ID)), &got))
	assert.Empty(t, got.Tags)
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	n := h.create("Doomed")

	res := h.runIn("n\n", "delete", n.ID)
	assert.Equal(t, ExitSuccess, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Deletion cancelled.")
	assert.Len(t, h.listJSON(), 1)

	res = h.runIn("", "delete", n.ID)
	assert.Equal(t, ExitSuccess, res.code)
	assert.Len(t, h.listJSON(), 1, "end of input must not confirm")

	res = h.runIn("yes\n", "delete", n.ID)
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Deleted note")
	assert.Empty(t, h.listJSON())

	// The prompt stays off stdout so JSON output remains parseable.
	js := h.create("Json doomed")
	res = h.runIn("y\n", "--json", "delete", js.ID)
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Delete note")
	var deleted core.Note
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &deleted))
	assert.Equal(t, js.ID, deleted.ID)

	other := h.create("Also doomed")
	h.ok("rm", "-f", other.ID)
	assert.Empty(t, h.listJSON())

	res = h.run("delete", "-f", other.ID)
	assert.Equal(t, ExitNotFound, res.code)
}

func TestTag(t *testing.T) {
	h := newHarness(t)
	n := h.create("Tagged", "-t", "a")

	out := h.ok("tag", n.ID, "b", "a")
	assert.Contains(t, out, "Added tags to")
	assert.Contains(t, out, "Already present on")

	out = h.ok("tag", n.ID, "a", "--remove")
	assert.Contains(t, out, "Removed tags from")

	var got core.Note
	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "show", n.ID)), &got))
	assert.Equal(t, []string{"b"}, got.Tags)

	assert.Contains(t, h.ok("tag", n.ID, "zzz", "--remove"), "No changes detected.")
}

func TestArchiveAndMeta(t *testing.T) {
	h := newHarness(t)
	keep := h.create("Keep")
	old := h.create("Old")

	assert.Contains(t, h.ok("archive", old.ID), "archived.")
	assert.Contains(t, h.ok("archive", old.ID), "already archived")

	active := h.listJSON("--active")
	require.Len(t, active, 1)
	assert.Equal(t, keep.ID, active[0].ID)
	assert.Len(t, h.listJSON("--archived"), 1)

	h.ok("unarchive", old.ID)
	assert.Len(t, h.listJSON("--active"), 2)

	h.ok("meta", keep.ID, "source=book", "url=https://x.test/?a=b")
	var meta core.Metadata
	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "meta", keep.ID)), &meta))
	assert.Equal(t, core.Metadata{"source": "book", "url": "https://x.test/?a=b"}, meta)

	h.ok("meta", keep.ID, "--unset", "source")
	meta = nil
	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "meta", keep.ID)), &meta))
	assert.Equal(t, core.Metadata{"url": "https://x.test/?a=b"}, meta)

	res := h.run("meta", keep.ID, "novalue")
	assert.Equal(t, ExitDataError, res.code)
}

func TestExport_MarkdownByTag(t *testing.T) {
	h := newHarness(t)
	h.create("Groceries", "-c", "milk", "-t", "home")
	h.create("Garden", "-c", "hedges", "-t", "home")
	h.create("Standup", "-c", "sync", "-t", "work")

	out := h.ok("export", "-f", "md", "-t", "home")

	var headings []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "# ") {
			headings = append(headings, line)
		}
	}
	assert.ElementsMatch(t, []string{"# Groceries", "# Garden"}, headings)
	assert.NotContains(t, out, "Standup")
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := newHarness(t)
	src.create("Groceries", "-c", "milk", "-t", "home")
	src.create("Ideas", "-c", "many")

	for _, name := range []string{"backup.json", "backup.yaml", "backup.md"} {
		t.Run(name, func(t *testing.T) {
			src := &harness{t: t, dir: src.dir}
			path := filepath.Join(t.TempDir(), name)
			out := src.ok("export", "-o", path)
			assert.Contains(t, out, "Exported 2 note(s) to "+path)

			dst := &harness{t: t, dir: filepath.Join(t.TempDir(), "restored")}
			out = dst.ok("import", path)
			assert.Contains(t, out, "Imported 2 note(s) from "+path)

			notes := dst.listJSON()
			require.Len(t, notes, 2)
			titles := []string{notes[0].Title, notes[1].Title}
			assert.ElementsMatch(t, []string{"Groceries", "Ideas"}, titles)
		})
	}
}

func TestExport_TextAndHTML(t *testing.T) {
	h := newHarness(t)
	h.create("Plain", "-c", "body")

	assert.Equal(t, "Plain\n\nbody\n"+strings.Repeat("-", 40)+"\n", h.ok("export", "-f", "txt"))
	assert.Contains(t, h.ok("export", "-f", "html"), "<h1")

	res := h.run("export", "-f", "pdf")
	assert.Equal(t, ExitDataError, res.code)
	assert.Contains(t, res.stderr, "error: ")
}

func TestImport_Glob(t *testing.T) {
	h := newHarness(t)
	vault := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(vault, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "a.md"), []byte("---\ntitle: A\ntags: [x]\n---\nalpha\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "sub", "b.md"), []byte("---\ntitle: B\n---\nbeta\n"), 0644))

	h.ok("import", filepath.Join(vault, "**", "*.md"))
	assert.Len(t, h.listJSON(), 2)

	res := h.run("import", filepath.Join(vault, "*.json"))
	assert.Equal(t, ExitDataError, res.code)
}

func TestImport_Errors(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`[{"title":"ok"},{"title":""}]`), 0644))
	res := h.run("import", invalid)
	assert.Equal(t, ExitDataError, res.code)
	assert.Contains(t, res.stderr, "record 2")
	assert.Empty(t, h.listJSON(), "no note may be written when a record is invalid")

	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`[{"title":`), 0644))
	res = h.run("import", malformed)
	assert.Equal(t, ExitSerializationError, res.code)

	res = h.run("import", filepath.Join(dir, "absent.json"))
	assert.Equal(t, ExitError, res.code)

	res = h.runIn(`[{"title":"From stdin"}]`, "import", "-")
	assert.Equal(t, ExitDataError, res.code)

	res = h.runIn(`[{"title":"From stdin"}]`, "import", "-", "-f", "json")
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Len(t, h.listJSON(), 1)
}

func TestStatsAndVersion(t *testing.T) {
	h := newHarness(t)
	h.create("One", "-c", "two words", "-t", "a")
	h.create("Two", "-t", "a", "-t", "b")

	var st core.Stats
	require.NoError(t, json.Unmarshal([]byte(h.ok("--json", "stats")), &st))
	assert.Equal(t, 2, st.Notes)
	assert.Equal(t, 2, st.Words)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, st.Tags)

	var state map[string]any
	require.NoError(t, json.Unmarshal([]byte(h.ok("stats", "--state")), &state))
	assert.Equal(t, "service", state["component"])

	assert.Contains(t, h.ok("version"), "notes version "+Version)
}

func TestExitCodes(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"Not Found", []string{"show", "does-not-exist"}, ExitNotFound},
		{"Empty Title", []string{"create", ""}, ExitDataError},
		{"Title Too Long", []string{"create", strings.Repeat("t", core.MaxTitleLength+1)}, ExitDataError},
		{"Bad Limit", []string{"list", "-l", "abc"}, ExitDataError},
		{"Negative Limit", []string{"list", "-l", "-1"}, ExitDataError},
		{"Missing Argument", []string{"show"}, ExitDataError},
		{"Unknown Flag", []string{"list", "--bogus"}, ExitDataError},
		{"Unknown Event Type", []string{"watch", "--type", "rename"}, ExitDataError},
		{"Missing Config", []string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "list"}, ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.run(tt.args...)
			assert.Equal(t, tt.want, res.code, "stderr: %s", res.stderr)
			assert.True(t, strings.HasPrefix(res.stderr, "error: "), "stderr: %q", res.stderr)
		})
	}
}

func TestList_SkipsCorruptFiles(t *testing.T) {
	h := newHarness(t)
	h.create("Good")
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "broken.json"), []byte("{"), 0644))

	res := h.run("list")
	assert.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "Found 1 note(s):")
	assert.Contains(t, res.stderr, "failed to parse note file")
}

func TestConfig_DefaultLimitAndFormat(t *testing.T) {
	h := newHarness(t)
	t.Setenv("NOTES_DEFAULT_LIMIT", "1")
	t.Setenv("NOTES_EXPORT_FORMAT", "json")

	h.create("One")
	h.create("Two")

	assert.Len(t, h.listJSON(), 1)
	assert.Len(t, h.listJSON("-l", "0"), 2)

	var exported []core.Note
	require.NoError(t, json.Unmarshal([]byte(h.ok("export")), &exported))
	assert.Len(t, exported, 2)
}

func TestParseEventTypes(t *testing.T) {
	types, err := parseEventTypes([]string{"create", " DELETE "})
	require.NoError(t, err)
	assert.Equal(t, []core.EventType{core.EventCreate, core.EventDelete}, types)

	types, err = parseEventTypes(nil)
	require.NoError(t, err)
	assert.Empty(t, types)

	_, err = parseEventTypes([]string{"moved"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
