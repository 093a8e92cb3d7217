package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// MinPrefixLength is the shortest id prefix accepted in place of a full id.
const MinPrefixLength = 4

// Service handles the business logic for notes: one method per CLI verb.
// It returns structured results and never writes to the console.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu     sync.RWMutex
	lastOp string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Encoder writes a set of notes in some export format.
type Encoder interface {
	Encode(w io.Writer, notes []Note) error
}

// Decoder reads note drafts from some import format.
type Decoder interface {
	Decode(r io.Reader) ([]Draft, error)
}

// Draft is a note-like record that has not been validated yet.
type Draft struct {
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Archived bool     `json:"is_archived,omitempty" yaml:"is_archived,omitempty"`
}

// CreateInput is the payload of Create.
type CreateInput = Draft

// ListOptions narrows List. Filtering happens before truncation.
type ListOptions struct {
	Tag      string
	Limit    int   // 0 means unlimited
	Archived *bool // nil lists both archived and active notes
}

// SearchOptions narrows Search.
type SearchOptions struct {
	Query     string
	InContent bool
	Tag       string
	Limit     int
}

// UpdateInput carries the optional fields of Update. Nil means "leave as is".
type UpdateInput struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// UpdateResult reports the outcome of a mutating call.
type UpdateResult struct {
	Note    Note
	Changed bool
}

// TagResult reports which tags were actually added or removed.
type TagResult struct {
	Note      Note
	Changed   []string
	Unchanged []string
	Removed   bool
}

// ExportOptions selects the notes to export.
type ExportOptions struct {
	Tag      string
	Archived *bool
}

// ImportResult lists the notes created by Import.
type ImportResult struct {
	Notes []Note
}

// Stats summarises the stored notes.
type Stats struct {
	Notes      int            `json:"notes"`
	Archived   int            `json:"archived"`
	Words      int            `json:"words"`
	Characters int            `json:"characters"`
	Tags       map[string]int `json:"tags"`
	Oldest     *time.Time     `json:"oldest,omitempty"`
	Newest     *time.Time     `json:"newest,omitempty"`
}

func (s *Service) record(op string) {
	s.mu.Lock()
	s.lastOp = op
	s.mu.Unlock()
}

// Create validates and persists a new note. Nothing is written on validation failure.
func (s *Service) Create(ctx context.Context, in CreateInput) (Note, error) {
	s.record("create")
	n, err := draftToNote(in)
	if err != nil {
		return Note{}, err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return Note{}, err
	}
	s.logger.Debug("note created", "id", n.ID)
	return n, nil
}

// List returns notes newest first, filtered by opts then truncated to opts.Limit.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Note, error) {
	s.record("list")
	if opts.Limit < 0 {
		return nil, InvalidInput("limit must not be negative, got %d", opts.Limit)
	}
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	notes = Filter(notes, Query{Tag: opts.Tag, Archived: opts.Archived})
	return truncate(notes, opts.Limit), nil
}

// Show returns a single note. ref is an id or a unique id prefix.
func (s *Service) Show(ctx context.Context, ref string) (Note, error) {
	s.record("show")
	return s.resolve(ctx, ref)
}

// Search returns the notes matching opts.Query, in List order.
func (s *Service) Search(ctx context.Context, opts SearchOptions) ([]Note, error) {
	s.record("search")
	if opts.Limit < 0 {
		return nil, InvalidInput("limit must not be negative, got %d", opts.Limit)
	}
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	found := Filter(notes, Query{Text: opts.Query, InContent: opts.InContent, Tag: opts.Tag})
	s.logger.Debug("search finished", "query", opts.Query, "scanned", len(notes), "matched", len(found))
	return truncate(found, opts.Limit), nil
}

// Update applies the supplied fields. Either every field is valid and the
// note is saved once, or nothing is written. A call that changes nothing
// reports Changed=false and leaves the stored file untouched.
func (s *Service) Update(ctx context.Context, ref string, in UpdateInput) (UpdateResult, error) {
	s.record("update")
	n, err := s.resolve(ctx, ref)
	if err != nil {
		return UpdateResult{}, err
	}

	updated := n.Clone()
	changed := false
	apply := func(c bool, err error) error {
		changed = changed || c
		return err
	}
	if in.Title != nil {
		if err := apply(updated.UpdateTitle(*in.Title)); err != nil {
			return UpdateResult{}, err
		}
	}
	if in.Content != nil {
		if err := apply(updated.UpdateContent(*in.Content)); err != nil {
			return UpdateResult{}, err
		}
	}
	if in.Tags != nil {
		if err := apply(updated.SetTags(*in.Tags)); err != nil {
			return UpdateResult{}, err
		}
	}

	if !changed {
		return UpdateResult{Note: n}, nil
	}
	return s.persist(ctx, updated)
}

// Delete removes a note and returns what was deleted.
func (s *Service) Delete(ctx context.Context, ref string) (Note, error) {
	s.record("delete")
	n, err := s.resolve(ctx, ref)
	if err != nil {
		return Note{}, err
	}
	if err := s.repo.Delete(ctx, n.ID); err != nil {
		return Note{}, err
	}
	s.logger.Debug("note deleted", "id", n.ID)
	return n, nil
}

// Tag adds (or, with remove, removes) tags. The note is saved only if it changed.
func (s *Service) Tag(ctx context.Context, ref string, tags []string, remove bool) (TagResult, error) {
	s.record("tag")
	if len(tags) == 0 {
		return TagResult{}, InvalidInput("at least one tag is required")
	}
	if !remove {
		if err := ValidateTags(tags); err != nil {
			return TagResult{}, err
		}
	}
	n, err := s.resolve(ctx, ref)
	if err != nil {
		return TagResult{}, err
	}

	updated := n.Clone()
	res := TagResult{Removed: remove}
	for _, t := range tags {
		var changed bool
		if remove {
			changed = updated.RemoveTag(t)
		} else {
			changed, _ = updated.AddTag(t)
		}
		if changed {
			res.Changed = append(res.Changed, t)
		} else {
			res.Unchanged = append(res.Unchanged, t)
		}
	}

	if len(res.Changed) == 0 {
		res.Note = n
		return res, nil
	}
	if err := s.repo.Save(ctx, updated); err != nil {
		return TagResult{}, err
	}
	res.Note = updated
	return res, nil
}

// Archive sets or clears the archived flag.
func (s *Service) Archive(ctx context.Context, ref string, archived bool) (UpdateResult, error) {
	s.record("archive")
	n, err := s.resolve(ctx, ref)
	if err != nil {
		return UpdateResult{}, err
	}
	updated := n.Clone()
	var changed bool
	if archived {
		changed = updated.Archive()
	} else {
		changed = updated.Unarchive()
	}
	if !changed {
		return UpdateResult{Note: n}, nil
	}
	return s.persist(ctx, updated)
}

// SetMetadata sets and removes metadata keys in one validated step.
func (s *Service) SetMetadata(ctx context.Context, ref string, set map[string]string, unset []string) (UpdateResult, error) {
	s.record("meta")
	for k := range set {
		if err := ValidateMetadataKey(k); err != nil {
			return UpdateResult{}, err
		}
	}
	n, err := s.resolve(ctx, ref)
	if err != nil {
		return UpdateResult{}, err
	}

	updated := n.Clone()
	changed := false
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c, _ := updated.AddMetadata(k, set[k])
		changed = changed || c
	}
	for _, k := range unset {
		_, c := updated.RemoveMetadata(k)
		changed = changed || c
	}
	if !changed {
		return UpdateResult{Note: n}, nil
	}
	return s.persist(ctx, updated)
}

// Export encodes the selected notes to w and returns how many were written.
func (s *Service) Export(ctx context.Context, opts ExportOptions, enc Encoder, w io.Writer) (int, error) {
	s.record("export")
	notes, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	notes = Filter(notes, Query{Tag: opts.Tag, Archived: opts.Archived})
	if err := enc.Encode(w, notes); err != nil {
		var e *Error
		if errors.As(err, &e) {
			return 0, err
		}
		return 0, IOError("export", "", err)
	}
	return len(notes), nil
}

// Import decodes drafts from r and creates one note per record.
// All records are validated before the first write; one invalid record
// aborts the whole import.
func (s *Service) Import(ctx context.Context, dec Decoder, r io.Reader) (ImportResult, error) {
	s.record("import")
	drafts, err := dec.Decode(r)
	if err != nil {
		return ImportResult{}, err
	}

	notes := make([]Note, 0, len(drafts))
	for i, d := range drafts {
		n, err := draftToNote(d)
		if err != nil {
			var e *Error
			if errors.As(err, &e) && e.Kind == KindValidation {
				return ImportResult{}, &Error{Kind: KindValidation, Field: e.Field, Msg: fmt.Sprintf("record %d: %s", i+1, e.Msg)}
			}
			return ImportResult{}, err
		}
		notes = append(notes, n)
	}

	var res ImportResult
	for _, n := range notes {
		if err := s.repo.Save(ctx, n); err != nil {
			return res, err
		}
		res.Notes = append(res.Notes, n)
	}
	s.logger.Debug("import finished", "records", len(drafts))
	return res, nil
}

// Stats counts notes, tags and words across the store.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	s.record("stats")
	notes, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Tags: make(map[string]int)}
	for i, n := range notes {
		st.Notes++
		if n.IsArchived {
			st.Archived++
		}
		st.Words += n.WordCount()
		st.Characters += n.CharacterCount()
		for _, t := range n.Tags {
			st.Tags[t]++
		}
		created := notes[i].CreatedAt
		if st.Oldest == nil || created.Before(*st.Oldest) {
			st.Oldest = &created
		}
		if st.Newest == nil || created.After(*st.Newest) {
			st.Newest = &created
		}
	}
	return st, nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, InvalidInput("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}

func (s *Service) persist(ctx context.Context, n Note) (UpdateResult, error) {
	if err := s.repo.Save(ctx, n); err != nil {
		return UpdateResult{}, err
	}
	s.logger.Debug("note updated", "id", n.ID)
	return UpdateResult{Note: n, Changed: true}, nil
}

// resolve finds a note by exact id, falling back to a unique id prefix.
func (s *Service) resolve(ctx context.Context, ref string) (Note, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Note{}, InvalidInput("note id cannot be empty")
	}

	n, err := s.repo.Get(ctx, ref)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, ErrNotFound) || len(ref) < MinPrefixLength {
		return Note{}, err
	}

	en, ok := s.repo.(Enumerable)
	if !ok {
		return Note{}, err
	}
	ids, lerr := en.IDs(ctx)
	if lerr != nil {
		return Note{}, lerr
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return Note{}, err
	case 1:
		return s.repo.Get(ctx, matches[0])
	default:
		return Note{}, InvalidInput("id prefix %q is ambiguous (%d notes match)", ref, len(matches))
	}
}

func draftToNote(d Draft) (Note, error) {
	n, err := NewNote(d.Title, d.Content, d.Tags)
	if err != nil {
		return Note{}, err
	}
	for k, v := range d.Metadata {
		if err := ValidateMetadataKey(k); err != nil {
			return Note{}, err
		}
		n.Metadata[k] = v
	}
	n.IsArchived = d.Archived
	return n, nil
}
