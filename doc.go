// Package notes is the library entry point of the notes tool.
//
// It wires the note service in pkg/core to the file-backed store in
// pkg/adapters/fs. Each note is one JSON file named after its id.
//
// Usage:
//
//	svc, err := notes.New(ctx, "~/.notes", notes.WithLogger(logger))
//
//	n, err := svc.Create(ctx, core.CreateInput{Title: "Groceries", Tags: []string{"home"}})
//
//	found, err := svc.Search(ctx, core.SearchOptions{Query: "groc"})
package notes
