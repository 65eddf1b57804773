// Package inkpress is the Composition Root for the inkpress content engine.
//
// It connects the core domain (Post, Store, Service) with the infrastructure
// adapters (filesystem source, renderers) using the Hexagonal Architecture
// pattern.
//
// Philosophy:
//
// Inkpress treats a directory of front-mattered text files as a read-only
// post database. It loads the directory once into an immutable in-memory
// store, exposes ordered and filtered views over it, and renders posts into
// display-ready representations. The core is agnostic to the storage medium;
// the default adapter reads Markdown, YAML, and JSON units from disk.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Immutable Store**: One-shot batch load; safe for concurrent readers.
//   - **Metadata First**: Native front-matter parsing, validation, and indexing.
//   - **Resilient Loading**: Malformed units are skipped and reported, never fatal.
//   - **Renderers**: HTML (goldmark), plain text, and RSS/Atom feeds.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := inkpress.New("./content",
//		inkpress.WithLogger(logger),
//	)
//
//	// Load the store and list posts, newest first
//	store, summary, err := svc.Load(ctx)
//	posts := store.SortedByDate(true)
package inkpress
