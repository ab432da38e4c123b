// Package pkg provides the core libraries for gedvault genealogy conversion.
//
// # Overview
//
// Gedvault turns GEDCOM genealogy exports into an Obsidian vault: one
// markdown note per person, an alphabetical index note, and a canvas
// diagram laying the family tree out left to right by generation. The
// pkg directory is organized into five main areas:
//
//  1. [gedcom] - GEDCOM parsing and relationship indexing
//  2. [tree] - Tree construction and the position solver
//  3. [canvas] - JSON Canvas document model and emitter
//  4. [vault] - Markdown note and index generation
//  5. [pipeline] - Orchestration (parse → layout → emit)
//
// # Architecture
//
// The typical data flow through gedvault:
//
//	GEDCOM file
//	       ↓
//	  [gedcom] package (parse records, index relationships)
//	       ↓
//	  [tree] package (generations + coordinate solving)
//	       ↓
//	  [canvas] / [vault] packages (emit canvas, notes, index)
//	       ↓
//	  Obsidian vault output
//
// # Quick Start
//
// Run the full conversion through the pipeline:
//
//	import (
//	    "context"
//	    "github.com/gedvault/gedvault/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    GedcomPath: "family.ged",
//	    OutputDir:  "vault",
//	})
//
// Or drive the stages individually:
//
//	f, _ := gedcom.ParseFile("family.ged")
//	idx := gedcom.NewIndex(f)
//	main := tree.Build(idx, idx.IDs()[0])
//	pos := tree.Layout(main, idx, tree.Options{})
//
// # Main Packages
//
// [gedcom] - Line-oriented GEDCOM 5.5 parser and the relationship Index
// that feeds every later stage. Resolves NOTE and OBJE cross-references
// and derives display names, life spans, and attached images.
//
// [tree] - The layout engine. Build walks family links breadth-first to
// assign generations; Layout solves x/y coordinates ancestor band by
// ancestor band; LayoutForest tiles disconnected family groups to the
// right of the main tree.
//
// [canvas] - Obsidian JSON Canvas types plus the Emitter that turns a
// solved layout into nodes and parent/spouse edges.
//
// [vault] - Markdown generation: per-person notes with Dataview inline
// fields, and the alphabetical index note.
//
// [nodelink] - Alternative output: classic directed family graphs via
// Graphviz, for SVG/PNG/DOT export.
//
// [pipeline] - Complete conversion pipeline used by every CLI command.
// Ensures the convert, canvas, and graph entry points behave identically.
//
// [errors] - Coded errors shared across the module.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/tree/...     # Specific package
//
// [gedcom]: https://pkg.go.dev/github.com/gedvault/gedvault/pkg/gedcom
// [tree]: https://pkg.go.dev/github.com/gedvault/gedvault/pkg/tree
// [canvas]: https://pkg.go.dev/github.com/gedvault/gedvault/pkg/canvas
// [vault]: https://pkg.go.dev/github.com/gedvault/gedvault/pkg/vault
// [nodelink]: https://pkg.go.dev/github.com/gedvault/gedvault/pkg/nodelink
// [pipeline]: https://pkg.go.dev/github.com/gedvault/gedvault/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/gedvault/gedvault/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/gedvault/gedvault/pkg/buildinfo
package pkg
