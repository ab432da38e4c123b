// Package pipeline provides the core conversion pipeline for gedvault.
//
// This package implements the complete parse → layout → emit pipeline
// that the CLI entry points share. By centralizing the logic here, the
// convert, canvas, and graph commands all behave identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read the GEDCOM file and index people and families
//  2. Layout: Build the tree structure and solve node positions
//  3. Emit: Write vault notes, the index note, and the canvas diagram
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    GedcomPath: "family.ged",
//	    OutputDir:  "vault",
//	    Canvas:     true,
//	    Notes:      true,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/gedvault/gedvault/pkg/errors"
	"github.com/gedvault/gedvault/pkg/tree"
	"github.com/gedvault/gedvault/pkg/vault"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config
// =============================================================================

const (
	// DefaultCanvasFile is the canvas output name inside the vault.
	DefaultCanvasFile = "Family Tree.canvas"

	// DefaultIndexFile is the index note name inside the vault.
	DefaultIndexFile = vault.DefaultIndexFile

	// DefaultMediaDir is the vault subdirectory image paths point into.
	// Empty means images sit next to the notes.
	DefaultMediaDir = ""
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the conversion pipeline.
type Options struct {
	// Parse options
	GedcomPath string `json:"gedcom_path"`

	// Output selection
	OutputDir string `json:"output_dir"`
	Notes     bool   `json:"notes,omitempty"`
	Index     bool   `json:"index,omitempty"`
	Canvas    bool   `json:"canvas,omitempty"`

	// Canvas options
	RootID     string `json:"root_id,omitempty"`
	CanvasFile string `json:"canvas_file,omitempty"`
	IndexFile  string `json:"index_file,omitempty"`
	MediaDir   string `json:"media_dir,omitempty"`

	// Layout geometry. Zero fields take the layout engine defaults.
	Layout tree.Options `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.GedcomPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "gedcom path is required")
	}
	if o.OutputDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output directory is required")
	}
	if !o.Notes && !o.Index && !o.Canvas {
		// Bare invocation means full conversion.
		o.Notes, o.Index, o.Canvas = true, true, true
	}
	if o.CanvasFile == "" {
		o.CanvasFile = DefaultCanvasFile
	}
	if o.IndexFile == "" {
		o.IndexFile = DefaultIndexFile
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RootID is the person the main tree was built from.
	RootID string

	// CanvasPath is the written canvas file, when canvas output ran.
	CanvasPath string

	// IndexPath is the written index note, when index output ran.
	IndexPath string

	// NotePaths are the written person notes, when note output ran.
	NotePaths []string

	// Stats contains counts and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PersonCount int
	FamilyCount int
	TreeCount   int
	NodeCount   int
	EdgeCount   int
	ParseTime   time.Duration
	LayoutTime  time.Duration
	EmitTime    time.Duration
}
