package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gedvault/gedvault/pkg/canvas"
	"github.com/gedvault/gedvault/pkg/errors"
	"github.com/gedvault/gedvault/pkg/gedcom"
	"github.com/gedvault/gedvault/pkg/tree"
	"github.com/gedvault/gedvault/pkg/vault"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete parse → layout → emit pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.Layout.Logger = opts.Logger

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	idx, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.PersonCount = len(idx.IDs())
	result.Stats.FamilyCount = idx.FamilyCount()

	r.Logger.Info("parsed gedcom",
		"persons", result.Stats.PersonCount,
		"families", result.Stats.FamilyCount,
		"duration", result.Stats.ParseTime)

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWrite, err, "output directory %s", opts.OutputDir)
	}

	emitStart := time.Now()
	if opts.Notes {
		if err := r.writeNotes(ctx, idx, opts, result); err != nil {
			return nil, err
		}
	}
	if opts.Index {
		path, err := vault.WriteIndex(idx, opts.OutputDir, opts.IndexFile)
		if err != nil {
			return nil, err
		}
		result.IndexPath = path
		r.Logger.Info("wrote index", "path", path)
	}
	result.Stats.EmitTime = time.Since(emitStart)

	if opts.Canvas {
		if err := r.renderCanvas(ctx, idx, opts, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Parse reads and indexes the GEDCOM file.
func (r *Runner) Parse(ctx context.Context, opts Options) (*gedcom.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := gedcom.ParseFile(opts.GedcomPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "gedcom file %s", opts.GedcomPath)
	}
	if len(f.Individuals) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no individuals in %s", opts.GedcomPath)
	}
	return gedcom.NewIndex(f), nil
}

// ResolveRoot picks the canvas root person: the explicit RootID when set
// (validated against the file), otherwise the first person in the file.
// Xref decoration is tolerated, so "@I42@" and "I42" name the same person.
func (r *Runner) ResolveRoot(idx *gedcom.Index, opts Options) (string, error) {
	if opts.RootID == "" {
		return idx.IDs()[0], nil
	}
	id := strings.Trim(opts.RootID, "@")
	if !idx.Contains(id) {
		return "", errors.New(errors.ErrCodePersonNotFound, "root person %s not in file", opts.RootID)
	}
	return id, nil
}

// Trees builds and lays out the main tree rooted at rootID plus one
// component per disconnected sub-population.
func (r *Runner) Trees(idx *gedcom.Index, rootID string, opts Options) (tree.Structure, map[string]tree.Point, []tree.Component) {
	main := tree.Build(idx, rootID)
	pos := tree.Layout(main, idx, opts.Layout)
	comps := tree.LayoutForest(idx, idx.IDs(), main, pos, opts.Layout)
	return main, pos, comps
}

func (r *Runner) writeNotes(ctx context.Context, idx *gedcom.Index, opts Options, result *Result) error {
	gen, err := vault.NewGenerator(idx, opts.OutputDir, opts.MediaDir)
	if err != nil {
		return err
	}
	for _, id := range idx.IDs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		in, _ := idx.Person(id)
		path, err := gen.WriteNote(in)
		if err != nil {
			return err
		}
		result.NotePaths = append(result.NotePaths, path)
	}
	r.Logger.Info("wrote notes", "count", len(result.NotePaths))
	return nil
}

func (r *Runner) renderCanvas(ctx context.Context, idx *gedcom.Index, opts Options, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rootID, err := r.ResolveRoot(idx, opts)
	if err != nil {
		return err
	}
	result.RootID = rootID

	layoutStart := time.Now()
	main, pos, comps := r.Trees(idx, rootID, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.TreeCount = 1 + len(comps)

	if len(pos) == 0 && len(comps) == 0 {
		// Nothing placeable. Leave any existing canvas untouched.
		r.Logger.Warn("empty layout, skipping canvas", "root", rootID)
		return nil
	}

	em := canvas.NewEmitter(idx, opts.Layout)
	em.Add(main, pos)
	for _, c := range comps {
		em.Add(c.Structure, c.Positions)
	}

	cv := em.Canvas()
	result.Stats.NodeCount = len(cv.Nodes)
	result.Stats.EdgeCount = len(cv.Edges)

	path := filepath.Join(opts.OutputDir, opts.CanvasFile)
	if err := cv.WriteFile(path); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "canvas %s", path)
	}
	result.CanvasPath = path

	r.Logger.Info("wrote canvas",
		"path", path,
		"root", rootID,
		"trees", result.Stats.TreeCount,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LayoutTime)
	return nil
}
