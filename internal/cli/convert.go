package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gedvault/gedvault/pkg/errors"
	"github.com/gedvault/gedvault/pkg/pipeline"
)

// convertOpts holds the command-line flags shared by the convert and
// canvas commands.
type convertOpts struct {
	output     string // output vault directory
	config     string // optional TOML config path
	root       string // explicit root person id
	pick       bool   // interactive root selection
	mediaDir   string // vault subdirectory for image paths
	canvasFile string // canvas file name inside the vault
}

func (o *convertOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output vault directory (required)")
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&o.root, "root", "r", "", "root person id for the canvas (default: first person)")
	cmd.Flags().BoolVarP(&o.pick, "pick", "p", false, "pick the root person interactively")
	cmd.Flags().StringVar(&o.mediaDir, "media-dir", "", "vault subdirectory image links point into")
	cmd.Flags().StringVar(&o.canvasFile, "canvas-file", "", "canvas file name (default: \"Family Tree.canvas\")")
	_ = cmd.MarkFlagRequired("output")
}

// pipelineOptions assembles pipeline options from flags plus the optional
// config file. Flags win over config values.
func (o *convertOpts) pipelineOptions(gedcomPath string) (pipeline.Options, error) {
	opts := pipeline.Options{
		GedcomPath: gedcomPath,
		OutputDir:  o.output,
		RootID:     o.root,
		MediaDir:   o.mediaDir,
		CanvasFile: o.canvasFile,
	}
	if o.config != "" {
		cfg, err := pipeline.LoadConfig(o.config)
		if err != nil {
			return opts, err
		}
		cfg.Apply(&opts)
	}
	return opts, nil
}

// resolvePick replaces the root id with an interactively chosen one when
// --pick was given. Parses the file up front so the picker has names.
func (o *convertOpts) resolvePick(ctx context.Context, r *pipeline.Runner, opts *pipeline.Options) error {
	if !o.pick {
		return nil
	}
	if o.root != "" {
		return errors.New(errors.ErrCodeInvalidInput, "--root and --pick are mutually exclusive")
	}
	idx, err := r.Parse(ctx, *opts)
	if err != nil {
		return err
	}
	id, err := pickPerson(idx)
	if err != nil {
		return err
	}
	opts.RootID = id
	return nil
}

// newConvertCmd creates the convert command: full conversion of a GEDCOM
// file into vault notes, an index note, and a family tree canvas.
func newConvertCmd() *cobra.Command {
	opts := &convertOpts{}

	cmd := &cobra.Command{
		Use:   "convert <gedcom-file>",
		Short: "Convert a GEDCOM file into an Obsidian vault",
		Long: `Convert a GEDCOM file into a complete Obsidian vault:
one markdown note per person, an alphabetical index note, and a family
tree diagram on a JSON canvas.

Examples:
  gedvault convert family.ged -o vault/
  gedvault convert family.ged -o vault/ --root @I42@
  gedvault convert family.ged -o vault/ --pick`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			popts, err := opts.pipelineOptions(args[0])
			if err != nil {
				return err
			}
			popts.Notes, popts.Index, popts.Canvas = true, true, true
			popts.Logger = logger

			runner := pipeline.NewRunner(logger)
			if err := opts.resolvePick(ctx, runner, &popts); err != nil {
				return err
			}

			prog := newProgress(logger)
			result, err := runner.Execute(ctx, popts)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			prog.done(fmt.Sprintf("Converted %d people", result.Stats.PersonCount))

			printSuccess("Vault written to %s", opts.output)
			if result.CanvasPath != "" {
				printFile(result.CanvasPath)
				printStats(result.Stats.TreeCount, result.Stats.NodeCount, result.Stats.EdgeCount)
			}
			if result.IndexPath != "" {
				printFile(result.IndexPath)
			}
			printNextStep("Preview the vault", fmt.Sprintf("gedvault serve %s", opts.output))
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
