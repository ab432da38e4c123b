package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gedvault/gedvault/pkg/errors"
	"github.com/gedvault/gedvault/pkg/pipeline"
)

// newCanvasCmd creates the canvas command: generates only the family
// tree canvas, leaving notes and index untouched. Useful for re-rooting
// the diagram inside an already converted vault.
func newCanvasCmd() *cobra.Command {
	opts := &convertOpts{}

	cmd := &cobra.Command{
		Use:   "canvas <gedcom-file>",
		Short: "Generate only the family tree canvas",
		Long: `Generate the family tree canvas for a GEDCOM file without touching
notes or index. Useful for re-rooting the diagram inside an already
converted vault.

Examples:
  gedvault canvas family.ged -o vault/
  gedvault canvas family.ged -o vault/ --root @I42@ --canvas-file "Tree of I42.canvas"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			popts, err := opts.pipelineOptions(args[0])
			if err != nil {
				return err
			}
			popts.Canvas = true
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

			if result.CanvasPath == "" {
				printWarning("No canvas written: nothing could be placed")
				return nil
			}
			prog.done(fmt.Sprintf("Laid out %d trees", result.Stats.TreeCount))

			printSuccess("Canvas written, rooted at %s", result.RootID)
			printFile(result.CanvasPath)
			printStats(result.Stats.TreeCount, result.Stats.NodeCount, result.Stats.EdgeCount)
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
