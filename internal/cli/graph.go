package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gedvault/gedvault/pkg/errors"
	"github.com/gedvault/gedvault/pkg/nodelink"
	"github.com/gedvault/gedvault/pkg/pipeline"
	"github.com/gedvault/gedvault/pkg/tree"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	format   string // svg, png, or dot
	output   string // output file path (stdout if empty)
	root     string // root person id
	pick     bool   // interactive root selection
	detailed bool   // include life spans in labels
}

// newGraphCmd creates the graph command: renders the family tree as a
// Graphviz node-link diagram instead of a canvas.
func newGraphCmd() *cobra.Command {
	opts := &graphOpts{}

	cmd := &cobra.Command{
		Use:   "graph <gedcom-file>",
		Short: "Render the family tree as a node-link diagram",
		Long: `Render the family tree rooted at a person as a Graphviz node-link
diagram. Child relations draw as solid arrows, marriages as dashed lines.

Examples:
  gedvault graph family.ged -o tree.svg
  gedvault graph family.ged --format png -o tree.png --root @I42@
  gedvault graph family.ged --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			format := strings.ToLower(opts.format)
			switch format {
			case "svg", "png", "dot":
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, png, dot)", opts.format)
			}

			runner := pipeline.NewRunner(logger)
			popts := pipeline.Options{GedcomPath: args[0], RootID: opts.root, Logger: logger}

			idx, err := runner.Parse(ctx, popts)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			if opts.pick {
				if opts.root != "" {
					return errors.New(errors.ErrCodeInvalidInput, "--root and --pick are mutually exclusive")
				}
				id, err := pickPerson(idx)
				if err != nil {
					return err
				}
				popts.RootID = id
			}
			rootID, err := runner.ResolveRoot(idx, popts)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			prog := newProgress(logger)
			s := tree.Build(idx, rootID)
			dot := nodelink.ToDOT(s, idx, nodelink.Options{Detailed: opts.detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = nodelink.RenderSVG(dot)
			case "png":
				data, err = nodelink.RenderPNG(dot)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			prog.done(fmt.Sprintf("Rendered %d people", s.Len()))

			if opts.output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeWrite, err, "graph %s", opts.output)
			}
			printSuccess("Graph written, rooted at %s", rootID)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: svg, png, or dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.root, "root", "r", "", "root person id (default: first person)")
	cmd.Flags().BoolVarP(&opts.pick, "pick", "p", false, "pick the root person interactively")
	cmd.Flags().BoolVarP(&opts.detailed, "detailed", "d", false, "include life spans in node labels")
	return cmd
}
