package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple outputs)
	formats []string // output formats: "svg", "png", "pdf", "json"
	width   float64  // fallback viewport width when the update has none
	height  float64  // fallback viewport height when the update has none
	scale   float64  // PNG scale factor
	noCache bool     // bypass the artifact cache
	refresh bool     // re-render and overwrite cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [options.json|-]",
		Short: "Render a gauge from host update options",
		Long: `Render a gauge from host update options (JSON with "viewport" and "dataViews").

Reads from stdin when the file is omitted or "-". Without -o the artifacts are
written next to the input, or to gauge.<format> for stdin input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, c.Config.Render.Formats)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			input := stdinArg
			if len(args) == 1 {
				input = args[0]
			}
			update, err := readUpdate(cmd, input)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), input, update, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "viewport width when the update has none")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "viewport height when the update has none")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, update *dataview.UpdateOptions, opts *renderOpts) error {
	logger := c.contextLogger(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions(update, opts.formats)
	if opts.width > 0 {
		popts.Width = opts.width
	}
	if opts.height > 0 {
		popts.Height = opts.height
	}
	if opts.scale > 0 {
		popts.PNGScale = opts.scale
	}
	popts.Refresh = opts.refresh

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	paths := outputPaths(input, opts.output, popts.Formats)
	for _, format := range popts.Formats {
		path := paths[format]
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done("Rendered gauge")

	vm := result.ViewModel
	printSuccess("Gauge rendered")
	printStats(vm.CurrentValue, result.Scene.Circle.StrokeHex, result.CacheInfo.RenderHit)
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps each format to its output file. A single format with -o
// writes exactly that file; several formats use -o as the base name.
func outputPaths(input, output string, formats []string) map[string]string {
	base := output
	if base == "" {
		if input == "" || input == stdinArg {
			base = "gauge"
		} else {
			base = strings.TrimSuffix(input, filepath.Ext(input))
		}
	} else if len(formats) > 1 {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		if output != "" && len(formats) == 1 {
			paths[f] = output
			continue
		}
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
