package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/pipeline"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [options.json|-]",
		Short: "Scrub the gauge value and watch the stroke color",
		Long: `Open an interactive preview of the stroke color.

Without a file the configured defaults are used. Arrow keys move the current
value; the swatch and hex follow the min/mid/max interpolation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := c.previewViewModel(cmd, args)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewPreviewModel(vm), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(PreviewModel); ok {
				printKeyValue("value", dataview.FormatNumber(m.VM.CurrentValue))
				printKeyValue("stroke", swatch(m.Stroke().Hex())+" "+m.Stroke().Hex())
			}
			return nil
		},
	}
}

func (c *CLI) previewViewModel(cmd *cobra.Command, args []string) (settings.ViewModel, error) {
	if len(args) == 0 {
		return c.Config.Defaults.ViewModel(), nil
	}
	update, err := readUpdate(cmd, args[0])
	if err != nil {
		return settings.ViewModel{}, err
	}
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	vm, _, err := runner.Resolve(cmd.Context(), c.pipelineOptions(update, nil))
	return vm, err
}
