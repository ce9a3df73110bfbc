package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/settings"
	"github.com/matzehuels/ringgauge/pkg/visual"
)

// enumerateCommand creates the enumerate command, which prints the
// resolved settings groups the way a host property pane would see them.
func (c *CLI) enumerateCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "enumerate <options.json|-> [object...]",
		Short: "Print the resolved settings groups",
		Long: fmt.Sprintf(`Print the resolved settings groups for an update.

Objects default to all groups: %s.`, strings.Join(settings.ObjectNames(), ", ")),
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}
			return settings.ObjectNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			update, err := readUpdate(cmd, args[0])
			if err != nil {
				return err
			}
			objects := args[1:]
			if len(objects) == 0 {
				objects = settings.ObjectNames()
			}

			groups, err := c.enumerate(cmd, update, objects)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(groups)
			}
			for _, name := range objects {
				instances := groups[name]
				if len(instances) == 0 {
					printWarning("No settings group %q", name)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render(name))
				fmt.Fprintln(cmd.OutOrStdout(), instanceTable(instances[0]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print instances as JSON")
	return cmd
}

// enumerate runs the update through a Visual and collects the instances of
// each named group.
func (c *CLI) enumerate(cmd *cobra.Command, update *dataview.UpdateOptions, objects []string) (map[string][]settings.Instance, error) {
	opts := c.pipelineOptions(update, nil)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	v := visual.New(visual.NewSVGSurface(), visual.WithDefaults(*opts.Defaults))
	defer v.Destroy()
	if err := v.Update(cmd.Context(), opts.EffectiveUpdate()); err != nil {
		return nil, err
	}

	groups := make(map[string][]settings.Instance, len(objects))
	for _, name := range objects {
		groups[name] = v.EnumerateObjectInstances(name)
	}
	return groups, nil
}

// instanceTable renders one instance's properties in display order.
func instanceTable(inst settings.Instance) string {
	var rows [][]string
	for _, prop := range settings.PropertyNames(inst.ObjectName) {
		rows = append(rows, []string{prop, formatProperty(inst.Properties[prop])})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Property", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func formatProperty(v any) string {
	switch p := v.(type) {
	case dataview.Fill:
		return swatch(p.Solid.Color) + " " + p.Solid.Color
	case float64:
		return dataview.FormatNumber(p)
	case string:
		return p
	}
	return fmt.Sprint(v)
}
