package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// listColumns is how many profile names go on one row of plain output.
const listColumns = 6

// listCommand creates the list command for browsing the profile database.
func (c *CLI) listCommand() *cobra.Command {
	var (
		pick    bool
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the airfoil profiles available in the UIUC database",
		Long: `List the airfoil profiles available in the UIUC database.

The listing is fetched once and cached locally. Use --pick for an
interactive picker that suggests the matching mesh command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newDatabaseClient(noCache)

			spinner := newSpinnerWithContext(cmd.Context(), "Fetching profile listing...")
			spinner.Start()
			names, err := client.ListNames(cmd.Context(), refresh)
			if err != nil {
				spinner.StopWithError("Listing failed")
				return err
			}
			spinner.Stop()

			if len(names) == 0 {
				printWarning("The database listing came back empty; try --refresh")
				return nil
			}

			if pick {
				return pickProfile(names)
			}

			printNames(names)
			printNewline()
			printDetail("%d profiles", len(names))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "pick a profile interactively")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the listing cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// printNames prints names in fixed-width columns.
func printNames(names []string) {
	width := 0
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}

	var row strings.Builder
	for i, n := range names {
		row.WriteString(n)
		row.WriteString(strings.Repeat(" ", width-len(n)+2))
		if (i+1)%listColumns == 0 || i == len(names)-1 {
			fmt.Println(StyleValue.Render(strings.TrimRight(row.String(), " ")))
			row.Reset()
		}
	}
}

// pickProfile runs the interactive picker and suggests the mesh command for
// the selection.
func pickProfile(names []string) error {
	model := NewNameListModel(names)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	m, ok := final.(NameListModel)
	if !ok || m.Selected == "" {
		printInfo("No profile selected")
		return nil
	}

	printSuccess("Selected %s", m.Selected)
	printNextStep("Generate a mesh", fmt.Sprintf("%s mesh %s", appName, m.Selected))
	return nil
}
