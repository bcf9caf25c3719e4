package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/toonkit/toon"
	"github.com/toonkit/toon/stats"
)

var (
	colorCyan  = lipgloss.Color("36")  // teal - labels
	colorGreen = lipgloss.Color("35")  // green - savings
	colorRed   = lipgloss.Color("167") // soft red - regressions

	labelStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Width(6)
	goodStyle  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	badStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// newStatsCmd creates the stats command: report the token and byte
// cost of the TOON rendering against compact JSON.
func newStatsCmd(opts *rootOpts) *cobra.Command {
	var showText bool

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Compare TOON and JSON token cost for a document",
		Long: `Compare TOON and JSON token cost for a JSON document.

Reads JSON from the given file or stdin, renders it both ways, and
reports estimated token and byte counts. Token counts come from a
model-free heuristic; treat them as comparative, not exact.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			data, name, err := readInput(args)
			if err != nil {
				return errors.Wrapf(err, "reading %s", name)
			}
			v, err := toon.FromJSON(data)
			if err != nil {
				return err
			}
			report, err := stats.Compare(v, cfg, stats.HeuristicTokenizer{})
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "%s %6d tokens  %7d bytes\n",
				labelStyle.Render("json"), report.JSON.Tokens, report.JSON.Bytes)
			fmt.Fprintf(out, "%s %6d tokens  %7d bytes\n",
				labelStyle.Render("toon"), report.Toon.Tokens, report.Toon.Bytes)
			fmt.Fprintf(out, "%s %s tokens  %s bytes\n",
				labelStyle.Render("saved"),
				renderSavings(report.TokenSavings()),
				renderSavings(report.ByteSavings()))

			if showText {
				fmt.Fprintf(out, "\n%s\n", report.Toon.Text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showText, "show", false, "also print the TOON rendering")
	return cmd
}

func renderSavings(frac float64) string {
	s := fmt.Sprintf("%+6.1f%%", frac*100)
	if frac >= 0 {
		return goodStyle.Render(s)
	}
	return badStyle.Render(s)
}
