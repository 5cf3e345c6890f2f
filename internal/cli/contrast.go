package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/accessguide/accessguide-backend/internal/contrast"
	"github.com/spf13/cobra"
)

func contrastCmd() *cobra.Command {
	var (
		asJSON  bool
		suggest string
	)

	c := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Check the WCAG contrast ratio of two hex colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, bg, err := contrast.ParsePair(args[0], args[1])
			if err != nil {
				return err
			}
			res := contrast.EvaluateRGB(fg, bg)

			var sug *contrast.Suggestion
			if suggest != "" {
				s, err := contrast.Suggest(fg, bg, contrast.Level(suggest))
				if err != nil {
					return err
				}
				sug = &s
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if sug != nil {
					return printJSON(out, sug)
				}
				return printJSON(out, res)
			}

			fmt.Fprintf(out, "%s on %s: %s\n", res.Foreground, res.Background, res.RatioDisplay)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, l := range contrast.AllLevels {
				threshold, _ := l.Threshold()
				verdict := "fail"
				if res.Levels.Passes(l) {
					verdict = "pass"
				}
				fmt.Fprintf(tw, "%s\t%.1f:1\t%s\n", l, threshold, verdict)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if sug != nil {
				switch {
				case sug.Passes && !sug.Changed:
					fmt.Fprintf(out, "already meets %s\n", sug.Level)
				case sug.Passes:
					fmt.Fprintf(out, "suggested foreground for %s: %s (%s)\n", sug.Level, sug.Foreground, contrast.FormatRatio(sug.Ratio))
				default:
					fmt.Fprintf(out, "no foreground meets %s on this background\n", sug.Level)
				}
			}
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	c.Flags().StringVar(&suggest, "suggest", "", "suggest a foreground meeting this level (normal_aa, normal_aaa, large_aa, large_aaa, ui_aa)")
	return c
}
