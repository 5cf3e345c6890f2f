package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/accessguide/accessguide-backend/internal/document"
	"github.com/spf13/cobra"
)

func outlineCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	c := &cobra.Command{
		Use:   "outline",
		Short: "Print the accessibility outline of an HTML document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			o, err := document.Analyze(bytes.NewReader(data))
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), o)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "title: %s\nlang:  %s\n\n", orNone(o.Title), orNone(o.Lang))
			fmt.Fprintln(out, "headings:")
			for _, h := range o.Headings {
				fmt.Fprintf(out, "%sh%d %s\n", strings.Repeat("  ", h.Level), h.Level, h.Text)
			}
			fmt.Fprintln(out, "\nlandmarks:")
			for _, l := range o.Landmarks {
				if l.Label != "" {
					fmt.Fprintf(out, "  %s (%s)\n", l.Role, l.Label)
				} else {
					fmt.Fprintf(out, "  %s\n", l.Role)
				}
			}
			fmt.Fprintf(out, "\n%d images, %d links, %d form controls\n", len(o.Images), len(o.Links), len(o.Controls))
			if len(o.Issues) == 0 {
				fmt.Fprintln(out, "no issues found")
				return nil
			}
			fmt.Fprintf(out, "\n%d issues:\n", len(o.Issues))
			for _, i := range o.Issues {
				fmt.Fprintf(out, "  [%s] %s\n", i.Code, i.Message)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "-", "HTML file; - for stdin")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
