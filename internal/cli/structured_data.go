package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/accessguide/accessguide-backend/internal/structureddata"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func structuredDataCmd() *cobra.Command {
	var (
		file   string
		script bool
	)

	c := &cobra.Command{
		Use:     "structured-data <type>",
		Aliases: []string{"jsonld"},
		Short:   "Generate a schema.org JSON-LD block from a YAML field file",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listTypes(cmd)
			}

			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			fields := map[string]any{}
			if err := yaml.Unmarshal(data, &fields); err != nil {
				return fmt.Errorf("decode fields: %w", err)
			}

			doc, err := structureddata.Build(args[0], fields)
			if err != nil {
				return err
			}

			if script {
				out, err := structureddata.Script(doc)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			out, err := doc.JSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "-", "YAML file with the fields; - for stdin")
	c.Flags().BoolVar(&script, "script", false, "wrap the output in a <script> element")
	return c
}

func listTypes(cmd *cobra.Command) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tREQUIRED\tOPTIONAL")
	for _, t := range structureddata.Types() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Type, strings.Join(t.Required, ","), strings.Join(t.Optional, ","))
	}
	return tw.Flush()
}
