package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/accessguide/accessguide-backend/internal/sitemap/domain"
	"github.com/accessguide/accessguide-backend/internal/sitemap/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// sitemapFile is the YAML input of "sitemap generate".
type sitemapFile struct {
	Defaults domain.Defaults `yaml:"defaults,omitempty"`
	Entries  []domain.Entry  `yaml:"entries,omitempty"`
	URLs     string          `yaml:"urls,omitempty"`
}

func sitemapCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate and inspect sitemap XML",
	}
	c.AddCommand(sitemapGenerateCmd(), sitemapParseCmd())
	return c
}

func sitemapGenerateCmd() *cobra.Command {
	var (
		file       string
		output     string
		changefreq string
		priority   float64
		lastmod    string
	)

	c := &cobra.Command{
		Use:   "generate",
		Short: "Build sitemap XML from a YAML entry file or a plain URL list",
		Long: `Input is either YAML with "defaults", "entries" and "urls" keys
(.yaml/.yml files) or a newline separated list of URLs (anything else, or stdin).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			in := service.Input{}
			switch strings.ToLower(filepath.Ext(file)) {
			case ".yaml", ".yml":
				var f sitemapFile
				if err := yaml.Unmarshal(data, &f); err != nil {
					return fmt.Errorf("decode %s: %w", file, err)
				}
				in.Entries, in.URLs, in.Defaults = f.Entries, f.URLs, f.Defaults
			default:
				in.URLs = string(data)
			}

			if cmd.Flags().Changed("changefreq") {
				in.Defaults.ChangeFreq = domain.ChangeFreq(changefreq)
			}
			if cmd.Flags().Changed("priority") {
				in.Defaults.Priority = &priority
			}
			if cmd.Flags().Changed("lastmod") {
				in.Defaults.LastMod = lastmod
			}

			xml, count, err := service.NewSitemapService(nil, nil).Generate(in)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, output, xml); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d urls\n", count)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "-", "entries file (.yaml) or URL list; - for stdin")
	c.Flags().StringVarP(&output, "output", "o", "", "write XML to this file instead of stdout")
	c.Flags().StringVar(&changefreq, "changefreq", "", "default changefreq")
	c.Flags().Float64Var(&priority, "priority", 0.5, "default priority")
	c.Flags().StringVar(&lastmod, "lastmod", "", "default lastmod (YYYY-MM-DD)")
	return c
}

func sitemapParseCmd() *cobra.Command {
	var (
		file   string
		asYAML bool
	)

	c := &cobra.Command{
		Use:   "parse",
		Short: "Read sitemap XML back into entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			entries, err := service.NewSitemapService(nil, nil).Parse(data)
			if err != nil {
				return err
			}
			if asYAML {
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(sitemapFile{Entries: entries})
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "-", "sitemap XML file; - for stdin")
	c.Flags().BoolVar(&asYAML, "yaml", false, "print YAML usable as generate input")
	return c
}
