// Package cli implements the toolkit command line: offline versions of the
// contrast checker, sitemap generator, JSON-LD generator, quiz and document
// outline.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/accessguide/accessguide-backend/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the toolkit command tree.
func NewRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "toolkit",
		Short:        "Accessibility guide tools",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !debug {
				return nil
			}
			l, err := logging.New("development", "debug")
			if err != nil {
				return err
			}
			logging.SetBase(l)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logging.L().Sync()
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")

	cmd.AddCommand(
		contrastCmd(),
		sitemapCmd(),
		structuredDataCmd(),
		quizCmd(),
		outlineCmd(),
	)
	return cmd
}

// readInput reads path, or stdin when path is "-" or empty.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	logging.L().Debug("read input", zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
