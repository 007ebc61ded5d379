package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jandex/internal/trace"
)

var configPath string

// scanIncludeGlobs and scanExcludeGlobs filter which discovered .class
// entries collectClassFiles keeps, and outputFormat selects "text" or
// "json" rendering in the print command. All three come only from the
// YAML config (applyConfig); there is no command-line flag for them.
var (
	scanIncludeGlobs []string
	scanExcludeGlobs []string
	outputFormat     string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jandex",
		Short: "jandex indexes the annotations, subclasses, and implementors found in compiled Java class files",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an optional YAML scan config file")
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newPrintCmd())

	return cmd
}

func applyConfig(cmd *cobra.Command) {
	if configPath == "" {
		return
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		trace.Warning("could not load config %s: %v", configPath, err)
		return
	}
	if cfg.Mode == "strict" && !cmd.Flags().Changed("strict") {
		_ = cmd.Flags().Set("strict", "true")
	}
	scanIncludeGlobs = cfg.Include
	scanExcludeGlobs = cfg.Exclude
	if cfg.Format != "" {
		outputFormat = cfg.Format
	}
}

// Execute runs the jandex root command, writing any error to stderr
// and returning a nonzero-worthy error to main.
func Execute() error {
	root := newRootCmd()
	cobra.OnInitialize(func() {
		for _, c := range root.Commands() {
			applyConfig(c)
		}
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
