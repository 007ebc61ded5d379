package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newPrintCmd() *cobra.Command {
	var strict bool
	var showAnnotations bool
	var showSubclasses bool

	cmd := &cobra.Command{
		Use:   "print <jar-or-directory>",
		Short: "Scan and print the resulting annotation and subclass index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			idx, _, err := runScan(cmd.Context(), path, strict)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if outputFormat == "json" {
				return idx.PrintJSON(out)
			}

			header := color.New(color.FgCyan, color.Bold)

			if showAnnotations || !showSubclasses {
				header.Fprintln(out, "== annotations ==")
				idx.PrintAnnotations(out)
			}
			if showSubclasses || !showAnnotations {
				header.Fprintln(out, "== subclasses ==")
				idx.PrintSubclasses(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "abort on the first malformed class file or duplicate class name")
	cmd.Flags().BoolVar(&showAnnotations, "annotations", false, "print only the annotation dump")
	cmd.Flags().BoolVar(&showSubclasses, "subclasses", false, "print only the subclass dump")
	return cmd
}
