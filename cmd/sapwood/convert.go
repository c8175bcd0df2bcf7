package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chazu/sapwood/pkg/scad"
	"github.com/chazu/sapwood/pkg/xcsg"
)

func newConvertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <input.csg>",
		Short: "Convert a .csg dump to an xcsg document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input with .xcsg extension)")
	return cmd
}

// outputPath derives the output file name from the input when no explicit
// path is given.
func outputPath(input, explicit, ext string) string {
	if explicit != "" {
		return explicit
	}
	return strings.TrimSuffix(input, ".csg") + ext
}

func runConvert(input, output string) error {
	start := time.Now()

	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	records, err := scad.Lex(in)
	if err != nil {
		return err
	}
	doc, err := xcsg.Convert(records)
	if err != nil {
		return err
	}

	outPath := outputPath(input, output, ".xcsg")
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := doc.Write(out); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	slog.Info("converted",
		"input", input,
		"output", outPath,
		"records", len(records),
		"elapsed", time.Since(start))
	return nil
}
