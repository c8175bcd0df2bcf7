package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chazu/sapwood/pkg/csg"
	"github.com/chazu/sapwood/pkg/eval"
	"github.com/chazu/sapwood/pkg/kernel"
	"github.com/chazu/sapwood/pkg/kernel/sdfx"
	"github.com/chazu/sapwood/pkg/scad"
)

func newMeshCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "mesh <input.csg>",
		Short: "Evaluate a 3-D .csg dump to a binary STL mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMesh(cmd, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input with .stl extension)")
	cmd.Flags().Int("mesh-cells", 0, "marching cubes resolution")
	cmd.Flags().Int("mesh-workers", 0, "concurrent boolean evaluations (0: one per CPU)")
	return cmd
}

func runMesh(cmd *cobra.Command, input, output string) error {
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
	root, err := csg.Build(records)
	if err != nil {
		return err
	}

	k := sdfx.New()
	if cfg.Mesh.Cells > 0 {
		k.MeshCells = cfg.Mesh.Cells
	}
	solid, err := eval.Evaluate(cmd.Context(), root, k, eval.Options{
		Workers: cfg.Mesh.Workers,
		Logger:  slog.Default(),
	})
	if err != nil {
		return err
	}
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return err
	}

	outPath := outputPath(input, output, ".stl")
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := kernel.WriteSTL(out, mesh); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	slog.Info("meshed",
		"input", input,
		"output", outPath,
		"triangles", mesh.TriangleCount(),
		"elapsed", time.Since(start))
	return nil
}
