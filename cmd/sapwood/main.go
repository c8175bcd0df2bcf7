// Package main provides the sapwood CLI: it converts OpenSCAD .csg dumps
// into xcsg markup documents and can evaluate them to triangle meshes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sapwood:", err)
		os.Exit(1)
	}
}
