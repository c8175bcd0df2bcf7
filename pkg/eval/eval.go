// Package eval walks a source tree and evaluates its 3-D geometry into a
// kernel solid, so a document can be previewed or exported as a mesh
// without the downstream geometry pipeline. Children of boolean operators
// are evaluated concurrently through a bounded worker group.
package eval

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/sapwood/pkg/csg"
	"github.com/chazu/sapwood/pkg/kernel"
)

// Options tunes an evaluation. The zero value uses one worker per CPU and
// discards logs.
type Options struct {
	Workers int
	Logger  *slog.Logger
}

// Evaluate computes the solid geometry of the tree rooted at root, which
// must be (or resolve to) 3-D. 2-D documents cannot be meshed.
func Evaluate(ctx context.Context, root *csg.Node, k kernel.Kernel, opts Options) (kernel.Solid, error) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	dim, err := root.Dimension()
	if err != nil {
		return nil, err
	}
	switch dim {
	case 3:
	case 2:
		return nil, fmt.Errorf("document is 2-D; only 3-D trees can be meshed")
	default:
		return nil, fmt.Errorf("document contains no geometry")
	}

	e := &evaluator{k: k, log: opts.Logger, workers: opts.Workers}
	start := time.Now()
	solid, err := e.node(ctx, root)
	if err != nil {
		return nil, err
	}
	if solid == nil {
		return nil, fmt.Errorf("document contains no solid geometry")
	}
	e.log.Debug("evaluated tree", "workers", opts.Workers, "elapsed", time.Since(start))
	return solid, nil
}

type evaluator struct {
	k       kernel.Kernel
	log     *slog.Logger
	workers int
}

// errf builds an evaluation error positioned at the given node.
func errf(n *csg.Node, format string, args ...any) *csg.Error {
	return &csg.Error{
		Line:      n.Line,
		Tag:       n.Tag(),
		Signature: n.Signature,
		Message:   fmt.Sprintf(format, args...),
	}
}

// node evaluates one node's subtree to a solid. Subtrees without geometry
// evaluate to nil.
func (e *evaluator) node(ctx context.Context, n *csg.Node) (kernel.Solid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !n.IsRoot() {
		dim, err := n.Dimension()
		if err != nil {
			return nil, err
		}
		if dim == 0 {
			return nil, nil
		}
	}

	switch n.Tag() {
	case "cube":
		return e.cube(n)
	case "sphere":
		r, err := n.Float("r")
		if err != nil {
			return nil, err
		}
		if r <= 0 {
			return nil, errf(n, "r must be > 0, got %g", r)
		}
		return e.k.Sphere(r), nil
	case "cylinder":
		return e.cylinder(n)
	case "multmatrix":
		m, err := n.MatrixParam()
		if err != nil {
			return nil, err
		}
		child, err := e.unionChildren(ctx, n)
		if err != nil || child == nil {
			return nil, err
		}
		return e.k.Transform(child, m), nil
	case "root", "group", "union", "color", "render":
		return e.unionChildren(ctx, n)
	case "difference":
		return e.difference(ctx, n)
	case "intersection":
		return e.intersection(ctx, n)
	}
	return nil, errf(n, "not supported by the mesh backend")
}

func (e *evaluator) cube(n *csg.Node) (kernel.Solid, error) {
	siz, err := n.Value("size")
	if err != nil {
		return nil, err
	}
	dx, dy, dz := siz.Float(), siz.Float(), siz.Float()
	if siz.Size() > 1 {
		if siz.Size() < 3 {
			return nil, errf(n, "size must have 3 values, got %d", siz.Size())
		}
		dx = siz.Get(0).Float()
		dy = siz.Get(1).Float()
		dz = siz.Get(2).Float()
	}
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, errf(n, "cube dimensions must be > 0, got [%g,%g,%g]", dx, dy, dz)
	}
	return e.k.Cuboid(dx, dy, dz, boolParam(n, "center")), nil
}

func (e *evaluator) cylinder(n *csg.Node) (kernel.Solid, error) {
	h, err := n.Float("h")
	if err != nil {
		return nil, err
	}
	r1, err := n.Float("r1")
	if err != nil {
		return nil, err
	}
	r2, err := n.Float("r2")
	if err != nil {
		return nil, err
	}
	if h <= 0 || r1 < 0 || r2 < 0 || r1+r2 <= 0 {
		return nil, errf(n, "invalid cylinder: h=%g r1=%g r2=%g", h, r1, r2)
	}
	return e.k.Cone(h, r1, r2, boolParam(n, "center")), nil
}

// boolParam reads an optional boolean parameter, defaulting to false.
func boolParam(n *csg.Node, name string) bool {
	v, ok := n.Lookup(name)
	return ok && v.Bool()
}

// children evaluates all children concurrently, bounded by the worker
// limit. The limit applies per operator; recursion nests groups.
func (e *evaluator) children(ctx context.Context, n *csg.Node) ([]kernel.Solid, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	solids := make([]kernel.Solid, len(n.Children))
	for i, c := range n.Children {
		g.Go(func() error {
			s, err := e.node(ctx, c)
			if err != nil {
				return err
			}
			solids[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Drop children that produced no geometry.
	out := solids[:0]
	for _, s := range solids {
		if s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (e *evaluator) unionChildren(ctx context.Context, n *csg.Node) (kernel.Solid, error) {
	solids, err := e.children(ctx, n)
	if err != nil || len(solids) == 0 {
		return nil, err
	}
	acc := solids[0]
	for _, s := range solids[1:] {
		acc = e.k.Union(acc, s)
	}
	return acc, nil
}

func (e *evaluator) difference(ctx context.Context, n *csg.Node) (kernel.Solid, error) {
	solids, err := e.children(ctx, n)
	if err != nil || len(solids) == 0 {
		return nil, err
	}
	acc := solids[0]
	for _, s := range solids[1:] {
		acc = e.k.Difference(acc, s)
	}
	return acc, nil
}

func (e *evaluator) intersection(ctx context.Context, n *csg.Node) (kernel.Solid, error) {
	solids, err := e.children(ctx, n)
	if err != nil || len(solids) == 0 {
		return nil, err
	}
	acc := solids[0]
	for _, s := range solids[1:] {
		acc = e.k.Intersection(acc, s)
	}
	return acc, nil
}
