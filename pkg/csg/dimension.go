package csg

import "strings"

// generatorDims maps geometry-generating tags to their intrinsic dimension.
var generatorDims = map[string]int{
	"circle":     2,
	"square":     2,
	"polygon":    2,
	"projection": 2,

	"sphere":         3,
	"cylinder":       3,
	"cube":           3,
	"polyhedron":     3,
	"linear_extrude": 3,
	"rotate_extrude": 3,
}

// unsupportedTags are source constructs the target schema cannot express.
// Hitting one anywhere in the tree is a hard failure.
var unsupportedTags = map[string]string{
	"text":    "'text' is not supported",
	"surface": "'surface' is not supported",
	"import":  "'import' is not supported with this file type",
	"resize":  "'resize' is not supported",
}

// passThroughPrefixes match composite tags whose dimension is defined
// solely by their children.
var passThroughPrefixes = []string{"unio", "diff", "inte", "mink", "offs", "rend", "hull"}

// isPassThrough reports whether a tag inherits its dimension from below.
func isPassThrough(tag string) bool {
	switch tag {
	case "group", "color", "multmatrix":
		return true
	}
	for _, p := range passThroughPrefixes {
		if strings.HasPrefix(tag, p) {
			return true
		}
	}
	return false
}

// Dimension reports whether the node denotes 2-D or 3-D geometry, or 0 when
// the subtree establishes no geometry at all. Generator tags answer
// directly; composite nodes inherit from the first non-dummy child that
// establishes a dimension. Siblings past that child are not consulted in
// this fallback (boolean operators check dimension agreement separately at
// encoding time); that lenience is deliberate and matches the source
// schema's behavior. Nothing is memoized, so repeated calls are stable.
func (n *Node) Dimension() (int, error) {
	tag := n.Tag()
	if d, ok := generatorDims[tag]; ok {
		return d, nil
	}
	if msg, ok := unsupportedTags[tag]; ok {
		return 0, nodeErrorf(n, "%s", msg)
	}
	if len(n.Children) == 0 {
		return 0, nil
	}

	for _, c := range n.Children {
		if c.IsDummy() {
			continue
		}
		ctag := c.Tag()
		var d int
		switch {
		case generatorDims[ctag] != 0:
			d = generatorDims[ctag]
		case isPassThrough(ctag):
			var err error
			if d, err = c.Dimension(); err != nil {
				return 0, err
			}
		default:
			if msg, ok := unsupportedTags[ctag]; ok {
				return 0, nodeErrorf(c, "%s", msg)
			}
		}
		if d > 0 {
			return d, nil
		}
	}
	return 0, nil
}
