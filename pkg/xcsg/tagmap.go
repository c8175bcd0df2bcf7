// Package xcsg maps an OpenSCAD-style source tree onto the xcsg schema and
// emits it as a markup document. Each source tag resolves through a mapping
// table to a target tag (dimension-polymorphic templates end in '*'), then
// a per-tag encoder validates parameters and writes properties, children
// and transform blocks.
package xcsg

// TagMap maps source tags to target-tag templates. A template ending in
// '*' must be resolved to a 2d or 3d concrete tag once the node's
// dimension is known. The map is built once and treated as read-only.
type TagMap map[string]string

// DefaultTagMap returns the standard OpenSCAD to xcsg mapping.
func DefaultTagMap() TagMap {
	return TagMap{
		//  openscad           xcsg
		"cube":       "cuboid",
		"cylinder":   "cone",
		"polyhedron": "polyhedron",
		"sphere":     "sphere",

		// linear_extrude maps to sweep so that non-zero twist is expressible.
		"linear_extrude": "sweep",
		"rotate_extrude": "rotate_extrude",

		"group":        "union*",
		"union":        "union*",
		"color":        "union*",
		"multmatrix":   "union*",
		"render":       "union*",
		"difference":   "difference*",
		"intersection": "intersection*",
		"hull":         "hull*",
		"minkowski":    "minkowski*",

		"circle":     "circle",
		"polygon":    "polygon",
		"square":     "rectangle",
		"offset":     "offset2d",
		"projection": "projection2d",

		// Present for completeness; the dimension resolver rejects these
		// before the mapping is ever consulted.
		"import":  "N/A",
		"surface": "N/A",
		"text":    "N/A",
		"resize":  "N/A",
	}
}
