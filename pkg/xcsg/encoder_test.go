package xcsg

import (
	"strings"
	"testing"

	"github.com/chazu/sapwood/pkg/csg"
	"github.com/chazu/sapwood/pkg/xmltree"
)

// convertRecords runs the full conversion and returns the document root.
func convertRecords(t *testing.T, records []csg.Record) *xmltree.Node {
	t.Helper()
	doc, err := Convert(records)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	return doc.Root
}

// findTag returns the first node with the given tag, depth-first.
func findTag(n *xmltree.Node, tag string) *xmltree.Node {
	if n.Tag == tag {
		return n
	}
	for _, c := range n.Children {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// prop returns the named property value, or "" when absent.
func prop(n *xmltree.Node, name string) string {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

func TestConvertCube(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "cube(size=[2,3,4],center=true)", Level: 0, Line: 1},
	})

	if root.Tag != "xcsg" || prop(root, "version") != "1.0" {
		t.Fatalf("document root = %s version %q", root.Tag, prop(root, "version"))
	}
	union := findTag(root, "union3d")
	if union == nil {
		t.Fatal("top-level shapes should be wrapped in union3d")
	}
	cuboid := findTag(union, "cuboid")
	if cuboid == nil {
		t.Fatal("cube should encode as cuboid")
	}
	for _, tt := range []struct{ name, want string }{
		{"dx", "2"}, {"dy", "3"}, {"dz", "4"}, {"center", "true"},
	} {
		if got := prop(cuboid, tt.name); got != tt.want {
			t.Errorf("cuboid %s = %q, want %q", tt.name, got, tt.want)
		}
	}
	if findTag(cuboid, "tmatrix") != nil {
		t.Error("plain cube should carry no transform block")
	}
}

func TestConvertScalarCubeSize(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "cube(size=5,center=false)", Level: 0, Line: 1},
	})
	cuboid := findTag(root, "cuboid")
	if cuboid == nil {
		t.Fatal("no cuboid in output")
	}
	for _, name := range []string{"dx", "dy", "dz"} {
		if got := prop(cuboid, name); got != "5" {
			t.Errorf("%s = %q, want 5", name, got)
		}
	}
}

func TestConvertShortSizeVectorFails(t *testing.T) {
	_, err := Convert([]csg.Record{
		{Signature: "cube(size=[2,3],center=false)", Level: 0, Line: 1},
	})
	if err == nil {
		t.Fatal("cube with a 2-element size vector should fail")
	}
	cerr, ok := err.(*csg.Error)
	if !ok {
		t.Fatalf("error type = %T, want *csg.Error", err)
	}
	if !strings.Contains(cerr.Message, "3 values") {
		t.Errorf("error = %v, want a size element-count message", err)
	}
}

func TestConvertEmptyDocument(t *testing.T) {
	root := convertRecords(t, nil)
	union := findTag(root, "union3d")
	if union == nil {
		t.Fatal("empty input should yield an empty union3d")
	}
	if len(union.Children) != 0 {
		t.Errorf("union3d children = %d, want 0", len(union.Children))
	}
}

func TestConvertTwoDimensionalRoot(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "circle(r=3)", Level: 0, Line: 1},
	})
	if findTag(root, "union2d") == nil {
		t.Error("a 2-D document should be wrapped in union2d")
	}
	circle := findTag(root, "circle")
	if circle == nil || prop(circle, "r") != "3" {
		t.Errorf("circle missing or wrong radius")
	}
}

func TestFixTagResolution(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "union()", Level: 0, Line: 1},
		{Signature: "square(size=[1,2],center=false)", Level: 1, Line: 2},
		{Signature: "circle(r=1)", Level: 1, Line: 3},
	})
	if findTag(root, "union2d") == nil {
		t.Error("union over 2-D children should resolve to union2d")
	}
	if rect := findTag(root, "rectangle"); rect == nil {
		t.Error("square should encode as rectangle")
	}
}

func TestFixTagConcretePassThrough(t *testing.T) {
	e := NewEncoder(DefaultTagMap())
	n := csg.NewNode(0, 1, "sphere(r=1)")
	got, err := e.fixTag(n, "sphere")
	if err != nil {
		t.Fatalf("fixTag: %v", err)
	}
	if got != "sphere" {
		t.Errorf("fixTag(sphere) = %q, want sphere", got)
	}
}

func TestSingleChildDifferenceDegrades(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "difference()", Level: 0, Line: 1},
		{Signature: "cube(size=1,center=false)", Level: 1, Line: 2},
	})
	if findTag(root, "difference3d") != nil {
		t.Error("single-child difference should not emit difference3d")
	}
	// The degraded node plus the document wrapper.
	unions := 0
	var count func(n *xmltree.Node)
	count = func(n *xmltree.Node) {
		if n.Tag == "union3d" {
			unions++
		}
		for _, c := range n.Children {
			count(c)
		}
	}
	count(root)
	if unions != 2 {
		t.Errorf("union3d count = %d, want 2", unions)
	}
}

func TestDifference(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "difference()", Level: 0, Line: 1},
		{Signature: "cube(size=2,center=true)", Level: 1, Line: 2},
		{Signature: "sphere(r=1)", Level: 1, Line: 3},
	})
	diff := findTag(root, "difference3d")
	if diff == nil {
		t.Fatal("no difference3d in output")
	}
	if len(diff.Children) != 2 {
		t.Errorf("difference3d children = %d, want 2", len(diff.Children))
	}
}

func TestMixedDimensionChildrenFail(t *testing.T) {
	_, err := Convert([]csg.Record{
		{Signature: "union()", Level: 0, Line: 1},
		{Signature: "cube(size=1,center=false)", Level: 1, Line: 2},
		{Signature: "circle(r=1)", Level: 1, Line: 3},
	})
	if err == nil {
		t.Fatal("mixed 2-D/3-D children should fail")
	}
	if !strings.Contains(err.Error(), "mixed dimension") {
		t.Errorf("error = %v, want mixed dimension message", err)
	}
}

func TestUnmappedTagFails(t *testing.T) {
	_, err := Convert([]csg.Record{
		{Signature: "frobnicate()", Level: 0, Line: 1},
		{Signature: "cube(size=1,center=false)", Level: 1, Line: 2},
	})
	if err == nil {
		t.Fatal("unmapped tag should fail")
	}
	cerr, ok := err.(*csg.Error)
	if !ok {
		t.Fatalf("error type = %T, want *csg.Error", err)
	}
	if cerr.Tag != "frobnicate" || cerr.Line != 1 {
		t.Errorf("error context = tag %q line %d", cerr.Tag, cerr.Line)
	}
}

func TestUnsupportedSourceTagFails(t *testing.T) {
	_, err := Convert([]csg.Record{
		{Signature: `text(text="hi")`, Level: 0, Line: 4},
	})
	if err == nil {
		t.Fatal("text should be rejected")
	}
}

func TestConeValidation(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "cylinder(h=2,r1=0,r2=1,center=false)", Level: 0, Line: 1},
	})
	cone := findTag(root, "cone")
	if cone == nil {
		t.Fatal("cylinder should encode as cone")
	}
	if prop(cone, "r1") != "0" || prop(cone, "r2") != "1" {
		t.Errorf("cone radii = r1 %q r2 %q", prop(cone, "r1"), prop(cone, "r2"))
	}

	_, err := Convert([]csg.Record{
		{Signature: "cylinder(h=2,r1=0,r2=0,center=false)", Level: 0, Line: 1},
	})
	if err == nil {
		t.Fatal("cylinder with both radii zero should fail")
	}
}

func TestPolygonPathOrder(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "polygon(points=[[0,0],[4,0],[4,3]],paths=[[2,0,1]])", Level: 0, Line: 1},
	})
	vertices := findTag(root, "vertices")
	if vertices == nil {
		t.Fatal("no vertices in output")
	}
	if len(vertices.Children) != 3 {
		t.Fatalf("vertex count = %d, want 3", len(vertices.Children))
	}
	// Path index 2 names point [4,3], so it comes first.
	first := vertices.Children[0]
	if prop(first, "x") != "4" || prop(first, "y") != "3" {
		t.Errorf("first vertex = (%s,%s), want (4,3)", prop(first, "x"), prop(first, "y"))
	}
}

func TestPolygonWithHolesFails(t *testing.T) {
	_, err := Convert([]csg.Record{
		{Signature: "polygon(points=[[0,0],[4,0],[4,3],[1,1],[2,1],[2,2]],paths=[[0,1,2],[3,4,5]])", Level: 0, Line: 1},
	})
	if err == nil {
		t.Fatal("polygon with a hole path should fail")
	}
	if !strings.Contains(err.Error(), "hole") {
		t.Errorf("error = %v, want hole message", err)
	}
}

func TestOffsetRounding(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "offset(r=1.5)", Level: 0, Line: 1},
		{Signature: "circle(r=3)", Level: 1, Line: 2},
	})
	off := findTag(root, "offset2d")
	if off == nil {
		t.Fatal("no offset2d in output")
	}
	if prop(off, "delta") != "1.5" || prop(off, "round") != "true" {
		t.Errorf("offset r form: delta %q round %q", prop(off, "delta"), prop(off, "round"))
	}

	root = convertRecords(t, []csg.Record{
		{Signature: "offset(delta=2)", Level: 0, Line: 1},
		{Signature: "circle(r=3)", Level: 1, Line: 2},
	})
	off = findTag(root, "offset2d")
	if prop(off, "round") != "false" {
		t.Errorf("offset delta form: round = %q, want false", prop(off, "round"))
	}

	_, err := Convert([]csg.Record{
		{Signature: "offset(chamfer=false)", Level: 0, Line: 1},
		{Signature: "circle(r=3)", Level: 1, Line: 2},
	})
	if err == nil {
		t.Fatal("offset without r or delta should fail")
	}
}

func TestPolyhedronFaceWindingReversed(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "polyhedron(points=[[0,0,0],[1,0,0],[0,1,0],[0,0,1]],faces=[[0,1,2],[0,2,3],[0,3,1],[1,3,2]])", Level: 0, Line: 1},
	})
	faces := findTag(root, "faces")
	if faces == nil {
		t.Fatal("no faces in output")
	}
	if len(faces.Children) != 4 {
		t.Fatalf("face count = %d, want 4", len(faces.Children))
	}
	first := faces.Children[0]
	want := []string{"2", "1", "0"}
	if len(first.Children) != 3 {
		t.Fatalf("face vertex count = %d, want 3", len(first.Children))
	}
	for i, fv := range first.Children {
		if got := prop(fv, "index"); got != want[i] {
			t.Errorf("fv %d index = %q, want %q", i, got, want[i])
		}
	}
}

func TestPolyhedronTooFewPoints(t *testing.T) {
	_, err := Convert([]csg.Record{
		{Signature: "polyhedron(points=[[0,0,0],[1,0,0],[0,1,0]],faces=[[0,1,2]])", Level: 0, Line: 1},
	})
	if err == nil {
		t.Fatal("polyhedron with 3 points should fail")
	}
}

func TestProjectionCut(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "projection(cut=true)", Level: 0, Line: 1},
		{Signature: "sphere(r=5)", Level: 1, Line: 2},
	})
	proj := findTag(root, "projection2d")
	if proj == nil {
		t.Fatal("no projection2d in output")
	}
	inter := findTag(proj, "intersection3d")
	if inter == nil {
		t.Fatal("cut projection should wrap children in intersection3d")
	}
	slab := inter.Children[0]
	if slab.Tag != "cuboid" || prop(slab, "dz") != "0.0001" {
		t.Errorf("slab = %s dz %q, want cuboid dz 0.0001", slab.Tag, prop(slab, "dz"))
	}
	if findTag(inter, "sphere") == nil {
		t.Error("children should attach under the intersection")
	}
}

func TestProjectionNoCut(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "projection(cut=false)", Level: 0, Line: 1},
		{Signature: "sphere(r=5)", Level: 1, Line: 2},
	})
	proj := findTag(root, "projection2d")
	if proj == nil {
		t.Fatal("no projection2d in output")
	}
	if findTag(proj, "intersection3d") != nil {
		t.Error("non-cut projection should not introduce an intersection")
	}
	if findTag(proj, "sphere") == nil {
		t.Error("children should attach directly under the projection")
	}
}

func TestDummySubtreeSkipped(t *testing.T) {
	root := convertRecords(t, []csg.Record{
		{Signature: "group()", Level: 0, Line: 1},
		{Signature: "group()", Level: 1, Line: 2},
		{Signature: "sphere(r=1)", Level: 0, Line: 3},
	})
	union := findTag(root, "union3d")
	if union == nil {
		t.Fatal("no union3d wrapper")
	}
	if len(union.Children) != 1 || union.Children[0].Tag != "sphere" {
		t.Errorf("dummy group should vanish; union children = %d", len(union.Children))
	}
}
