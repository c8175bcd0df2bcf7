package scad

import (
	"strings"
	"testing"

	"github.com/chazu/sapwood/pkg/csg"
)

func lex(t *testing.T, src string) []csg.Record {
	t.Helper()
	records, err := Lex(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	return records
}

func TestLexFlatDocument(t *testing.T) {
	records := lex(t, "cube(size = [2, 3, 4], center = false);\nsphere(r = 1);\n")
	if len(records) != 2 {
		t.Fatalf("record count = %d, want 2", len(records))
	}
	if records[0].Signature != "cube(size=[2,3,4],center=false)" {
		t.Errorf("signature = %q, whitespace should be stripped", records[0].Signature)
	}
	if records[0].Level != 0 || records[1].Level != 0 {
		t.Errorf("levels = %d, %d, want 0, 0", records[0].Level, records[1].Level)
	}
	if records[1].Line != 2 {
		t.Errorf("second record line = %d, want 2", records[1].Line)
	}
}

func TestLexNestedBlocks(t *testing.T) {
	src := `difference() {
	cube(size = 2, center = true);
	group() {
		sphere(r = 1);
	}
}
`
	records := lex(t, src)
	wantLevels := []int{0, 1, 1, 2}
	if len(records) != len(wantLevels) {
		t.Fatalf("record count = %d, want %d", len(records), len(wantLevels))
	}
	for i, want := range wantLevels {
		if records[i].Level != want {
			t.Errorf("record %d level = %d, want %d", i, records[i].Level, want)
		}
	}
}

func TestLexCommentsAndBlanks(t *testing.T) {
	src := `// produced by dump

cube(size = 1, center = false);

// trailing comment
`
	records := lex(t, src)
	if len(records) != 1 {
		t.Fatalf("record count = %d, want 1", len(records))
	}
	if records[0].Line != 3 {
		t.Errorf("record line = %d, want 3", records[0].Line)
	}
}

func TestLexSingleLineBlock(t *testing.T) {
	records := lex(t, "union() { cube(size = 1, center = false); sphere(r = 1); }\n")
	wantLevels := []int{0, 1, 1}
	if len(records) != len(wantLevels) {
		t.Fatalf("record count = %d, want %d", len(records), len(wantLevels))
	}
	for i, want := range wantLevels {
		if records[i].Level != want {
			t.Errorf("record %d level = %d, want %d", i, records[i].Level, want)
		}
	}
}

func TestLexStringsKeepSpaces(t *testing.T) {
	records := lex(t, `text(text = "hello world", size = 10);`)
	if len(records) != 1 {
		t.Fatalf("record count = %d, want 1", len(records))
	}
	if want := `text(text="hello world",size=10)`; records[0].Signature != want {
		t.Errorf("signature = %q, want %q", records[0].Signature, want)
	}
}

func TestLexModifiersStripped(t *testing.T) {
	records := lex(t, "%cube(size = 1, center = false);\n#sphere(r = 1);\n")
	if records[0].Signature != "cube(size=1,center=false)" {
		t.Errorf("signature = %q, modifier should be stripped", records[0].Signature)
	}
	if records[1].Signature != "sphere(r=1)" {
		t.Errorf("signature = %q, modifier should be stripped", records[1].Signature)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unbalanced close", "}\n"},
		{"unclosed block", "union() {\ncube(size = 1, center = false);\n"},
		{"missing terminator", "cube(size = 1, center = false)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Lex(strings.NewReader(tt.src)); err == nil {
				t.Errorf("Lex(%q) should fail", tt.src)
			}
		})
	}
}
