package xcsg

import (
	"github.com/chazu/sapwood/pkg/csg"
	"github.com/chazu/sapwood/pkg/xmltree"
)

// DocumentVersion is the xcsg schema version this encoder emits.
const DocumentVersion = "1.0"

// Convert builds the source tree from lexer records and encodes it as a
// complete xcsg document. The first validation failure aborts the whole
// conversion; no partial document is returned.
func Convert(records []csg.Record) (*xmltree.Document, error) {
	root, err := csg.Build(records)
	if err != nil {
		return nil, err
	}
	doc := xmltree.NewDocument("xcsg")
	doc.Root.AddProperty("version", DocumentVersion)

	enc := NewEncoder(DefaultTagMap())
	if err := enc.Encode(root, doc.Root); err != nil {
		return nil, err
	}
	return doc, nil
}
