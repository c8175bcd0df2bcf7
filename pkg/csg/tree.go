package csg

// Record is one (signature, level, line) unit produced by the upstream
// lexer. Records arrive in document order; Level encodes nesting depth
// starting at 0 for top-level calls.
type Record struct {
	Signature string
	Level     int
	Line      int
}

// Build reconstructs the node tree from the flat record stream. Records at
// level parent+1 attach as direct children; a record nesting deeper than
// one level below its parent is a structural error in the input.
func Build(records []Record) (*Node, error) {
	root := newRoot()
	idx := 0
	if err := root.attach(records, &idx); err != nil {
		return nil, err
	}
	if idx < len(records) {
		r := records[idx]
		return nil, &Error{
			Line:      r.Line,
			Signature: r.Signature,
			Message:   "malformed nesting: record is not a child of any open node",
		}
	}
	return root, nil
}

// attach consumes records that belong to this node's subtree, advancing
// idx. It returns control to the caller at the first record that is not a
// descendant (a shallower level ends the subtree).
func (n *Node) attach(records []Record, idx *int) error {
	for *idx < len(records) {
		r := records[*idx]
		switch {
		case r.Level == n.Level+1:
			child := NewNode(r.Level, r.Line, r.Signature)
			n.Children = append(n.Children, child)
			*idx++
			if err := child.attach(records, idx); err != nil {
				return err
			}
		case r.Level > n.Level+1:
			return &Error{
				Line:      r.Line,
				Signature: r.Signature,
				Message:   "malformed nesting: level jumps deeper than one",
			}
		default:
			return nil
		}
	}
	return nil
}
