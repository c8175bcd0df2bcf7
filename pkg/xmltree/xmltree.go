// Package xmltree is a minimal tagged-tree builder with XML serialization.
// Shape encoders append children and properties top-down and never read the
// tree back; properties serialize as attributes in insertion order.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// Property is one named attribute on a Node.
type Property struct {
	Name  string
	Value string
}

// Node is one element of the output tree.
type Node struct {
	Tag        string
	Properties []Property
	Children   []*Node
}

// New returns a free-standing node with the given tag.
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// AddChild appends a new child element and returns it.
func (n *Node) AddChild(tag string) *Node {
	c := &Node{Tag: tag}
	n.Children = append(n.Children, c)
	return c
}

// AddProperty appends a named attribute. Numeric and boolean values are
// stringified at this boundary; the encoders keep typed values internally.
func (n *Node) AddProperty(name string, value any) {
	n.Properties = append(n.Properties, Property{Name: name, Value: formatValue(value)})
}

// formatValue renders a property value as attribute text.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// MarshalXML implements xml.Marshaler, preserving property order.
func (n *Node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, p := range n.Properties {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: p.Name}, Value: p.Value})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.MarshalXML(e, start); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Document is a complete markup document with a single root element.
type Document struct {
	Root *Node
}

// NewDocument returns a document rooted at a new element with the given tag.
func NewDocument(tag string) *Document {
	return &Document{Root: New(tag)}
}

// Write serializes the document with an XML header and two-space indent.
func (d *Document) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d.Root); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
