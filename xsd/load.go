package xsd

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Load builds a Tree from an XML Schema document. Only the element
// hierarchy is modeled: element names, their attributes, and their
// child elements, recursing through inline complex types and
// sequence/choice/all groups. Validation semantics (types, facets,
// occurrence constraints) are not interpreted.
func Load(r io.Reader) (*Tree, error) {
	var doc schemaDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	if len(doc.Elements) == 0 {
		return nil, fmt.Errorf("schema declares no top-level element")
	}
	root := nodeFromElement(doc.Elements[0], nil)
	return NewTree(root), nil
}

// LoadFile reads and loads a schema from path.
func LoadFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()
	return Load(f)
}

type schemaDoc struct {
	XMLName  xml.Name        `xml:"schema"`
	Elements []schemaElement `xml:"element"`
}

type schemaElement struct {
	Name        string             `xml:"name,attr"`
	ComplexType *schemaComplexType `xml:"complexType"`
}

type schemaComplexType struct {
	Sequence   *schemaGroup      `xml:"sequence"`
	Choice     *schemaGroup      `xml:"choice"`
	All        *schemaGroup      `xml:"all"`
	Attributes []schemaAttribute `xml:"attribute"`
}

type schemaGroup struct {
	Elements []schemaElement `xml:"element"`
	Sequence *schemaGroup    `xml:"sequence"`
	Choice   *schemaGroup    `xml:"choice"`
}

type schemaAttribute struct {
	Name string `xml:"name,attr"`
}

func nodeFromElement(el schemaElement, parent *Node) *Node {
	n := &Node{
		Name:   el.Name,
		Parent: parent,
	}
	if el.ComplexType != nil {
		for _, attr := range el.ComplexType.Attributes {
			n.Attributes = append(n.Attributes, attr.Name)
		}
		for _, group := range []*schemaGroup{el.ComplexType.Sequence, el.ComplexType.Choice, el.ComplexType.All} {
			addGroup(n, group)
		}
	}
	return n
}

func addGroup(parent *Node, group *schemaGroup) {
	if group == nil {
		return
	}
	for _, el := range group.Elements {
		parent.Children = append(parent.Children, nodeFromElement(el, parent))
	}
	addGroup(parent, group.Sequence)
	addGroup(parent, group.Choice)
}
