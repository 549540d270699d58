// Package xsd provides a lookup index over an XML schema definition.
// The index answers one question: which node definition goes by a given
// element name. It is read-only after construction and safe for
// concurrent lookups.
package xsd

import "strings"

// Node describes the expected structure of one element: its name, the
// attributes it accepts, and its child elements.
type Node struct {
	Name       string
	Attributes []string
	Children   []*Node
	Parent     *Node
}

// Path returns the names from the root down to this node, joined by "/".
func (n *Node) Path() string {
	var names []string
	for cur := n; cur != nil; cur = cur.Parent {
		names = append(names, cur.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// ChildNamed returns the direct child with the given name, or nil.
func (n *Node) ChildNamed(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Tree is a schema index: a root node plus a by-name lookup table.
//
// A name that occurs at several places in the schema resolves to the
// first definition registered for it. Lookups ignore the ancestor path,
// so recurring names are ambiguous by construction.
type Tree struct {
	root   *Node
	byName map[string]*Node
}

// NewTree indexes the element hierarchy under root.
func NewTree(root *Node) *Tree {
	t := &Tree{
		root:   root,
		byName: make(map[string]*Node),
	}
	t.register(root)
	return t
}

func (t *Tree) register(n *Node) {
	if n == nil {
		return
	}
	if _, seen := t.byName[n.Name]; !seen {
		t.byName[n.Name] = n
	}
	for _, c := range n.Children {
		t.register(c)
	}
}

// Root returns the root node of the schema.
func (t *Tree) Root() *Node {
	return t.root
}

// FindNodeByName returns the node registered under name, or nil when
// the schema defines no such element.
func (t *Tree) FindNodeByName(name string) *Node {
	return t.byName[name]
}
