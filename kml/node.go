package kml

// Attr is one attribute of an element, kept in insertion order.
type Attr struct {
	Name  string
	Value string
}

// Node is an element of the document tree. A node has either children or
// text; text of a node with children is ignored on output.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// NewNode creates an empty element.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// TextNode creates an element holding only text.
func TextNode(name, text string) *Node {
	return &Node{Name: name, Text: text}
}

// SetAttr appends an attribute and returns n.
func (n *Node) SetAttr(name, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Append adds child as the last child of n and returns child.
func (n *Node) Append(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AppendText adds a text-only child element and returns it.
func (n *Node) AppendText(name, text string) *Node {
	return n.Append(TextNode(name, text))
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child with the given name, in order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
