package kml

import (
	"io"
	"strings"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// WriteXML renders n and its descendants, one element per line, indenting
// each level by indent.
func (n *Node) WriteXML(w io.Writer, indent string) error {
	var b strings.Builder
	writeNode(&b, n, indent, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

// renderDocument returns the declaration followed by the tree.
func renderDocument(root *Node, indent string) []byte {
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	b.WriteString("\n")
	writeNode(&b, root, indent, 0)
	return []byte(b.String())
}

func writeNode(b *strings.Builder, n *Node, indent string, depth int) {
	pad := strings.Repeat(indent, depth)
	b.WriteString(pad)
	b.WriteString("<")
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString("=\"")
		b.WriteString(xmlEscape(a.Value))
		b.WriteString("\"")
	}

	switch {
	case len(n.Children) > 0:
		b.WriteString(">\n")
		for _, c := range n.Children {
			writeNode(b, c, indent, depth+1)
		}
		b.WriteString(pad)
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteString(">\n")
	case n.Text != "":
		b.WriteString(">")
		b.WriteString(xmlEscape(n.Text))
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteString(">\n")
	default:
		b.WriteString("/>\n")
	}
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return escaper.Replace(s)
}
