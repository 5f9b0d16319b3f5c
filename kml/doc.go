// Package kml builds KML 2.2 documents for GPS traces.
//
// This package is organized into:
// - node.go: the in-memory element tree
// - builder.go: document skeleton, style and placemark assembly
// - xml.go: serialization with escaping and two space indentation
//
// A Builder is single use: attach the style, add traces, then call OutputTo
// once. Serialization is done manually for precise control over the output.
package kml
