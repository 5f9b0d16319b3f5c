package kml

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/servalproject/dataman/errs"
	"github.com/servalproject/dataman/style"
	"github.com/servalproject/dataman/trace"
	"github.com/servalproject/dataman/utils"
)

// Fixed document metadata.
const (
	NamespaceKML    = "http://www.opengis.net/kml/2.2"
	NamespaceAtom   = "http://www.w3.org/2005/Atom"
	NamespaceGx     = "http://www.google.com/kml/ext/2.2"
	NamespaceXSI    = "http://www.w3.org/2001/XMLSchema-instance"
	SchemaLocation  = "http://www.opengis.net/kml/2.2 http://schemas.opengis.net/kml/2.2.0/ogckml22.xsd"
	AuthorName      = "Serval Maps Data Manipulator"
	AuthorLink      = "http://servalproject.org"
	StyleID         = "gpsTraceStyle"
	StyleURL        = "#" + StyleID
	Indent          = "  "
	AltitudeMode    = "clampToGround"
	tessellateValue = "1"
)

// Builder accumulates a style and traces into one KML document.
type Builder struct {
	root     *Node
	doc      *Node
	hasStyle bool
	written  bool
}

// NewBuilder creates the document skeleton: the kml root with its
// namespaces, a Document, and the atom author and link blocks.
func NewBuilder() *Builder {
	root := NewNode("kml").
		SetAttr("xmlns", NamespaceKML).
		SetAttr("xmlns:atom", NamespaceAtom).
		SetAttr("xmlns:gx", NamespaceGx).
		SetAttr("xmlns:xsi", NamespaceXSI).
		SetAttr("xsi:schemaLocation", SchemaLocation)

	doc := root.Append(NewNode("Document"))
	author := doc.Append(NewNode("atom:author"))
	author.AppendText("atom:name", AuthorName)
	doc.Append(NewNode("atom:link")).SetAttr("href", AuthorLink)

	return &Builder{root: root, doc: doc}
}

// Document returns the root of the tree built so far.
func (b *Builder) Document() *Node { return b.root }

// HasStyle reports whether a style block was attached.
func (b *Builder) HasStyle() bool { return b.hasStyle }

// SetStyle attaches the line style block. Only the first non-nil style is
// used; it reports whether ls was attached.
func (b *Builder) SetStyle(ls *style.LineStyle) bool {
	if ls == nil || b.hasStyle {
		return false
	}

	st := NewNode("Style").SetAttr("id", StyleID)
	line := st.Append(NewNode("LineStyle"))
	if ls.Colour != "" {
		line.AppendText("color", ls.Colour)
	}
	line.AppendText("width", strconv.Itoa(ls.Width))

	b.doc.Append(st)
	b.hasStyle = true
	return true
}

// AddTrace appends one Placemark whose LineString follows every point of t.
func (b *Builder) AddTrace(t trace.Trace) error {
	if len(t) == 0 {
		return errs.E("kml.addTrace", errs.InvalidArgument, "the trace must contain at least one element", nil)
	}

	pm := b.placemark()
	pm.Append(lineString(t))
	b.doc.Append(pm)
	return nil
}

// AddTraceWithTime appends one Placemark per segment of t, each with a
// TimeSpan built from the local times of the segment's end points. A point
// without a zone leaves its bound out. Nothing is appended on error.
func (b *Builder) AddTraceWithTime(t trace.Trace) error {
	if len(t) == 0 {
		return errs.E("kml.addTraceWithTime", errs.InvalidArgument, "the trace must contain at least one element", nil)
	}

	segs := t.Segments()
	placemarks := make([]*Node, 0, len(segs))
	for _, seg := range segs {
		span, err := timeSpan(seg)
		if err != nil {
			return err
		}
		pm := NewNode("Placemark")
		if span != nil {
			pm.Append(span)
		}
		if b.hasStyle {
			pm.AppendText("styleUrl", StyleURL)
		}
		pm.Append(lineString(seg.Points))
		placemarks = append(placemarks, pm)
	}

	for _, pm := range placemarks {
		b.doc.Append(pm)
	}
	return nil
}

// OutputTo serializes the document with an XML declaration and two space
// indentation. The document is rendered in memory before anything reaches w.
func (b *Builder) OutputTo(w io.Writer) error {
	if b.written {
		return errs.E("kml.output", errs.Build, "document already written", nil)
	}
	if w == nil {
		return errs.E("kml.output", errs.Build, "", errors.New("nil writer"))
	}
	b.written = true

	out := renderDocument(b.root, Indent)
	if _, err := io.Copy(w, bytes.NewReader(out)); err != nil {
		return errs.E("kml.output", errs.Build, "unable to write the KML document", err)
	}
	return nil
}

func (b *Builder) placemark() *Node {
	pm := NewNode("Placemark")
	if b.hasStyle {
		pm.AppendText("styleUrl", StyleURL)
	}
	return pm
}

func lineString(t trace.Trace) *Node {
	ls := NewNode("LineString")
	ls.AppendText("tessellate", tessellateValue)
	ls.AppendText("altitudeMode", AltitudeMode)
	ls.AppendText("coordinates", Coordinates(t))
	return ls
}

// Coordinates renders "lon,lat " for every point, in order.
func Coordinates(t trace.Trace) string {
	var sb strings.Builder
	for _, p := range t {
		sb.WriteString(strconv.FormatFloat(p.Longitude, 'f', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(p.Latitude, 'f', -1, 64))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func timeSpan(seg trace.Segment) (*Node, error) {
	begin, err := localTime(seg.First)
	if err != nil {
		return nil, err
	}
	end, err := localTime(seg.Last)
	if err != nil {
		return nil, err
	}
	if begin == "" && end == "" {
		return nil, nil
	}

	span := NewNode("TimeSpan")
	if begin != "" {
		span.AppendText("begin", begin)
	}
	if end != "" {
		span.AppendText("end", end)
	}
	return span, nil
}

func localTime(p trace.Point) (string, error) {
	zone, ok := p.Zone.Get()
	if !ok {
		return "", nil
	}
	return utils.FormatKMLTime(p.Timestamp, zone)
}
