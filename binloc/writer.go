package binloc

import (
	"io"

	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/servalproject/dataman/errs"
	"github.com/servalproject/dataman/trace"
)

// Writer appends framed location messages to an io.Writer.
type Writer struct {
	w io.Writer
	n int64
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes one point. A point without a zone omits the time_zone field.
func (w *Writer) Write(p trace.Point) error {
	msg := newLocationMessage()
	msg.Set(fieldLatitude, protoreflect.ValueOfFloat64(p.Latitude))
	msg.Set(fieldLongitude, protoreflect.ValueOfFloat64(p.Longitude))
	msg.Set(fieldTimestamp, protoreflect.ValueOfInt64(p.Timestamp))
	if zone, ok := p.Zone.Get(); ok {
		msg.Set(fieldTimeZone, protoreflect.ValueOfString(zone))
	}

	n, err := protodelim.MarshalTo(w.w, msg)
	w.n += int64(n)
	if err != nil {
		e := errs.E("binloc.write", errs.IO, "", err)
		e.Offset = w.n
		return e
	}
	return nil
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int64 { return w.n }

// WriteTrace encodes every point of t in order.
func WriteTrace(w io.Writer, t trace.Trace) error {
	lw := NewWriter(w)
	for _, p := range t {
		if err := lw.Write(p); err != nil {
			return err
		}
	}
	return nil
}
