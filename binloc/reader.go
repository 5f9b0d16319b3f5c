package binloc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"google.golang.org/protobuf/encoding/protodelim"

	"github.com/servalproject/dataman/errs"
	"github.com/servalproject/dataman/trace"
)

// countingReader tracks how many bytes protodelim consumed and remembers
// the first failure of the underlying stream, so framing errors can be told
// apart from I/O errors.
type countingReader struct {
	r     *bufio.Reader
	n     int64
	ioErr error
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	c.note(err)
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	c.note(err)
	return b, err
}

func (c *countingReader) note(err error) {
	if err != nil && err != io.EOF && c.ioErr == nil {
		c.ioErr = err
	}
}

// ReadTrace decodes every framed message in r, in order. The stream must end
// exactly on a frame boundary; a truncated or undecodable frame fails the
// whole read with a MalformedInput error carrying the frame's byte offset.
func ReadTrace(r io.Reader) (trace.Trace, error) {
	cr := &countingReader{r: bufio.NewReader(r)}
	var t trace.Trace

	for frame := 0; ; frame++ {
		start := cr.n
		msg := newLocationMessage()
		err := protodelim.UnmarshalFrom(cr, msg)
		if err == io.EOF && cr.n == start {
			return t, nil
		}
		if err != nil {
			if cr.ioErr != nil {
				return nil, errs.E("binloc.read", errs.IO, "", cr.ioErr)
			}
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			e := errs.E("binloc.read", errs.MalformedInput, fmt.Sprintf("frame %d", frame), err)
			e.Offset = start
			return nil, e
		}

		t = append(t, trace.Point{
			Latitude:  msg.Get(fieldLatitude).Float(),
			Longitude: msg.Get(fieldLongitude).Float(),
			Timestamp: msg.Get(fieldTimestamp).Int(),
			Zone:      trace.ZoneOf(msg.Get(fieldTimeZone).String()),
		})
	}
}

// ReadFile opens path and decodes its trace. The file is closed on return.
func ReadFile(path string) (trace.Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		e := errs.E("binloc.open", errs.IO, "", err)
		e.Path = path
		return nil, e
	}
	defer func() { _ = f.Close() }()

	t, err := ReadTrace(f)
	if err != nil {
		var e *errs.Error
		if errors.As(err, &e) {
			e.Path = path
		}
		return nil, err
	}
	return t, nil
}
