package binloc

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/servalproject/dataman/errs"
	"github.com/servalproject/dataman/trace"
)

var zoneCmp = cmp.AllowUnexported(trace.Zone{})

func encode(t *testing.T, tr trace.Trace) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteTrace(&buf, tr); err != nil {
		t.Fatalf("WriteTrace() error: %v", err)
	}
	return buf.Bytes()
}

func sampleTrace() trace.Trace {
	return trace.Trace{
		{Latitude: 37.5, Longitude: -122.1, Timestamp: 1700000000000, Zone: trace.ZoneOf("America/Los_Angeles")},
		{Latitude: 37.6, Longitude: -122.2, Timestamp: 1700000005000},
		{Latitude: -34.928499, Longitude: 138.600746, Timestamp: 1700000010000, Zone: trace.ZoneOf("Australia/Adelaide")},
	}
}

func TestReadTrace_RoundTripPreservesOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	zones := []string{"", "UTC", "Europe/Berlin", "America/New_York"}

	for _, n := range []int{1, 2, 17, 500} {
		want := make(trace.Trace, n)
		for i := range want {
			want[i] = trace.Point{
				Latitude:  rng.Float64()*180 - 90,
				Longitude: rng.Float64()*360 - 180,
				Timestamp: rng.Int63(),
				Zone:      trace.ZoneOf(zones[rng.Intn(len(zones))]),
			}
		}

		got, err := ReadTrace(bytes.NewReader(encode(t, want)))
		if err != nil {
			t.Fatalf("n=%d: ReadTrace() error: %v", n, err)
		}
		if diff := cmp.Diff(want, got, zoneCmp); diff != "" {
			t.Errorf("n=%d: trace mismatch (-want +got):\n%s", n, diff)
		}
		for i := range want {
			if math.Float64bits(want[i].Latitude) != math.Float64bits(got[i].Latitude) ||
				math.Float64bits(want[i].Longitude) != math.Float64bits(got[i].Longitude) {
				t.Fatalf("n=%d: point %d not bit identical", n, i)
			}
		}
	}
}

func TestReadTrace_Empty(t *testing.T) {
	got, err := ReadTrace(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("empty stream should be valid, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 points, got %d", len(got))
	}
}

func TestReadTrace_MissingZoneDefaultsToNone(t *testing.T) {
	got, err := ReadTrace(bytes.NewReader(encode(t, sampleTrace())))
	if err != nil {
		t.Fatalf("ReadTrace() error: %v", err)
	}
	if _, ok := got[1].Zone.Get(); ok {
		t.Error("point without time_zone should have no zone")
	}
	if zone, ok := got[0].Zone.Get(); !ok || zone != "America/Los_Angeles" {
		t.Errorf("expected America/Los_Angeles, got %q", zone)
	}
}

func TestReadTrace_FieldsInAnyOrder(t *testing.T) {
	var body []byte
	body = protowire.AppendTag(body, 4, protowire.BytesType)
	body = protowire.AppendString(body, "UTC")
	body = protowire.AppendTag(body, 3, protowire.VarintType)
	body = protowire.AppendVarint(body, 1000)
	body = protowire.AppendTag(body, 2, protowire.Fixed64Type)
	body = protowire.AppendFixed64(body, math.Float64bits(-122.1))
	body = protowire.AppendTag(body, 1, protowire.Fixed64Type)
	body = protowire.AppendFixed64(body, math.Float64bits(37.5))

	framed := protowire.AppendVarint(nil, uint64(len(body)))
	framed = append(framed, body...)

	got, err := ReadTrace(bytes.NewReader(framed))
	if err != nil {
		t.Fatalf("ReadTrace() error: %v", err)
	}
	want := trace.Trace{{Latitude: 37.5, Longitude: -122.1, Timestamp: 1000, Zone: trace.ZoneOf("UTC")}}
	if diff := cmp.Diff(want, got, zoneCmp); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTrace_Truncated(t *testing.T) {
	full := encode(t, sampleTrace())
	first := encode(t, sampleTrace()[:1])
	firstTwo := encode(t, sampleTrace()[:2])

	tests := []struct {
		name   string
		data   []byte
		offset int64
	}{
		{name: "body cut in first frame", data: full[:5], offset: 0},
		{name: "only length prefix", data: full[:1], offset: 0},
		{name: "body cut in third frame", data: full[:len(firstTwo)+3], offset: int64(len(firstTwo))},
		{name: "one byte short", data: full[:len(full)-1], offset: int64(len(firstTwo))},
		{name: "length prefix cut", data: append(append([]byte{}, first...), 0xC8), offset: int64(len(first))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadTrace(bytes.NewReader(tt.data))
			if got != nil {
				t.Errorf("partial trace returned: %d points", len(got))
			}
			if !errors.Is(err, errs.ErrMalformedInput) {
				t.Fatalf("expected MalformedInput, got %v", err)
			}
			var e *errs.Error
			errors.As(err, &e)
			if e.Offset != tt.offset {
				t.Errorf("expected offset %d, got %d", tt.offset, e.Offset)
			}
		})
	}
}

func TestReadTrace_FrameBoundaries(t *testing.T) {
	tr := sampleTrace()
	for n := 0; n <= len(tr); n++ {
		got, err := ReadTrace(bytes.NewReader(encode(t, tr[:n])))
		if err != nil {
			t.Fatalf("%d frames: unexpected error %v", n, err)
		}
		if len(got) != n {
			t.Errorf("%d frames: got %d points", n, len(got))
		}
	}
}

func TestReadTrace_MissingRequiredField(t *testing.T) {
	var body []byte
	body = protowire.AppendTag(body, 1, protowire.Fixed64Type)
	body = protowire.AppendFixed64(body, math.Float64bits(37.5))
	framed := protowire.AppendVarint(nil, uint64(len(body)))
	framed = append(framed, body...)

	_, err := ReadTrace(bytes.NewReader(framed))
	if !errors.Is(err, errs.ErrMalformedInput) {
		t.Fatalf("expected MalformedInput, got %v", err)
	}
}

type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestReadTrace_IOError(t *testing.T) {
	boom := errors.New("device unplugged")
	full := encode(t, sampleTrace())

	_, err := ReadTrace(&failingReader{data: full[:7], err: boom})
	if !errors.Is(err, errs.ErrIO) {
		t.Fatalf("expected IoError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}
}

func TestReadTrace_IOErrorAtBoundary(t *testing.T) {
	_, err := ReadTrace(&failingReader{err: io.ErrClosedPipe})
	if !errors.Is(err, errs.ErrIO) {
		t.Fatalf("expected IoError, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace"+LocationFileExt)
	if err := os.WriteFile(path, encode(t, sampleTrace()), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if diff := cmp.Diff(sampleTrace(), got, zoneCmp); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent"+LocationFileExt)
	_, err := ReadFile(path)
	if !errors.Is(err, errs.ErrIO) {
		t.Fatalf("expected IoError, got %v", err)
	}
	var e *errs.Error
	if errors.As(err, &e) && e.Path != path {
		t.Errorf("expected path %s in error, got %s", path, e.Path)
	}
}

func TestIsLocationFile(t *testing.T) {
	if !IsLocationFile("/tmp/2012-05-01-locations.mbl") {
		t.Error("expected location file to be recognised")
	}
	if IsLocationFile("/tmp/2012-05-01-poi.mbl") || IsLocationFile("trace.kml") {
		t.Error("other files should not be recognised")
	}
}
