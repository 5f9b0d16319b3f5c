package task

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/servalproject/dataman/binloc"
	"github.com/servalproject/dataman/errs"
	"github.com/servalproject/dataman/kml"
	"github.com/servalproject/dataman/style"
	"github.com/servalproject/dataman/trace"
	"github.com/servalproject/dataman/utils"
)

// Options configure a Task.
type Options struct {
	InputPath  string
	OutputPath string
	Type       Type
	Style      *style.LineStyle // nil: no style block
	Logger     *slog.Logger     // nil: discard
}

// Task converts one input file into one output file.
type Task struct {
	opts   Options
	log    *slog.Logger
	state  State
	points int
}

// New validates opts. The input must be a readable location file and the
// output must not exist yet; nothing is read or created here.
func New(opts Options) (*Task, error) {
	if opts.InputPath == "" {
		return nil, errs.E("task.new", errs.InvalidArgument, "the input file parameter is required", nil)
	}
	if opts.OutputPath == "" {
		return nil, errs.E("task.new", errs.InvalidArgument, "the output file parameter is required", nil)
	}
	if !opts.Type.Valid() {
		return nil, errs.E("task.new", errs.InvalidArgument, "the provided task type is invalid", nil)
	}
	if !binloc.IsLocationFile(opts.InputPath) {
		e := errs.E("task.new", errs.InvalidArgument, "a binary file is required to end with '"+binloc.LocationFileExt+"'", nil)
		e.Path = opts.InputPath
		return nil, e
	}
	if err := checkOutputAbsent(opts.OutputPath); err != nil {
		return nil, err
	}
	if err := checkInputFile(opts.InputPath); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Task{opts: opts, log: logger, state: Idle}, nil
}

// State returns the current lifecycle state.
func (t *Task) State() State { return t.state }

// Points returns the number of points read from the input.
func (t *Task) Points() int { return t.points }

// Run performs the conversion once. On any failure the task ends in Failed
// and no output file is left behind.
func (t *Task) Run() error {
	if t.state != Idle {
		return errs.E("task.run", errs.InvalidArgument, "task already run", nil)
	}
	err := t.run()
	if err != nil {
		t.state = Failed
		t.log.Debug("task failed", "task", t.opts.Type.String(), "error", err)
		return err
	}
	t.state = Done
	return nil
}

func (t *Task) run() error {
	// The output may have appeared since New.
	if err := checkOutputAbsent(t.opts.OutputPath); err != nil {
		return err
	}

	t.state = Reading
	t.log.Debug("processing a binary file", "input", t.opts.InputPath)
	tr, err := binloc.ReadFile(t.opts.InputPath)
	if err != nil {
		return err
	}
	t.points = len(tr)
	t.log.Debug("trace read", "points", len(tr), "distance", utils.PresentableDistance(traceLengthKM(tr)))
	for i, p := range tr {
		if err := p.Validate(); err != nil {
			t.log.Warn("point out of range", "index", i, "error", err)
		}
	}

	t.state = Building
	doc, err := t.build(tr)
	if err != nil {
		return err
	}

	if err := writeExclusive(t.opts.OutputPath, doc); err != nil {
		return err
	}
	t.log.Debug("kml written", "output", t.opts.OutputPath, "bytes", len(doc))
	return nil
}

func (t *Task) build(tr trace.Trace) ([]byte, error) {
	b := kml.NewBuilder()
	if b.SetStyle(t.opts.Style) {
		t.log.Debug("style attached", "style", t.opts.Style.String())
	}

	var err error
	switch t.opts.Type {
	case BinLocToKML:
		err = b.AddTrace(tr)
	case BinLocToKMLWithTime:
		err = b.AddTraceWithTime(tr)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := b.OutputTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func checkOutputAbsent(path string) error {
	_, err := os.Lstat(path)
	if err == nil {
		e := errs.E("task.output", errs.AlreadyExists, "the output file already exists", nil)
		e.Path = path
		return e
	}
	if !errors.Is(err, fs.ErrNotExist) {
		e := errs.E("task.output", errs.IO, "", err)
		e.Path = path
		return e
	}
	return nil
}

func checkInputFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		e := errs.E("task.input", errs.IO, "the input file cannot be accessed", err)
		e.Path = path
		return e
	}
	if !fi.Mode().IsRegular() {
		e := errs.E("task.input", errs.IO, "the input file is not a regular file", nil)
		e.Path = path
		return e
	}
	return nil
}

// writeExclusive creates path, failing if it exists, and writes data. A
// failed write or close removes the file.
func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		kind := errs.IO
		if errors.Is(err, fs.ErrExist) {
			kind = errs.AlreadyExists
		}
		e := errs.E("task.write", kind, "", err)
		e.Path = path
		return e
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(path)
		e := errs.E("task.write", errs.IO, "unable to write the KML file", werr)
		e.Path = path
		return e
	}
	return nil
}

func traceLengthKM(tr trace.Trace) float64 {
	var km float64
	for i := 1; i < len(tr); i++ {
		km += utils.HaversineKM(tr[i-1].Latitude, tr[i-1].Longitude, tr[i].Latitude, tr[i].Longitude)
	}
	return km
}
