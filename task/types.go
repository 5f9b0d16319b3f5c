package task

import (
	"fmt"

	"github.com/servalproject/dataman/errs"
)

// Type selects the conversion variant.
type Type int

const (
	// BinLocToKML writes one geometry-only Placemark.
	BinLocToKML Type = iota + 1
	// BinLocToKMLWithTime writes one Placemark per segment with a TimeSpan.
	BinLocToKMLWithTime
)

var typeNames = map[Type]string{
	BinLocToKML:         "binloctokml",
	BinLocToKMLWithTime: "binloctokml2",
}

var typeDescriptions = map[Type]string{
	BinLocToKML:         "Convert a binary location file to a KML file",
	BinLocToKMLWithTime: "Convert a binary location file to a KML file including time span elements",
}

// Types returns every known task type in a stable order.
func Types() []Type {
	return []Type{BinLocToKML, BinLocToKMLWithTime}
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Description returns the human readable summary of the task.
func (t Type) Description() string { return typeDescriptions[t] }

// Valid reports whether t is a known task type.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// ParseType maps a task identifier such as "binloctokml2" to its Type.
func ParseType(s string) (Type, error) {
	for _, t := range Types() {
		if typeNames[t] == s {
			return t, nil
		}
	}
	return 0, errs.E("task.parseType", errs.InvalidArgument, fmt.Sprintf("unrecognised task type %q", s), nil)
}

// State is the lifecycle position of a Task.
type State int

const (
	Idle State = iota
	Reading
	Building
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Reading:
		return "reading"
	case Building:
		return "building"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
