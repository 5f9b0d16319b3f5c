// Package style parses the line style description given on the command line.
//
// A description is a comma separated list of key=value elements with two
// recognised keys, colour and width:
//
//	colour=80ff0050,width=3
//
// colour is eight hex digits in KML aabbggrr order; width is an integer >= 1.
package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/servalproject/dataman/errs"
)

const (
	DefaultColour = ""
	DefaultWidth  = 1
)

var hexColour = regexp.MustCompile(`^[A-Fa-f0-9]{8}$`)

// LineStyle is a validated line style. An empty Colour means unspecified.
type LineStyle struct {
	Colour string
	Width  int
}

// Default returns the style used when a description omits both keys.
func Default() LineStyle {
	return LineStyle{Colour: DefaultColour, Width: DefaultWidth}
}

// Parse validates a style description. An empty description returns a nil
// style and no error: no style was requested.
func Parse(s string) (*LineStyle, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	ls := Default()
	for i, elem := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(elem), "=")
		if !ok {
			return nil, parseError(i, fmt.Sprintf("element %q is not key=value", elem))
		}
		switch key {
		case "colour":
			if !ValidColour(value) {
				return nil, parseError(i, fmt.Sprintf("colour %q is not 8 hex digits", value))
			}
			ls.Colour = value
		case "width":
			w, err := strconv.Atoi(value)
			if err != nil {
				return nil, parseError(i, fmt.Sprintf("width %q is not an integer", value))
			}
			if w < 1 {
				return nil, parseError(i, "the width parameter must be > 0")
			}
			ls.Width = w
		default:
			return nil, parseError(i, fmt.Sprintf("unrecognised key %q", key))
		}
	}
	return &ls, nil
}

// ValidColour reports whether c is a KML aabbggrr colour.
func ValidColour(c string) bool {
	return hexColour.MatchString(c)
}

// String renders the style in the form Parse accepts.
func (ls LineStyle) String() string {
	if ls.Colour == "" {
		return "width=" + strconv.Itoa(ls.Width)
	}
	return "colour=" + ls.Colour + ",width=" + strconv.Itoa(ls.Width)
}

func parseError(pos int, msg string) error {
	e := errs.E("style.parse", errs.Parse, msg, nil)
	e.Position = pos
	return e
}
