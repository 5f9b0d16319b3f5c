package trace

import "fmt"

// Zone is an optional IANA timezone name. The zero value is "no zone".
type Zone struct {
	name  string
	valid bool
}

// NoZone returns an absent Zone.
func NoZone() Zone { return Zone{} }

// ZoneOf returns a present Zone; an empty name yields NoZone.
func ZoneOf(name string) Zone {
	if name == "" {
		return Zone{}
	}
	return Zone{name: name, valid: true}
}

// Get returns the zone name and whether it is present.
func (z Zone) Get() (string, bool) { return z.name, z.valid }

func (z Zone) String() string {
	if !z.valid {
		return "<none>"
	}
	return z.name
}

// Point is one recorded fix.
type Point struct {
	Latitude  float64 // decimal degrees
	Longitude float64 // decimal degrees
	Timestamp int64   // epoch milliseconds, UTC
	Zone      Zone
}

// Validate checks the coordinate ranges.
func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90,90]", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180,180]", p.Longitude)
	}
	return nil
}

// Trace is an ordered sequence of points.
type Trace []Point

// Segment is a run of consecutive points.
type Segment struct {
	First  Point
	Last   Point
	Points Trace
}

// Segments splits the trace into consecutive pairs. A single point trace
// yields one segment holding that point.
func (t Trace) Segments() []Segment {
	switch len(t) {
	case 0:
		return nil
	case 1:
		return []Segment{{First: t[0], Last: t[0], Points: t[:1:1]}}
	}
	segs := make([]Segment, 0, len(t)-1)
	for i := 0; i+1 < len(t); i++ {
		segs = append(segs, Segment{First: t[i], Last: t[i+1], Points: t[i : i+2 : i+2]})
	}
	return segs
}
