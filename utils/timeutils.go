package utils

import (
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host zoneinfo

	"github.com/servalproject/dataman/errs"
)

// KMLTimeLayout is the KML dateTime form with a colon separated offset.
const KMLTimeLayout = "2006-01-02T15:04:05-07:00"

// TimeFromEpochMillis converts epoch milliseconds to a UTC time.
func TimeFromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// LoadZone resolves an IANA zone name. "Local" and "" are rejected so the
// result never depends on the host.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		e := errs.E("utils.zone", errs.InvalidTimezone, "not an IANA zone name", nil)
		e.Zone = name
		return nil, e
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		e := errs.E("utils.zone", errs.InvalidTimezone, "", err)
		e.Zone = name
		return nil, e
	}
	return loc, nil
}

// FormatKMLTime renders epoch milliseconds as local time in zone, e.g.
// 1969-12-31T19:00:00-05:00. UTC renders as +00:00, never Z.
func FormatKMLTime(epochMillis int64, zone string) (string, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", err
	}
	return TimeFromEpochMillis(epochMillis).In(loc).Format(KMLTimeLayout), nil
}
