package utils

import (
	"errors"
	"testing"

	"github.com/servalproject/dataman/errs"
)

func TestFormatKMLTime(t *testing.T) {
	tests := []struct {
		name     string
		epochMS  int64
		zone     string
		expected string
	}{
		{
			name:     "epoch in UTC",
			epochMS:  0,
			zone:     "UTC",
			expected: "1970-01-01T00:00:00+00:00",
		},
		{
			name:     "epoch in New York standard time",
			epochMS:  0,
			zone:     "America/New_York",
			expected: "1969-12-31T19:00:00-05:00",
		},
		{
			name:     "New York daylight saving",
			epochMS:  1688212800000, // 2023-07-01 12:00:00 UTC
			zone:     "America/New_York",
			expected: "2023-07-01T08:00:00-04:00",
		},
		{
			name:     "half hour offset",
			epochMS:  1688212800000,
			zone:     "Australia/Adelaide",
			expected: "2023-07-01T21:30:00+09:30",
		},
		{
			name:     "milliseconds are truncated",
			epochMS:  1999,
			zone:     "UTC",
			expected: "1970-01-01T00:00:01+00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatKMLTime(tt.epochMS, tt.zone)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestFormatKMLTime_Deterministic(t *testing.T) {
	a, _ := FormatKMLTime(1234567890123, "Europe/Berlin")
	b, _ := FormatKMLTime(1234567890123, "Europe/Berlin")
	if a != b {
		t.Errorf("same input gave %s and %s", a, b)
	}
}

func TestFormatKMLTime_InvalidZone(t *testing.T) {
	for _, zone := range []string{"Mars/Olympus_Mons", "", "Local"} {
		t.Run(zone, func(t *testing.T) {
			_, err := FormatKMLTime(0, zone)
			if !errors.Is(err, errs.ErrInvalidTimezone) {
				t.Fatalf("expected InvalidTimezone, got %v", err)
			}
			var e *errs.Error
			if !errors.As(err, &e) || e.Zone != zone {
				t.Errorf("error should name zone %q, got %v", zone, err)
			}
		})
	}
}
