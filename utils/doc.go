// Package utils provides small helpers shared by the KML builder and the
// conversion task.
//
// It contains:
//   - KML time formatting for epoch milliseconds in a named timezone
//   - Great-circle distance and its display form
package utils
