// Package errs defines the error kinds shared by the trace reader, the KML
// builder and the conversion task.
//
// Every failure is reported as an *Error carrying a Kind. Callers test for a
// kind with errors.Is against the exported sentinels:
//
//	if errors.Is(err, errs.ErrAlreadyExists) {
//	    // refuse to overwrite
//	}
package errs
