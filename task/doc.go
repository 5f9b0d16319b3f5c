// Package task runs one conversion of a binary location file to KML.
//
// A Task moves through Idle → Reading → Building → Done, or to Failed from
// any state. The output file is created only after the KML document has
// been rendered in memory, and it is created exclusively: an existing file
// is never touched. A failed write removes the partial output.
//
// Usage:
//
//	t, err := task.New(task.Options{
//	    InputPath:  "2012-05-01-locations.mbl",
//	    OutputPath: "trace.kml",
//	    Type:       task.BinLocToKMLWithTime,
//	})
//	if err != nil {
//	    return err
//	}
//	return t.Run()
package task
