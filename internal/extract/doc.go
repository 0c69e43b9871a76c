// Package extract runs a complete date extraction: it validates the target
// date, opens the log file read-only, locates the first matching line with
// package search, streams the matching run to a sink with package scan and
// returns a Summary.
//
// A Pipeline carries configuration only. Every call to Extract opens its own
// file handle and sink, so calls for different dates may run concurrently
// against the same log file. Growing the file while an extraction runs is
// not supported: the size is read once at the start and bytes appended later
// are never examined.
package extract
