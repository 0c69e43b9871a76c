// Package search locates the first line of a given date inside a date-sorted
// log file using byte-offset binary search.
//
// The file is addressed through an io.ReaderAt and an explicit size, so a
// search holds no state between calls and any number of searches may run
// against the same file concurrently. Each probe reads forward from an
// arbitrary offset to the next line boundary and compares that line's date
// prefix with the target; the cost of a search is O(log size) probes plus a
// short backward walk over lines that share the target date.
package search
