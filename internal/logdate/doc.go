// Package logdate defines the fixed-width date key that prefixes every line
// of a date-sorted log file.
//
// Keys have the form YYYY-MM-DD. Because every field is zero-padded, byte-wise
// comparison of two keys matches chronological order, so the search and scan
// packages compare raw line prefixes without parsing them.
package logdate
