// Package binlog locates the MySQL binary log file holding events for a
// calendar date.
//
// It lists the server's binlog files, reads the first and last event
// timestamps of a file on demand, and binary-searches the sorted file list
// for the first file whose events reach the target day, mirroring how
// package search finds the first line of a date in a text log.
package binlog
