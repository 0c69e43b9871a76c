// Command log-find-date extracts every line of one calendar date from a
// large, date-sorted log file without reading the whole file.
//
// It binary-searches byte offsets for the first line of the date, then reads
// forward until the date changes, writing the matching lines to
// output/output_<date>.txt.
//
// Usage:
//
//	log-find-date extract 2024-12-02
//	log-find-date extract --log=/var/log/app.log --output-dir=/tmp 2024-12-01 2024-12-02
//	log-find-date generate --entries=1000000
//	log-find-date binlog --host=db.example.com --user=repl 2024-12-02
package main
