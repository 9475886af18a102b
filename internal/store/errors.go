package store

import "strings"

// IsBusy reports whether err is a SQLite concurrency error (SQLITE_BUSY or
// "database is locked"). Callers use it only to pick a log level; busy
// writes are not retried.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
