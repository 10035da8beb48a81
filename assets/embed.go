// Package assets embeds the default calendar word list and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed calendar.txt sql/*.sql
var FS embed.FS

// OpenCalendar opens the embedded calendar list: one word per line in
// calendar order, "#" comment lines allowed.
func OpenCalendar() (fs.File, error) {
	return FS.Open("calendar.txt")
}

// Migrations returns the embedded migration directory (files named NNN_*.sql).
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}
