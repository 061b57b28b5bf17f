// Package database provides the SQLite run history of complyreport.
//
// Every reported run is archived with its full JSON tree and its control and
// result summaries, so earlier runs can be listed and rendered again. The
// database uses modernc.org/sqlite, a CGO-free driver, and lives in a single
// file under the XDG data directory.
package database
