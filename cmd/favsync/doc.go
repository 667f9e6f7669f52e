// Package main hosts the favsync CLI entrypoint and command graph.
//
// The Cobra-based command tree covers reconciliation (scan, enable), database
// inspection (favorites, history, status), catalog maintenance (library), and
// configuration utilities (config init/show/validate). Commands open the
// SQLite database on demand and close it once the operation finishes.
package main
