// Package preflight provides readiness checks for the filesystem paths and
// database that favsync depends on.
//
// The CLI "favsync status" command runs these to display environment health
// before the user attempts a scan, so a missing favourites document or an
// unwritable data directory is diagnosed up front rather than mid-scan.
package preflight
