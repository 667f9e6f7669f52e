// Package logging builds the slog loggers used throughout favsync.
//
// Two output formats are supported: a console handler that prints
// timestamp/level/component lines with key=value attributes, and a JSON
// handler for machine consumption. Attribute helper aliases keep call sites
// terse, and standardized field-name constants keep log queries stable.
package logging
