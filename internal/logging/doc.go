// Package logging assembles the zerolog loggers used across flavorprune.
//
// It owns level parsing and the console/JSON output split, and keeps all
// log traffic on stderr so stdout stays reserved for report output that
// can be piped or diffed. Prefer these constructors over hand-rolled
// zerolog setup so every component emits the same shape.
package logging
