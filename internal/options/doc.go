// Package options declares the statically known runtime options: their names,
// value kinds, typed table slots and defaults. The registry is consulted by the
// directive parser and installs defaults into a fresh set of option tables.
package options
