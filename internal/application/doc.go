// Package application provides dependency wiring for the query server. It
// builds the option registry and tables, applies the options file through the
// loader, and assembles the HTTP handler, router and server, keeping the main
// package focused on CLI parsing and orchestration.
package application
