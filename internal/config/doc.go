// Package config loads the tool's own runtime configuration from multiple
// sources (YAML files, environment variables, CLI flags) with precedence:
// CLI flags > YAML config > Environment variables > Defaults. It locates the
// options file and configures logging and the HTTP query server.
package config
