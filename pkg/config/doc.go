// Package config loads the packages job configuration.
//
// Sources are layered, later ones overriding earlier ones:
//   - embedded defaults (embedded/defaults.toml)
//   - the job configuration file, TOML or YAML by extension
//   - environment variables prefixed PACKOPS_, where a double underscore
//     separates nesting levels (PACKOPS_AUR__TIMEOUT=10s)
//
// The operations list can only come from the file.
package config
