// Package registry provides a generic, type-safe name -> value table. The
// backend package uses it for its enumerated set of backend factories.
package registry
