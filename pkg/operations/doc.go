// Package operations counts and executes package-operation entries.
//
// An entry is a set of tagged package lists. Strict tags (install,
// localInstall, remove) abort the run on the first failed package.
// Best-effort tags (try_install, try_remove) log a failed package and move
// on. Each attempted package is one unit of progress.
package operations
