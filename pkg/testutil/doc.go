// Package testutil provides mocks and helpers shared by package tests.
//
// Key components:
//   - MockRunner: records external commands as argv slices
//   - MockBackend: a testify mock of backend.Backend
//   - MockRecorder: collects outcomes in memory
//   - CaptureLogs: redirects the global zerolog logger into a buffer
//   - WriteFile: writes fixture files below t.TempDir()
//
// All fixture data is defined inline in the tests that use it.
package testutil
