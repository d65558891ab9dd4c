// Package fault defines the error taxonomy of the add-in.
//
// Errors are grouped by the boundary that owns them:
//
//   - integration: the host could not resolve or call an operation, or the UI
//     descriptor points at a callback that does not exist. Prevented by
//     construction and tests, never handled at runtime.
//   - lifecycle: a failure while handling a lifecycle event. Recovered and
//     recorded, never returned to the host.
//   - activation: the external tool could not be started. Recovered, shown
//     to the user, recorded.
//   - diagnostic: the diagnostic log could not be written. Discarded.
//   - configuration: invalid settings detected while building the add-in.
//
// Internally every operation returns an explicit error. Guard is the single
// place where an error or a panic is converted into a value that the
// boundary can record and drop.
package fault
