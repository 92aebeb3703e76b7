// Package server implements the item store and the HTTP API over it.
//
// Owns:
//   - the Store contract and its memory and SQLite backends
//   - HTTP routing, handlers, and request/response contracts
//   - request id, access log and panic recovery middleware
//
// Does not own:
//   - wire types and configuration (package shared)
//   - process lifecycle (cmd/itemstore-server)
//
// Invariants:
//   - every handler performs at most one Store call
//   - ErrNotFound and ErrAlreadyExists are mapped to 404 and 400; they are
//     expected outcomes and are never logged above debug
//   - JSON bodies go through writeJSON, failure bodies through writeError
package server
