// Package errors provides structured error types for the bridge host surfaces.
//
// Errors carry the Phase in which they occurred and a Kind describing the
// failure. errors.Is matches on Phase and Kind only:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: errors.KindNotFound}) {
//	    // unknown export
//	}
//
// The bridge function itself never returns errors.
package errors
