// Package reveal implements the pointer-driven reveal-interaction engine.
//
// The engine maintains a single normalized progress value in [0,1]
// describing how far a side panel is revealed over a base content
// surface, arbitrates whether an in-progress pointer sequence belongs to
// the reveal interaction or to the content underneath, and emits a
// deterministic stream of progress/state reports for rendering.
//
// # Architecture
//
// The Surface is the one authoritative state object. It has two input
// ports: pointer events (HandlePointer) and programmatic commands (the
// Controller returned by Surface.Controller). Both ports mutate the same
// progress model and active-side field, so gesture-driven and
// command-driven changes are always observable through either.
//
//	pointer events -> arbitration -> drag translation -> progress model
//	                                                        |
//	controller commands ------------------------------------+--> reporter
//
// # Concurrency
//
// The Surface is not safe for concurrent use. All mutation must happen
// on one goroutine, either in response to a pointer event or a frame
// tick (Tick) that advances the settle animation. This mirrors the
// single-writer event loop the engine is designed to live inside.
package reveal
