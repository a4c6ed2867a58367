// Package server exposes the library and the visualizer over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [Logging] and [Recover] are the stock middleware.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with per-method dispatch.
//
// # Endpoints
//
//	GET  /songs?mood=       library songs, optionally filtered by mood
//	POST /runs/sort         {"algorithm", "criterion", "mood"}
//	POST /runs/recommend    {"title", "count"}
//	POST /runs/path         {"from", "to"}
//	POST /runs/cancel       cancel the run in flight
//	GET  /runs              whether a run is in flight
//	GET  /events            server-sent event stream of step, progress and result events
//
// Start requests answer 202 when a run began and 409 when another run was already in flight.
//
// # Event Stream
//
// [Hub] is the visualizer's sink and fans every event out to the connected streams in emission order.
// A client that cannot keep up is disconnected instead of silently missing events.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
