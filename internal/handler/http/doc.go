// Package http implements the REST API of sheet-viz.
//
// Routes live under /api and are wired in [Handler.Init]. Authentication
// accepts a bearer token or the "token" cookie; admin routes additionally
// require the admin role. Every failure is answered with the JSON envelope
// {"message": ..., "error": ...} built by writeError, which maps sentinel
// errors of the lower layers to HTTP status codes.
//
// Cross-cutting middleware handles request tracing, access logging, gzip
// compression, the per-request timeout and the optional HashSHA256 upload
// integrity check.
package http
