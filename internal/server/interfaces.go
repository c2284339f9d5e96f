package server

// Server defines the lifecycle contract of the transport server managed by
// this package.
//
// Implementations block in [RunServer] until a stop signal arrives or the
// listener fails, and release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server, waiting at most the configured
	// shutdown timeout for in-flight requests.
	Shutdown()
}
