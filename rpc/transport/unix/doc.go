// Package unix implements the RPC transport over Unix domain sockets, for client
// and server running on the same machine. The endpoint is the socket path.
//
// The package only provides the connectors, framing and connection handling come
// from the base package. A stale socket file at the endpoint is removed before
// the server binds.
//
// The default server read buffer is 64 KB.
package unix
