// Package tcp implements the TCP transport of the RPC layer. It provides the
// TCP specific connectors for the base package, which does the framing and
// connection handling.
//
// Key Components:
//
//   - clientConnector: dials the server and applies the socket options
//
//   - serverConnector: listens on host:port and applies the socket options to
//     every accepted connection
//
// The default server read buffer is 512 KB, frames larger than the buffer are
// read into a freshly allocated slice.
package tcp
