package transport

import (
	"context"
	"net"

	"github.com/ValentinKolb/cbench/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer when a request is received
// It takes the method id and the request payload and returns the reply payload.
// A returned error is sent back to the caller as an error reply.
type ServerHandleFunc func(method uint32, req []byte) (resp []byte, err error)

// IRPCServerTransport is the interface for the RPC server transport layer
type IRPCServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler is called once per received request, possibly concurrently
	RegisterHandler(handler ServerHandleFunc)
	// Bind creates the listener for config.Endpoint without accepting connections yet
	Bind(config common.ServerConfig) error
	// Addr returns the address the transport is bound to, or nil before Bind
	Addr() net.Addr
	// Serve accepts and handles connections until Close is called.
	// It returns nil after Close.
	Serve() error
	// Listen binds and serves, it blocks until Close is called
	Listen(config common.ServerConfig) error
	// Close stops accepting connections and closes all open connections
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends exactly one request and waits for its reply.
	// Every failure is wrapped in common.ErrTransport, nothing is retried.
	Send(ctx context.Context, method uint32, req []byte) (resp []byte, err error)
	// Close closes the transport connection
	Close() error
}
