// Package transport defines the interfaces for RPC communication between the
// employee client and server. It provides a common contract that all transport
// implementations must fulfill, enabling protocol-agnostic communication.
//
// Key Components:
//
//   - IRPCClientTransport: Interface for client-side transport implementations that
//     connect to one endpoint and send single requests.
//
//   - IRPCServerTransport: Interface for server-side transport implementations that
//     receive requests and pass them to the registered handler.
//
//   - ServerHandleFunc: Function type for request handling callbacks.
//
// Implementations live in the tcp, unix and http subpackages. The stream based ones
// (tcp, unix) share their framing and connection handling through package base.
package transport
