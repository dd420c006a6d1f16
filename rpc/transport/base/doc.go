// Package base provides the stream transport shared by the tcp and unix transports,
// implementing the framing and connection handling independent of the specific
// network protocol. It is extended with protocol-specific connectors.
//
// Frame format (all integers big endian):
//
//	| method uint32 | status uint32 | requestID uint64 | length uint32 | payload |
//
// A request carries the method id and status 0. The reply repeats the method and the
// request id, status 0 means the payload is the encoded reply and status 1 means the
// payload is an error message.
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations
//     that allow extending the base transport with different network protocols.
//
//   - clientTransport: Client with a single connection. Replies are matched to
//     waiting requests by request id. A request is sent exactly once, a failure is
//     reported to the caller and never retried. There is no reply deadline unless
//     the configuration sets a timeout.
//
//   - serverTransport: Accepts connections, reads frames and dispatches every request
//     to the handler in its own goroutine, bounded per connection by a semaphore.
//     Open connections are tracked so Close can shut them down.
//
// Thread Safety:
//
//	All public methods are thread-safe. Writes to a connection are serialized with a
//	mutex, the server reuses read buffers through a sync.Pool.
package base
