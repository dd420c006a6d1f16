package server

// IRPCServerAdapter is the interface for all RPC server adapters.
// An adapter serves exactly one method: it decodes the request payload,
// does the work and encodes the reply.
type IRPCServerAdapter interface {
	// Handle handles a request payload and returns the reply payload.
	// A returned error is sent back to the caller as an error reply.
	Handle(req []byte) (resp []byte, err error)
}
