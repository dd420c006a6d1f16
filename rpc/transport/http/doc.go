// Package http implements the RPC transport over HTTP. Every call is one
// POST /rpc/{method} request, the body carries the request payload and the
// response body carries the reply.
//
// Key Components:
//
//   - httpClientTransport: Implements IRPCClientTransport. The endpoint is either
//     host:port or a full url. A call is sent exactly once, any status other than
//     200 is reported as a remote error.
//
//   - httpServerTransport: Implements IRPCServerTransport with a chi router. An
//     unknown method is answered with 404, a handler error with 422 and the error
//     text as body. Panics in the handler are recovered by chi's Recoverer, with
//     log level debug every request is logged.
//
// Thread Safety:
//
//	The client transport can be used concurrently, it shares one http.Client.
package http
