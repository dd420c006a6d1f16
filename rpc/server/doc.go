// Package server implements the RPC server. It receives batches of employee
// records over one of the transports and acknowledges how many records arrived.
//
// Key Components:
//
//   - IRPCServerAdapter: serves one method, decoding the request and encoding the
//     reply. NewEmployeesServerAdapter serves SendEmployees.
//
//   - RPCServer: created with NewRPCServer, dispatches every request by method id.
//     Requests are handled concurrently and share no state besides the metrics.
//     A request that cannot be decoded is answered with an error reply, the
//     server logs it and keeps serving.
//
//   - Metrics: request, record and error counters plus a handle latency histogram
//     (VictoriaMetrics), served on GET /metrics if MetricsEndpoint is set.
//
// Usage Example:
//
//	s := server.NewRPCServer(common.ServerConfig{
//		Endpoint:        common.DefaultEndpoint,
//		MetricsEndpoint: "127.0.0.1:9090",
//	}, tcp.NewTCPServerTransport(), schema)
//
//	if err := s.Bind(); err != nil {
//		return err
//	}
//	go s.Serve()
//	defer s.Close()
package server
