package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/ValentinKolb/cbench/lib/schema"
	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/ValentinKolb/cbench/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new RPC server
// It takes a config, transport and the loaded schema as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		config,
//		tcp.NewTCPServerTransport(),
//		schema,
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	schema *schema.Schema,
) *RPCServer {
	m := newServerMetrics()

	return &RPCServer{
		config:    config,
		transport: transport,
		metrics:   m,
		adapters: map[common.MethodID]IRPCServerAdapter{
			common.MethodSendEmployees: NewEmployeesServerAdapter(schema, m),
		},
	}
}

// RPCServer serves SendEmployees over one transport
type RPCServer struct {
	config    common.ServerConfig
	transport transport.IRPCServerTransport
	metrics   *serverMetrics
	adapters  map[common.MethodID]IRPCServerAdapter

	bindOnce      sync.Once
	bindErr       error
	metricsServer *metricsServer
}

// Bind registers the handler, binds the transport and starts the metrics endpoint
// if one is configured. Calling it more than once has no further effect.
func (s *RPCServer) Bind() error {
	s.bindOnce.Do(func() {
		s.transport.RegisterHandler(s.handle)

		if err := s.transport.Bind(s.config); err != nil {
			s.bindErr = fmt.Errorf("failed to bind %s: %w", s.config.Endpoint, err)
			return
		}

		if s.config.MetricsEndpoint != "" {
			ms, err := startMetricsServer(s.config.MetricsEndpoint, s.metrics.set)
			if err != nil {
				s.bindErr = errors.Join(err, s.transport.Close())
				return
			}
			s.metricsServer = ms
		}

		Logger.Infof("Created RPC Server")
		Logger.Infof(s.config.String())
	})
	return s.bindErr
}

// Serve binds the server if needed and handles requests until Close is called
func (s *RPCServer) Serve() error {
	if err := s.Bind(); err != nil {
		return err
	}
	return s.transport.Serve()
}

// Addr returns the bound address of the rpc endpoint, or nil before Bind
func (s *RPCServer) Addr() net.Addr {
	return s.transport.Addr()
}

// MetricsAddr returns the bound address of the metrics endpoint, or nil if it is disabled
func (s *RPCServer) MetricsAddr() net.Addr {
	if s.metricsServer == nil {
		return nil
	}
	return s.metricsServer.listener.Addr()
}

// Close stops the transport and the metrics endpoint
func (s *RPCServer) Close() error {
	var errs []error
	errs = append(errs, s.transport.Close())
	if s.metricsServer != nil {
		errs = append(errs, s.metricsServer.Close())
	}
	return errors.Join(errs...)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handle is registered as the transport handler, it dispatches a request to the adapter of its method
func (s *RPCServer) handle(method uint32, req []byte) ([]byte, error) {
	start := time.Now()
	s.metrics.requests.Inc()
	defer s.metrics.latency.UpdateDuration(start)

	adapter, ok := s.adapters[common.MethodID(method)]
	if !ok {
		s.metrics.errors.Inc()
		return nil, fmt.Errorf("%w: %d", common.ErrUnknownMethod, method)
	}

	resp, err := adapter.Handle(req)
	if err != nil {
		s.metrics.errors.Inc()
		Logger.Warningf("%s failed: %v", common.MethodID(method), err)
		return nil, err
	}
	return resp, nil
}
