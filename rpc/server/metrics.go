package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-chi/chi/v5"
)

// serverMetrics holds the counters of one server, they live in their own set
// so several servers in one process do not share them
type serverMetrics struct {
	set      *metrics.Set
	requests *metrics.Counter
	records  *metrics.Counter
	errors   *metrics.Counter
	latency  *metrics.Histogram
}

func newServerMetrics() *serverMetrics {
	set := metrics.NewSet()
	return &serverMetrics{
		set:      set,
		requests: set.NewCounter("cbench_rpc_requests_total"),
		records:  set.NewCounter("cbench_rpc_records_total"),
		errors:   set.NewCounter("cbench_rpc_errors_total"),
		latency:  set.NewHistogram("cbench_rpc_handle_duration_seconds"),
	}
}

// metricsServer serves the metrics set on GET /metrics
type metricsServer struct {
	listener net.Listener
	server   *http.Server
}

// startMetricsServer binds endpoint and serves the set in the background
func startMetricsServer(endpoint string, set *metrics.Set) (*metricsServer, error) {
	r := chi.NewRouter()
	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		set.WritePrometheus(w)
	})

	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to bind metrics endpoint: %v", err)
	}

	m := &metricsServer{listener: listener, server: &http.Server{Handler: r}}
	go func() {
		if err := m.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Errorf("Metrics server stopped: %v", err)
		}
	}()

	Logger.Infof("Serving metrics on http://%s/metrics", listener.Addr())
	return m, nil
}

func (m *metricsServer) Close() error {
	return m.server.Close()
}
