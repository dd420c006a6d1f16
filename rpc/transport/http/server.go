package http

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/ValentinKolb/cbench/rpc/transport"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("transport/rpc")

// RoutePrefix is the path prefix of every rpc route, the method name follows it
const RoutePrefix = "/rpc/"

// NewHttpServerTransport creates a server transport that serves POST /rpc/{method}
func NewHttpServerTransport() transport.IRPCServerTransport {
	return &httpServerTransport{}
}

type httpServerTransport struct {
	handler  transport.ServerHandleFunc
	config   common.ServerConfig
	listener net.Listener
	server   *http.Server
	closed   atomic.Bool
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *httpServerTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *httpServerTransport) Bind(config common.ServerConfig) error {
	if t.listener != nil {
		return fmt.Errorf("http transport already bound to %s", t.listener.Addr())
	}
	t.config = config

	listener, err := net.Listen("tcp", config.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to create listener: %v", err)
	}
	t.listener = listener

	timeout := time.Duration(config.TimeoutSecond) * time.Second
	t.server = &http.Server{
		Handler:      t.router(),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	return nil
}

func (t *httpServerTransport) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *httpServerTransport) Serve() error {
	if t.listener == nil {
		return fmt.Errorf("http transport is not bound")
	}
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}

	Logger.Infof("Starting HTTP server on %s", t.listener.Addr())

	err := t.server.Serve(t.listener)
	if errors.Is(err, http.ErrServerClosed) || t.closed.Load() {
		return nil
	}
	return err
}

func (t *httpServerTransport) Listen(config common.ServerConfig) error {
	if err := t.Bind(config); err != nil {
		return err
	}
	return t.Serve()
}

func (t *httpServerTransport) Close() error {
	if !t.closed.CompareAndSwap(false, true) || t.server == nil {
		return nil
	}
	return t.server.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// router creates the chi router serving the rpc routes
func (t *httpServerTransport) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if t.config.LogLevel == "debug" {
		r.Use(loggerMiddleware)
	}
	r.Post(RoutePrefix+"{method}", t.handleRequest)
	return r
}

// handleRequest handles incoming HTTP requests and writes the response to the writer
func (t *httpServerTransport) handleRequest(w http.ResponseWriter, r *http.Request) {
	method, err := common.ParseMethod(chi.URLParam(r, "method"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	// Read request body
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	resp, err := t.handler(uint32(method), body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err = w.Write(resp); err != nil {
		Logger.Errorf("Failed to write response: %v", err)
	}
}

// --------------------------------------------------------------------------
// Middleware (logging)
// --------------------------------------------------------------------------

// loggerMiddleware is a middleware that logs HTTP requests
func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap the writer to capture the status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		Logger.Debugf("%s %s => %d (%d bytes) took %s", r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start))
	})
}
