package base

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/ValentinKolb/cbench/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("transport/rpc")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.SocketConf) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// responseResult contains the result of a request
type responseResult struct {
	data []byte
	err  error
}

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector     IClientConnector
	config        common.ClientConfig
	conn          net.Conn
	writeMu       sync.Mutex // Protects writes to the connection
	requestChans  *xsync.MapOf[uint64, chan responseResult]
	nextRequestID atomic.Uint64
	closed        atomic.Bool
	done          chan struct{} // Closed when the reader goroutine exits
	readErr       error         // Set by the reader before done is closed
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IRPCClientTransport {
	return &clientTransport{
		connector:    connector,
		requestChans: xsync.NewMapOf[uint64, chan responseResult](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if config.Endpoint == "" {
		return fmt.Errorf("%w: no endpoint provided", common.ErrTransport)
	}
	if t.conn != nil {
		return fmt.Errorf("%w: already connected", common.ErrTransport)
	}
	t.config = config

	conn, err := t.connector.Connect(config.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: failed to connect to %s: %v", common.ErrTransport, config.Endpoint, err)
	}

	// Upgrade the connection with protocol-specific settings
	if err := t.connector.UpgradeConnection(conn, config.Socket); err != nil {
		conn.Close()
		return fmt.Errorf("%w: failed to upgrade connection to %s: %v", common.ErrTransport, config.Endpoint, err)
	}

	t.conn = conn
	t.done = make(chan struct{})
	go t.readResponses()

	Logger.Debugf("Connected to %s using %s transport", config.Endpoint, t.connector.GetName())
	return nil
}

func (t *clientTransport) Send(ctx context.Context, method uint32, req []byte) ([]byte, error) {
	if t.conn == nil {
		return nil, fmt.Errorf("%w: not connected", common.ErrTransport)
	}

	// Fail fast if the connection is already gone
	select {
	case <-t.done:
		return nil, t.readErr
	default:
	}

	// Generate a unique request ID and register the request
	requestID := t.nextRequestID.Add(1)
	respCh := make(chan responseResult, 1)
	t.requestChans.Store(requestID, respCh)
	defer t.requestChans.Delete(requestID)

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	// Lock the connection only for writing
	t.writeMu.Lock()
	if timeout > 0 {
		_ = t.conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	err := writeFrame(t.conn, frameHeader{method: method, status: uint32(common.StatusOK), requestID: requestID}, req)
	t.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %v", common.ErrTransport, err)
	}

	// Wait for the reply, there is no deadline unless a timeout is configured
	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case result := <-respCh:
		return result.data, result.err
	case <-t.done:
		// the reply may have arrived right before the connection went away
		select {
		case result := <-respCh:
			return result.data, result.err
		default:
			return nil, t.readErr
		}
	case <-timeoutCh:
		return nil, fmt.Errorf("%w: request timed out after %s", common.ErrTransport, timeout)
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", common.ErrTransport, ctx.Err())
	}
}

func (t *clientTransport) Close() error {
	if t.conn == nil || !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := t.conn.Close()
	<-t.done
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// readResponses reads responses in a loop and distributes them to waiting requests
func (t *clientTransport) readResponses() {
	defer close(t.done)

	for {
		h, data, err := readFrame(t.conn, nil)
		if err != nil {
			if t.closed.Load() || errors.Is(err, net.ErrClosed) {
				t.readErr = fmt.Errorf("%w: connection closed", common.ErrTransport)
			} else {
				Logger.Errorf("Error reading response from %s: %v", t.config.Endpoint, err)
				t.readErr = fmt.Errorf("%w: error reading response: %v", common.ErrTransport, err)
			}
			return
		}

		// Find the corresponding request channel
		respCh, found := t.requestChans.Load(h.requestID)
		if !found {
			Logger.Warningf("Received response for unknown request ID %d (method %d)", h.requestID, h.method)
			continue
		}

		result := responseResult{data: data}
		if common.Status(h.status) != common.StatusOK {
			result = responseResult{err: fmt.Errorf("%w: %w: %s", common.ErrTransport, common.ErrRemote, data)}
		}

		select {
		case respCh <- result:
		default:
			Logger.Warningf("Dropped duplicate response for request ID %d", h.requestID)
		}
	}
}
