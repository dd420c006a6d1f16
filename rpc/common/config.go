package common

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultEndpoint is the address the server binds to and the client calls by default
const DefaultEndpoint = "127.0.0.1:50051"

// --------------------------------------------------------------------------
// Socket configuration struct (shared by server and client)
// --------------------------------------------------------------------------

// SocketConf holds the socket options applied to every stream connection
type SocketConf struct {
	// TCPNoDelay disables Nagle's algorithm
	TCPNoDelay bool
	// TCPKeepAliveSec enables keep-alive with the given period, 0 disables it
	TCPKeepAliveSec int
	// TCPLingerSec sets SO_LINGER, a negative value keeps the system default
	TCPLingerSec int
	// WriteBufferSize and ReadBufferSize set the socket buffers, 0 keeps the system default
	WriteBufferSize int
	ReadBufferSize  int
}

// DefaultSocketConf returns the socket options used when nothing is configured
func DefaultSocketConf() SocketConf {
	return SocketConf{TCPNoDelay: true, TCPLingerSec: -1}
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters of the RPC server
type ServerConfig struct {
	// Endpoint is the address to bind to (host:port, or a socket path for unix)
	Endpoint string
	// TimeoutSecond is the per-frame read and write deadline, 0 disables it
	TimeoutSecond int64
	// MaxWorkersPerConn bounds the number of requests handled in parallel per connection
	MaxWorkersPerConn int
	// MetricsEndpoint is the address of the metrics http endpoint, empty disables it
	MetricsEndpoint string
	// LogLevel is one of debug, info, warn, error
	LogLevel string
	// Socket holds the socket options
	Socket SocketConf
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", formatTimeout(c.TimeoutSecond))
	addField("Workers Per Connection", strconv.Itoa(max(1, c.MaxWorkersPerConn)))

	// Metrics
	addSection("Metrics")
	if c.MetricsEndpoint == "" {
		addField("Endpoint", "disabled")
	} else {
		addField("Endpoint", c.MetricsEndpoint)
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	addSocketSection(addSection, addField, c.Socket)

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters of the RPC client
type ClientConfig struct {
	// Endpoint is the address of the server
	Endpoint string
	// TimeoutSecond bounds the wait for a reply, 0 waits forever
	TimeoutSecond int64
	// Socket holds the socket options
	Socket SocketConf
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", formatTimeout(c.TimeoutSecond))

	addSocketSection(addSection, addField, c.Socket)

	return sb.String()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func addSocketSection(addSection func(string), addField func(string, string), s SocketConf) {
	addSection("Socket")
	addField("TCP No Delay", strconv.FormatBool(s.TCPNoDelay))
	if s.TCPKeepAliveSec > 0 {
		addField("TCP Keep Alive", fmt.Sprintf("%d sec", s.TCPKeepAliveSec))
	}
	if s.TCPLingerSec >= 0 {
		addField("TCP Linger", fmt.Sprintf("%d sec", s.TCPLingerSec))
	}
	if s.WriteBufferSize > 0 {
		addField("Write Buffer", fmt.Sprintf("%d bytes", s.WriteBufferSize))
	}
	if s.ReadBufferSize > 0 {
		addField("Read Buffer", fmt.Sprintf("%d bytes", s.ReadBufferSize))
	}
}

func formatTimeout(sec int64) string {
	if sec <= 0 {
		return "none"
	}
	return fmt.Sprintf("%d sec", sec)
}
