package server_test

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/ValentinKolb/cbench/lib/record"
	"github.com/ValentinKolb/cbench/lib/schema"
	"github.com/ValentinKolb/cbench/rpc/client"
	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/ValentinKolb/cbench/rpc/server"
	"github.com/ValentinKolb/cbench/rpc/transport"
	transportHttp "github.com/ValentinKolb/cbench/rpc/transport/http"
	"github.com/ValentinKolb/cbench/rpc/transport/tcp"
	"github.com/ValentinKolb/cbench/rpc/transport/unix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type transportPair struct {
	server   func() transport.IRPCServerTransport
	client   func() transport.IRPCClientTransport
	endpoint func(t *testing.T) string
}

func loopback(*testing.T) string { return "127.0.0.1:0" }

var transports = map[string]transportPair{
	"tcp": {tcp.NewTCPServerTransport, tcp.NewTCPClientTransport, loopback},
	"unix": {unix.NewUnixServerTransport, unix.NewUnixClientTransport, func(t *testing.T) string {
		return filepath.Join(t.TempDir(), "cbench.sock")
	}},
	"http": {transportHttp.NewHttpServerTransport, transportHttp.NewHttpClientTransport, loopback},
}

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Default()
	require.NoError(t, err)
	return s
}

// startServer binds a server and serves it in the background until the test ends
func startServer(t *testing.T, config common.ServerConfig, tp transportPair) *server.RPCServer {
	t.Helper()
	s := server.NewRPCServer(config, tp.server(), testSchema(t))
	require.NoError(t, s.Bind())

	served := make(chan error, 1)
	go func() { served <- s.Serve() }()

	t.Cleanup(func() {
		require.NoError(t, s.Close())
		require.NoError(t, <-served)
	})
	return s
}

func newClient(t *testing.T, tp transportPair, endpoint string) client.IEmployeeClient {
	t.Helper()
	c, err := client.NewEmployeeClient(common.ClientConfig{
		Endpoint: endpoint,
		Socket:   common.DefaultSocketConf(),
	}, tp.client(), testSchema(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSendEmployees(t *testing.T) {
	for name, tp := range transports {
		t.Run(name, func(t *testing.T) {
			s := startServer(t, common.ServerConfig{Endpoint: tp.endpoint(t), Socket: common.DefaultSocketConf()}, tp)
			c := newClient(t, tp, s.Addr().String())

			call := c.SendEmployees(context.Background(), record.Sample())
			ack, err := call.Wait()
			require.NoError(t, err)
			assert.Equal(t, common.Ack{Ok: true, Received: 3}, ack)
			assert.Greater(t, call.Elapsed(), time.Duration(0))
			assert.Equal(t, client.CallDone, call.State())

			// empty batch
			ack, err = c.SendEmployees(context.Background(), record.Batch{}).Wait()
			require.NoError(t, err)
			assert.Equal(t, common.Ack{Ok: true, Received: 0}, ack)
		})
	}
}

func TestSendEmployeesConcurrentClients(t *testing.T) {
	tp := transports["tcp"]
	s := startServer(t, common.ServerConfig{Endpoint: "127.0.0.1:0"}, tp)

	sizes := []int{2, 5, 0, 100, 1}
	received := make([]int, len(sizes))

	var g errgroup.Group
	for i, n := range sizes {
		c := newClient(t, tp, s.Addr().String())
		g.Go(func() error {
			ack, err := c.SendEmployees(context.Background(), record.Generate(n)).Wait()
			received[i] = ack.Received
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, sizes, received)
}

func TestSendEmployeesSharedClient(t *testing.T) {
	tp := transports["tcp"]
	s := startServer(t, common.ServerConfig{Endpoint: "127.0.0.1:0", MaxWorkersPerConn: 4}, tp)
	c := newClient(t, tp, s.Addr().String())

	calls := make([]*client.Call, 20)
	for i := range calls {
		calls[i] = c.SendEmployees(context.Background(), record.Generate(i))
	}
	for i, call := range calls {
		ack, err := call.Wait()
		require.NoError(t, err)
		assert.Equal(t, i, ack.Received)
	}
}

func TestUndecodablePayload(t *testing.T) {
	for name, tp := range transports {
		t.Run(name, func(t *testing.T) {
			s := startServer(t, common.ServerConfig{Endpoint: tp.endpoint(t)}, tp)

			raw := tp.client()
			require.NoError(t, raw.Connect(common.ClientConfig{Endpoint: s.Addr().String()}))
			defer raw.Close()

			// length prefix announces more bytes than follow
			_, err := raw.Send(context.Background(), uint32(common.MethodSendEmployees), []byte{0x10, 0x01})
			require.ErrorIs(t, err, common.ErrTransport)
			require.ErrorIs(t, err, common.ErrRemote)

			// the server keeps serving
			c := newClient(t, tp, s.Addr().String())
			ack, err := c.SendEmployees(context.Background(), record.Sample()).Wait()
			require.NoError(t, err)
			assert.Equal(t, 3, ack.Received)
		})
	}
}

func TestUnknownMethod(t *testing.T) {
	tp := transports["tcp"]
	s := startServer(t, common.ServerConfig{Endpoint: "127.0.0.1:0"}, tp)

	raw := tp.client()
	require.NoError(t, raw.Connect(common.ClientConfig{Endpoint: s.Addr().String()}))
	defer raw.Close()

	_, err := raw.Send(context.Background(), 99, nil)
	require.ErrorIs(t, err, common.ErrRemote)
	assert.Contains(t, err.Error(), common.ErrUnknownMethod.Error())
}

func TestConnectionRefused(t *testing.T) {
	tp := transports["tcp"]
	s := server.NewRPCServer(common.ServerConfig{Endpoint: "127.0.0.1:0"}, tp.server(), testSchema(t))
	require.NoError(t, s.Bind())
	addr := s.Addr().String()
	require.NoError(t, s.Close())

	_, err := client.NewEmployeeClient(common.ClientConfig{Endpoint: addr}, tp.client(), testSchema(t))
	require.ErrorIs(t, err, common.ErrTransport)
}

func TestMetricsEndpoint(t *testing.T) {
	tp := transports["tcp"]
	s := startServer(t, common.ServerConfig{Endpoint: "127.0.0.1:0", MetricsEndpoint: "127.0.0.1:0"}, tp)
	require.NotNil(t, s.MetricsAddr())

	c := newClient(t, tp, s.Addr().String())
	_, err := c.SendEmployees(context.Background(), record.Sample()).Wait()
	require.NoError(t, err)

	resp, err := http.Get("http://" + s.MetricsAddr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "cbench_rpc_requests_total 1")
	assert.Contains(t, string(body), "cbench_rpc_records_total 3")
	assert.Contains(t, string(body), "cbench_rpc_errors_total 0")
}

func TestMetricsDisabled(t *testing.T) {
	s := startServer(t, common.ServerConfig{Endpoint: "127.0.0.1:0"}, transports["tcp"])
	assert.Nil(t, s.MetricsAddr())
}
