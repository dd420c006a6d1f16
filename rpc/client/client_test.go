package client

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ValentinKolb/cbench/lib/codec"
	"github.com/ValentinKolb/cbench/lib/record"
	"github.com/ValentinKolb/cbench/lib/schema"
	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport answers every request with reply (or err) after delay
type fakeTransport struct {
	reply     func(req []byte) ([]byte, error)
	delay     time.Duration
	sent      atomic.Int32
	connected bool
	connErr   error
}

func (f *fakeTransport) Connect(common.ClientConfig) error {
	f.connected = f.connErr == nil
	return f.connErr
}

func (f *fakeTransport) Send(ctx context.Context, method uint32, req []byte) ([]byte, error) {
	f.sent.Add(1)
	if common.MethodID(method) != common.MethodSendEmployees {
		return nil, errors.New("unexpected method")
	}
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, errors.Join(common.ErrTransport, ctx.Err())
	}
	return f.reply(req)
}

func (f *fakeTransport) Close() error { return nil }

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Default()
	require.NoError(t, err)
	return s
}

// countingReply acknowledges the number of records in the request like the server does
func countingReply(t *testing.T, s *schema.Schema) func([]byte) ([]byte, error) {
	return func(req []byte) ([]byte, error) {
		n, err := codec.CountRecords(s, req)
		if err != nil {
			return nil, err
		}
		return common.MarshalAck(s, common.Ack{Ok: true, Received: n})
	}
}

func newTestClient(t *testing.T, ft *fakeTransport) IEmployeeClient {
	t.Helper()
	c, err := NewEmployeeClient(common.ClientConfig{Endpoint: "fake"}, ft, testSchema(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSendEmployeesAck(t *testing.T) {
	s := testSchema(t)
	ft := &fakeTransport{reply: countingReply(t, s), delay: 10 * time.Millisecond}
	c := newTestClient(t, ft)

	batch := record.Sample()
	call := c.SendEmployees(context.Background(), batch)

	ack, err := call.Wait()
	require.NoError(t, err)
	assert.Equal(t, common.Ack{Ok: true, Received: 3}, ack)
	assert.Equal(t, CallDone, call.State())
	assert.GreaterOrEqual(t, call.Elapsed(), 10*time.Millisecond)
	assert.Equal(t, int32(1), ft.sent.Load())
	assert.Equal(t, record.Sample(), batch)
}

func TestSendEmployeesEmptyBatch(t *testing.T) {
	s := testSchema(t)
	c := newTestClient(t, &fakeTransport{reply: countingReply(t, s)})

	ack, err := c.SendEmployees(context.Background(), record.Batch{}).Wait()
	require.NoError(t, err)
	assert.Equal(t, common.Ack{Ok: true, Received: 0}, ack)
}

func TestSendEmployeesValidationError(t *testing.T) {
	s := testSchema(t)
	ft := &fakeTransport{reply: countingReply(t, s)}
	c := newTestClient(t, ft)

	batch := record.Sample()
	batch[1].Salary = math.NaN()

	call := c.SendEmployees(context.Background(), batch)
	_, err := call.Wait()
	require.ErrorIs(t, err, codec.ErrValidation)
	assert.Equal(t, CallFailed, call.State())
	assert.Zero(t, ft.sent.Load(), "nothing is sent for an invalid batch")
}

func TestSendEmployeesTransportError(t *testing.T) {
	ft := &fakeTransport{reply: func([]byte) ([]byte, error) {
		return nil, common.ErrTransport
	}}
	c := newTestClient(t, ft)

	call := c.SendEmployees(context.Background(), record.Sample())
	_, err := call.Wait()
	require.ErrorIs(t, err, common.ErrTransport)
	assert.Equal(t, CallFailed, call.State())
	assert.Equal(t, int32(1), ft.sent.Load(), "failed calls are not retried")
}

func TestSendEmployeesInvalidReply(t *testing.T) {
	c := newTestClient(t, &fakeTransport{reply: func([]byte) ([]byte, error) {
		return []byte{0xFF, 0xFF, 0xFF}, nil
	}})

	_, err := c.SendEmployees(context.Background(), record.Sample()).Wait()
	require.ErrorIs(t, err, common.ErrTransport)
}

func TestSendEmployeesContextCanceled(t *testing.T) {
	s := testSchema(t)
	c := newTestClient(t, &fakeTransport{reply: countingReply(t, s), delay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	call := c.SendEmployees(ctx, record.Sample())
	assert.Equal(t, CallAwaitingReply, call.State())

	cancel()
	_, err := call.Wait()
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, CallFailed, call.State())
}

func TestNewEmployeeClientConnectError(t *testing.T) {
	_, err := NewEmployeeClient(common.ClientConfig{}, &fakeTransport{connErr: common.ErrTransport}, testSchema(t))
	require.ErrorIs(t, err, common.ErrTransport)
}

// --------------------------------------------------------------------------
// Call
// --------------------------------------------------------------------------

func TestCallLifecycle(t *testing.T) {
	call := newCall()
	assert.Equal(t, CallIdle, call.State())
	assert.Zero(t, call.Elapsed())

	// cannot resolve before it was started
	assert.False(t, call.resolve(common.Ack{Ok: true}, nil, time.Second))

	require.True(t, call.start())
	assert.Equal(t, CallAwaitingReply, call.State())
	assert.False(t, call.start())

	select {
	case <-call.Done():
		t.Fatal("call resolved too early")
	default:
	}

	require.True(t, call.resolve(common.Ack{Ok: true, Received: 2}, nil, time.Second))
	<-call.Done()
	assert.Equal(t, CallDone, call.State())
	assert.Equal(t, time.Second, call.Elapsed())

	// the first result wins
	assert.False(t, call.resolve(common.Ack{}, errors.New("late"), time.Minute))
	ack, err := call.Wait()
	require.NoError(t, err)
	assert.Equal(t, 2, ack.Received)
	assert.Equal(t, CallDone, call.State())
}

func TestCallStateString(t *testing.T) {
	assert.Equal(t, "Idle", CallIdle.String())
	assert.Equal(t, "AwaitingReply", CallAwaitingReply.String())
	assert.Equal(t, "Done", CallDone.String())
	assert.Equal(t, "Failed", CallFailed.String())
	assert.Equal(t, "Unknown(9)", CallState(9).String())
}
