package client

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/cbench/rpc/common"
)

// CallState is the state of one call, it only moves forward:
// Idle -> AwaitingReply -> Done | Failed
type CallState int32

const (
	CallIdle CallState = iota
	CallAwaitingReply
	CallDone
	CallFailed
)

func (s CallState) String() string {
	switch s {
	case CallIdle:
		return "Idle"
	case CallAwaitingReply:
		return "AwaitingReply"
	case CallDone:
		return "Done"
	case CallFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(s))
	}
}

// Call is the pending reply of one request. It is resolved exactly once,
// either with an Ack or with an error.
type Call struct {
	state atomic.Int32
	done  chan struct{}

	// written once before done is closed
	ack     common.Ack
	err     error
	elapsed time.Duration
}

func newCall() *Call {
	return &Call{done: make(chan struct{})}
}

// Done returns a channel that is closed once the call is resolved
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the call is resolved and returns its result
func (c *Call) Wait() (common.Ack, error) {
	<-c.done
	return c.ack, c.err
}

// Elapsed returns the round-trip time, measured from just before the request was
// encoded until just after the reply arrived. It is zero while the call is pending.
func (c *Call) Elapsed() time.Duration {
	select {
	case <-c.done:
		return c.elapsed
	default:
		return 0
	}
}

// State returns the current state of the call
func (c *Call) State() CallState {
	return CallState(c.state.Load())
}

// start moves the call from Idle to AwaitingReply
func (c *Call) start() bool {
	return c.state.CompareAndSwap(int32(CallIdle), int32(CallAwaitingReply))
}

// resolve stores the result and wakes all waiters, later calls are ignored
func (c *Call) resolve(ack common.Ack, err error, elapsed time.Duration) bool {
	next := CallDone
	if err != nil {
		next = CallFailed
	}
	if !c.state.CompareAndSwap(int32(CallAwaitingReply), int32(next)) {
		return false
	}
	c.ack, c.err, c.elapsed = ack, err, elapsed
	close(c.done)
	return true
}
