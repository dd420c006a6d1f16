// Package client implements the RPC client for SendEmployees.
//
// A client is created with NewEmployeeClient, which connects the given transport.
// SendEmployees validates and encodes the batch with the proto codec, sends it as
// exactly one request and returns a Call right away. The Call is a future that is
// resolved exactly once:
//
//	call := c.SendEmployees(ctx, batch)
//	ack, err := call.Wait()
//	fmt.Println(ack.Received, call.Elapsed())
//
// A call never waits longer than the configured TimeoutSecond, with the default of
// zero it waits until the reply arrives, the context is canceled or the connection
// breaks. Failed calls are not retried.
package client
