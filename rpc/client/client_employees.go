package client

import (
	"context"
	"fmt"
	"time"

	"github.com/ValentinKolb/cbench/lib/codec"
	"github.com/ValentinKolb/cbench/lib/record"
	"github.com/ValentinKolb/cbench/lib/schema"
	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/ValentinKolb/cbench/rpc/transport"
)

// IEmployeeClient sends batches of employee records to the server
type IEmployeeClient interface {
	// SendEmployees sends the batch as exactly one request and returns immediately.
	// The returned Call resolves with the server's Ack, or with an error if the batch
	// does not fit the schema (codec.ErrValidation) or the call fails (common.ErrTransport).
	// The batch is not modified and nothing is retried.
	SendEmployees(ctx context.Context, batch record.Batch) *Call
	// Close closes the underlying transport
	Close() error
}

// NewEmployeeClient connects the transport and returns a client for SendEmployees
func NewEmployeeClient(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	schema *schema.Schema,
) (IEmployeeClient, error) {
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &employeeClient{
		rpcClientAdapter: rpcClientAdapter{
			config:    config,
			transport: transport,
		},
		schema: schema,
		codec:  codec.NewProtoCodec(schema),
	}, nil
}

type employeeClient struct {
	rpcClientAdapter
	schema *schema.Schema
	codec  codec.ICodec
}

// --------------------------------------------------------------------------
// Interface Methods (docu see client.IEmployeeClient)
// --------------------------------------------------------------------------

func (c *employeeClient) SendEmployees(ctx context.Context, batch record.Batch) *Call {
	call := newCall()
	call.start()

	go func() {
		start := time.Now()
		ack, err := c.sendEmployees(ctx, batch)
		elapsed := time.Since(start)
		call.resolve(ack, err, elapsed)
	}()

	return call
}

func (c *employeeClient) Close() error {
	return c.transport.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (c *employeeClient) sendEmployees(ctx context.Context, batch record.Batch) (common.Ack, error) {
	artifact, err := c.codec.Encode(batch)
	if err != nil {
		return common.Ack{}, err
	}

	resp, err := invokeRPCRequest(ctx, common.MethodSendEmployees, artifact.Data, c.transport)
	if err != nil {
		return common.Ack{}, err
	}

	ack, err := common.UnmarshalAck(c.schema, resp)
	if err != nil {
		return common.Ack{}, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	return ack, nil
}
