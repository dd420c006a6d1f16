package client

import (
	"context"

	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/ValentinKolb/cbench/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("rpc")
)

// rpcClientAdapter stores everything a client for one method needs
type rpcClientAdapter struct {
	config    common.ClientConfig
	transport transport.IRPCClientTransport
}

// invokeRPCRequest sends one request and returns the raw reply.
// Transport failures and error replies are already wrapped in common.ErrTransport.
func invokeRPCRequest(ctx context.Context, method common.MethodID, req []byte, transport transport.IRPCClientTransport) ([]byte, error) {
	resp, err := transport.Send(ctx, uint32(method), req)
	if err != nil {
		Logger.Debugf("%s failed: %v", method, err)
		return nil, err
	}
	return resp, nil
}
