package server

import (
	"fmt"

	"github.com/ValentinKolb/cbench/lib/codec"
	"github.com/ValentinKolb/cbench/lib/schema"
	"github.com/ValentinKolb/cbench/rpc/common"
)

// NewEmployeesServerAdapter creates the adapter for SendEmployees. It counts the
// records of the size-delimited batch and acknowledges them, an empty payload
// counts as zero records.
func NewEmployeesServerAdapter(s *schema.Schema, m *serverMetrics) IRPCServerAdapter {
	return &employeesAdapter{schema: s, metrics: m}
}

type employeesAdapter struct {
	schema  *schema.Schema
	metrics *serverMetrics
}

// --------------------------------------------------------------------------
// Interface Methods (docu see server.IRPCServerAdapter)
// --------------------------------------------------------------------------

func (a *employeesAdapter) Handle(req []byte) ([]byte, error) {
	n, err := codec.CountRecords(a.schema, req)
	if err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}

	resp, err := common.MarshalAck(a.schema, common.Ack{Ok: true, Received: n})
	if err != nil {
		return nil, err
	}

	Logger.Debugf("Received %d employees (%d bytes)", n, len(req))
	a.metrics.records.Add(n)
	return resp, nil
}
