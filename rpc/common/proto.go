package common

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/cbench/lib/schema"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

var (
	// ErrTransport is returned by the client if a call could not complete
	ErrTransport = errors.New("transport error")
	// ErrRemote is returned (together with ErrTransport) if the server answered with an error
	ErrRemote = errors.New("remote error")
	// ErrUnknownMethod is returned by the server for a method id it does not serve
	ErrUnknownMethod = errors.New("unknown method")
)

// --------------------------------------------------------------------------
// Methods
// --------------------------------------------------------------------------

// MethodID identifies the remote procedure of a request frame
type MethodID uint32

const (
	MethodUnknown MethodID = iota
	// MethodSendEmployees carries a size-delimited batch and is answered with an Ack
	MethodSendEmployees
)

func (m MethodID) String() string {
	switch m {
	case MethodSendEmployees:
		return schema.MethodName
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(m))
	}
}

// ParseMethod returns the method id for a method name
func ParseMethod(name string) (MethodID, error) {
	if name == schema.MethodName {
		return MethodSendEmployees, nil
	}
	return MethodUnknown, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// --------------------------------------------------------------------------
// Reply Status
// --------------------------------------------------------------------------

// Status is carried in every reply frame
type Status uint32

const (
	// StatusOK means the payload is the encoded reply
	StatusOK Status = iota
	// StatusError means the payload is an error message
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(s))
	}
}

// --------------------------------------------------------------------------
// Acknowledgment
// --------------------------------------------------------------------------

// Ack is the reply of one SendEmployees call
type Ack struct {
	Ok       bool
	Received int
}

func (a Ack) String() string {
	return fmt.Sprintf("{ok: %v, received: %d}", a.Ok, a.Received)
}

// MarshalAck encodes an Ack as the acknowledgment message of the schema
func MarshalAck(s *schema.Schema, ack Ack) ([]byte, error) {
	f := s.AckFields()
	msg := s.NewAck()
	msg.Set(f.Ok, protoreflect.ValueOfBool(ack.Ok))
	msg.Set(f.Received, schema.IntValue(f.Received, int64(ack.Received)))

	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode ack: %w", err)
	}
	return data, nil
}

// UnmarshalAck decodes the acknowledgment message of the schema
func UnmarshalAck(s *schema.Schema, data []byte) (Ack, error) {
	msg := s.NewAck()
	if err := proto.Unmarshal(data, msg); err != nil {
		return Ack{}, fmt.Errorf("decode ack: %w", err)
	}

	f := s.AckFields()
	return Ack{
		Ok:       msg.Get(f.Ok).Bool(),
		Received: int(schema.IntOf(f.Received, msg.Get(f.Received))),
	}, nil
}
