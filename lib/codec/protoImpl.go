package codec

import (
	"bytes"
	"fmt"

	"github.com/ValentinKolb/cbench/lib/record"
	"github.com/ValentinKolb/cbench/lib/schema"
	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// NewProtoCodec creates a new codec using protobuf encoding driven by the given schema.
// Artifacts are size-delimited: a varint length prefix followed by the batch message.
func NewProtoCodec(s *schema.Schema) ICodec {
	return &protoCodecImpl{schema: s}
}

// protoCodecImpl implements the ICodec interface using protobuf encoding
type protoCodecImpl struct {
	schema *schema.Schema
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (p *protoCodecImpl) Name() string {
	return FormatProto
}

func (p *protoCodecImpl) Format() string {
	return FormatProto
}

func (p *protoCodecImpl) Encode(batch record.Batch) (Artifact, error) {
	if err := p.schema.Validate(batch); err != nil {
		return Artifact{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var buf bytes.Buffer
	if _, err := protodelim.MarshalTo(&buf, ToMessage(p.schema, batch)); err != nil {
		return Artifact{}, fmt.Errorf("proto encode: %w", err)
	}

	return Artifact{Format: FormatProto, Data: buf.Bytes()}, nil
}

func (p *protoCodecImpl) Decode(artifact Artifact) (record.Batch, error) {
	if err := checkFormat(artifact, FormatProto); err != nil {
		return nil, err
	}

	msg, err := unmarshalDelimited(p.schema, artifact.Data)
	if err != nil {
		return nil, err
	}
	return FromMessage(p.schema, msg), nil
}

// --------------------------------------------------------------------------
// Message Conversion
// --------------------------------------------------------------------------

// CountRecords returns the number of records in a size-delimited batch message
// without converting them. An empty payload counts as zero records.
func CountRecords(s *schema.Schema, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	msg, err := unmarshalDelimited(s, data)
	if err != nil {
		return 0, err
	}
	return msg.Get(s.ListField()).List().Len(), nil
}

// unmarshalDelimited parses exactly one size-delimited batch message.
// A missing prefix, a short payload and trailing bytes are all malformed.
func unmarshalDelimited(s *schema.Schema, data []byte) (*dynamicpb.Message, error) {
	r := bytes.NewReader(data)
	msg := s.NewBatch()
	if err := protodelim.UnmarshalFrom(r, msg); err != nil {
		return nil, fmt.Errorf("%w: proto: %v", ErrMalformedArtifact, err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: proto: %d trailing bytes", ErrMalformedArtifact, r.Len())
	}
	return msg, nil
}

// ToMessage converts a batch into a dynamic batch message of the schema.
// The batch is expected to have passed schema validation.
func ToMessage(s *schema.Schema, batch record.Batch) *dynamicpb.Message {
	msg := s.NewBatch()
	if len(batch) == 0 {
		return msg
	}

	f := s.Fields()
	list := msg.Mutable(s.ListField()).List()
	for _, r := range batch {
		elem := list.NewElement()
		m := elem.Message()
		m.Set(f.ID, schema.IntValue(f.ID, r.ID))
		m.Set(f.Name, protoreflect.ValueOfString(r.Name))
		m.Set(f.Salary, schema.NumberValue(f.Salary, r.Salary))
		m.Set(f.Email, protoreflect.ValueOfString(r.Email))
		m.Set(f.HireDate, protoreflect.ValueOfString(r.HireDate))
		m.Set(f.Position, protoreflect.ValueOfString(r.Position))
		m.Set(f.Department, protoreflect.ValueOfString(r.Department))
		m.Set(f.Active, protoreflect.ValueOfBool(r.Active))
		list.Append(elem)
	}
	return msg
}

// FromMessage converts a dynamic batch message back into a batch
func FromMessage(s *schema.Schema, msg protoreflect.Message) record.Batch {
	f := s.Fields()
	list := msg.Get(s.ListField()).List()

	out := make(record.Batch, list.Len())
	for i := range out {
		m := list.Get(i).Message()
		out[i] = record.Record{
			ID:         schema.IntOf(f.ID, m.Get(f.ID)),
			Name:       m.Get(f.Name).String(),
			Salary:     schema.NumberOf(f.Salary, m.Get(f.Salary)),
			Email:      m.Get(f.Email).String(),
			HireDate:   m.Get(f.HireDate).String(),
			Position:   m.Get(f.Position).String(),
			Department: m.Get(f.Department).String(),
			Active:     m.Get(f.Active).Bool(),
		}
	}
	return out
}
