package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// MethodName is the name of the single RPC method the schema must declare
const MethodName = "SendEmployees"

var (
	// ErrSchemaLoad is returned if a schema cannot be read or has the wrong shape
	ErrSchemaLoad = errors.New("schema load error")
	// ErrValidation is returned if a batch does not conform to the schema
	ErrValidation = errors.New("validation error")
)

//go:embed employee.txtpb
var defaultSchema []byte

// RecordFields holds the field descriptors of the record message
type RecordFields struct {
	ID         protoreflect.FieldDescriptor
	Name       protoreflect.FieldDescriptor
	Salary     protoreflect.FieldDescriptor
	Email      protoreflect.FieldDescriptor
	HireDate   protoreflect.FieldDescriptor
	Position   protoreflect.FieldDescriptor
	Department protoreflect.FieldDescriptor
	Active     protoreflect.FieldDescriptor
}

// AckFields holds the field descriptors of the acknowledgment message
type AckFields struct {
	Ok       protoreflect.FieldDescriptor
	Received protoreflect.FieldDescriptor
}

// Schema is the read-only handle to a loaded schema
type Schema struct {
	source    string
	method    protoreflect.MethodDescriptor
	batch     protoreflect.MessageDescriptor
	record    protoreflect.MessageDescriptor
	ack       protoreflect.MessageDescriptor
	listField protoreflect.FieldDescriptor
	fields    RecordFields
	ackFields AckFields
}

// --------------------------------------------------------------------------
// Loading
// --------------------------------------------------------------------------

// Default returns the built-in employee schema
func Default() (*Schema, error) {
	return Parse("employee.txtpb", defaultSchema)
}

// Load reads a schema from a descriptor set file
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaLoad, err)
	}
	return Parse(path, data)
}

// Parse builds a schema from the raw contents of a descriptor set.
// The name is used to pick the encoding (by extension) and in error messages.
func Parse(name string, data []byte) (*Schema, error) {
	set := &descriptorpb.FileDescriptorSet{}

	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txtpb", ".textproto", ".pbtxt":
		err = prototext.Unmarshal(data, set)
	default:
		err = proto.Unmarshal(data, set)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaLoad, name, err)
	}

	files, err := protodesc.NewFiles(set)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaLoad, name, err)
	}

	s := &Schema{source: name}
	if err := s.resolve(files); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaLoad, name, err)
	}
	return s, nil
}

// resolve locates the method, messages and fields the rest of the system relies on
func (s *Schema) resolve(files *protoregistry.Files) error {
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		services := fd.Services()
		for i := 0; i < services.Len(); i++ {
			if m := services.Get(i).Methods().ByName(MethodName); m != nil {
				s.method = m
				return false
			}
		}
		return true
	})
	if s.method == nil {
		return fmt.Errorf("no service declares method %s", MethodName)
	}
	if s.method.IsStreamingClient() || s.method.IsStreamingServer() {
		return fmt.Errorf("method %s must be unary", s.method.FullName())
	}

	s.batch = s.method.Input()
	s.ack = s.method.Output()

	// the batch message holds exactly one repeated record field
	if s.batch.Fields().Len() != 1 {
		return fmt.Errorf("batch message %s must have exactly one field, has %d", s.batch.FullName(), s.batch.Fields().Len())
	}
	s.listField = s.batch.Fields().Get(0)
	if !s.listField.IsList() || s.listField.Kind() != protoreflect.MessageKind {
		return fmt.Errorf("field %s must be a repeated message", s.listField.FullName())
	}
	s.record = s.listField.Message()

	var err error
	if s.fields, err = recordFields(s.record); err != nil {
		return err
	}
	if s.ackFields.Ok, err = field(s.ack, "ok", "ok", isBool); err != nil {
		return err
	}
	s.ackFields.Received, err = field(s.ack, "received", "received", isInteger)
	return err
}

// recordFields resolves all eight record fields
func recordFields(md protoreflect.MessageDescriptor) (RecordFields, error) {
	var f RecordFields
	specs := []struct {
		dst   *protoreflect.FieldDescriptor
		snake string
		camel string
		ok    func(protoreflect.Kind) bool
	}{
		{&f.ID, "id", "id", isInteger},
		{&f.Name, "name", "name", isString},
		{&f.Salary, "salary", "salary", isNumeric},
		{&f.Email, "email", "email", isString},
		{&f.HireDate, "hire_date", "hireDate", isString},
		{&f.Position, "position", "position", isString},
		{&f.Department, "department", "department", isString},
		{&f.Active, "active", "active", isBool},
	}
	for _, spec := range specs {
		fd, err := field(md, spec.snake, spec.camel, spec.ok)
		if err != nil {
			return f, err
		}
		*spec.dst = fd
	}
	return f, nil
}

// field looks up a singular field by proto name or JSON name and checks its kind
func field(md protoreflect.MessageDescriptor, snake, camel string, ok func(protoreflect.Kind) bool) (protoreflect.FieldDescriptor, error) {
	fd := md.Fields().ByName(protoreflect.Name(snake))
	if fd == nil {
		fd = md.Fields().ByJSONName(camel)
	}
	if fd == nil {
		return nil, fmt.Errorf("message %s has no field %s", md.FullName(), snake)
	}
	if fd.IsList() || fd.IsMap() {
		return nil, fmt.Errorf("field %s must be singular", fd.FullName())
	}
	if !ok(fd.Kind()) {
		return nil, fmt.Errorf("field %s has unsupported kind %s", fd.FullName(), fd.Kind())
	}
	return fd, nil
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// Source returns the name the schema was loaded from
func (s *Schema) Source() string { return s.source }

// Method returns the descriptor of the SendEmployees method
func (s *Schema) Method() protoreflect.MethodDescriptor { return s.method }

// Batch returns the descriptor of the batch message
func (s *Schema) Batch() protoreflect.MessageDescriptor { return s.batch }

// Record returns the descriptor of the record message
func (s *Schema) Record() protoreflect.MessageDescriptor { return s.record }

// Ack returns the descriptor of the acknowledgment message
func (s *Schema) Ack() protoreflect.MessageDescriptor { return s.ack }

// ListField returns the repeated record field of the batch message
func (s *Schema) ListField() protoreflect.FieldDescriptor { return s.listField }

// Fields returns the record field descriptors
func (s *Schema) Fields() RecordFields { return s.fields }

// AckFields returns the acknowledgment field descriptors
func (s *Schema) AckFields() AckFields { return s.ackFields }

// NewBatch returns an empty dynamic batch message
func (s *Schema) NewBatch() *dynamicpb.Message { return dynamicpb.NewMessage(s.batch) }

// NewAck returns an empty dynamic acknowledgment message
func (s *Schema) NewAck() *dynamicpb.Message { return dynamicpb.NewMessage(s.ack) }

// String returns a one-line description of the schema
func (s *Schema) String() string {
	return fmt.Sprintf("%s (%s: %s -> %s)", s.source, s.method.FullName(), s.batch.FullName(), s.ack.FullName())
}

// --------------------------------------------------------------------------
// Kind helpers
// --------------------------------------------------------------------------

func isInteger(k protoreflect.Kind) bool {
	switch k {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return true
	}
	return false
}

func isNumeric(k protoreflect.Kind) bool {
	return isInteger(k) || k == protoreflect.DoubleKind || k == protoreflect.FloatKind
}

func isString(k protoreflect.Kind) bool { return k == protoreflect.StringKind }

func isBool(k protoreflect.Kind) bool { return k == protoreflect.BoolKind }
