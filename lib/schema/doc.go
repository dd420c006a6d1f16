// Package schema loads the externally supplied protobuf schema that drives the
// schema-binary codec and the RPC payloads.
//
// A schema is a FileDescriptorSet, either in protobuf text format (.txtpb,
// .textproto, .pbtxt) or in binary form as written by `protoc -o`. It must
// declare a service with a SendEmployees method. The method's input is the
// batch message, which holds exactly one repeated record field, and its output
// is the acknowledgment message.
//
// The loaded *Schema is an immutable handle. It is constructed once at startup
// and passed explicitly to every component that needs it. A schema that cannot
// be read or does not have the expected shape yields ErrSchemaLoad.
//
// Validate checks a record batch against the declared field kinds before it is
// converted to its binary form. Values that do not fit the declared type (for
// example an id outside the int32 range) yield ErrValidation.
package schema
