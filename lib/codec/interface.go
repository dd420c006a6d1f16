package codec

import (
	"errors"

	"github.com/ValentinKolb/cbench/lib/record"
)

// Artifact formats. Every codec tags its artifacts with one of these.
const (
	FormatJSON  = "json"
	FormatXML   = "xml"
	FormatProto = "proto"
)

var (
	// ErrMalformedArtifact is returned by Decode if the input does not parse as the expected format
	ErrMalformedArtifact = errors.New("malformed artifact")
	// ErrValidation is returned by Encode if a batch does not conform to the schema
	// or contains text the format cannot represent
	ErrValidation = errors.New("validation error")
	// ErrInvalidParameter is returned by codec factories for unusable options
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ICodec is the interface for all batch codecs
type ICodec interface {
	// Name returns a unique label for this codec instance (e.g. "json-indent2")
	Name() string
	// Format returns the artifact format this codec produces and accepts
	Format() string
	// Encode serializes a batch into an artifact
	// It returns the artifact and an error if any
	Encode(batch record.Batch) (Artifact, error)
	// Decode deserializes an artifact into a new batch
	// It returns an error wrapping ErrMalformedArtifact if the data does not parse
	Decode(artifact Artifact) (record.Batch, error)
}

// Artifact is the output of an encode operation, tagged with its format
type Artifact struct {
	Format string
	Data   []byte
}

// NewArtifact wraps raw data (e.g. read back from storage) as an artifact of the given format
func NewArtifact(format string, data []byte) Artifact {
	return Artifact{Format: format, Data: data}
}

// Size returns the size of the artifact in bytes
func (a Artifact) Size() int {
	return len(a.Data)
}

// IsText reports whether the artifact is a text sequence rather than raw bytes
func (a Artifact) IsText() bool {
	return a.Format == FormatJSON || a.Format == FormatXML
}

// Extension returns the file extension conventionally used for the format
func (a Artifact) Extension() string {
	switch a.Format {
	case FormatJSON:
		return ".json"
	case FormatXML:
		return ".xml"
	default:
		return ".bin"
	}
}
