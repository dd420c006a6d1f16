package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ValentinKolb/cbench/lib/record"
)

// NewJSONCodec creates a new codec using json encoding.
// indent is the number of spaces per nesting level, 0 produces compact output.
func NewJSONCodec(indent int) (ICodec, error) {
	if indent < 0 {
		return nil, fmt.Errorf("%w: json indent must not be negative, got %d", ErrInvalidParameter, indent)
	}
	return &jsonCodecImpl{indent: strings.Repeat(" ", indent)}, nil
}

// jsonCodecImpl implements the ICodec interface using json encoding
type jsonCodecImpl struct {
	indent string
}

// jsonDocument is the artifact shape: {"employee": [...]}
type jsonDocument struct {
	Employee record.Batch `json:"employee"`
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (j *jsonCodecImpl) Name() string {
	if j.indent == "" {
		return FormatJSON
	}
	return fmt.Sprintf("%s-indent%d", FormatJSON, len(j.indent))
}

func (j *jsonCodecImpl) Format() string {
	return FormatJSON
}

func (j *jsonCodecImpl) Encode(batch record.Batch) (Artifact, error) {
	doc := jsonDocument{Employee: batch}
	if doc.Employee == nil {
		doc.Employee = record.Batch{}
	}

	var data []byte
	var err error
	if j.indent == "" {
		data, err = json.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", j.indent)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("json encode: %w", err)
	}

	return Artifact{Format: FormatJSON, Data: data}, nil
}

func (j *jsonCodecImpl) Decode(artifact Artifact) (record.Batch, error) {
	if err := checkFormat(artifact, FormatJSON); err != nil {
		return nil, err
	}

	var doc jsonDocument
	if err := json.Unmarshal(artifact.Data, &doc); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrMalformedArtifact, err)
	}
	return doc.Employee, nil
}

// checkFormat rejects artifacts produced by a different format
func checkFormat(artifact Artifact, format string) error {
	if artifact.Format != format {
		return fmt.Errorf("%w: expected %s artifact, got %q", ErrMalformedArtifact, format, artifact.Format)
	}
	return nil
}
