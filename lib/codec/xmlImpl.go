package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ValentinKolb/cbench/lib/record"
)

// rootElement is the name of the single container element wrapping all records
const rootElement = "root"

// NewXMLCodec creates a new codec using xml encoding
func NewXMLCodec() ICodec {
	return &xmlCodecImpl{}
}

// xmlCodecImpl implements the ICodec interface using xml encoding
type xmlCodecImpl struct {
}

// xmlDocument is the artifact shape: <root><employee>...</employee>...</root>
type xmlDocument struct {
	XMLName  xml.Name     `xml:"root"`
	Employee record.Batch `xml:"employee"`
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (x *xmlCodecImpl) Name() string {
	return FormatXML
}

func (x *xmlCodecImpl) Format() string {
	return FormatXML
}

func (x *xmlCodecImpl) Encode(batch record.Batch) (Artifact, error) {
	// encoding/xml silently replaces characters xml cannot carry
	for i, r := range batch {
		for _, f := range []struct{ name, v string }{
			{"name", r.Name},
			{"email", r.Email},
			{"hireDate", r.HireDate},
			{"position", r.Position},
			{"department", r.Department},
		} {
			if err := checkXMLText(f.v); err != nil {
				return Artifact{}, fmt.Errorf("%w: record %d: field %s: %v", ErrValidation, i, f.name, err)
			}
		}
	}

	data, err := xml.Marshal(xmlDocument{Employee: batch})
	if err != nil {
		return Artifact{}, fmt.Errorf("xml encode: %w", err)
	}
	return Artifact{Format: FormatXML, Data: data}, nil
}

func (x *xmlCodecImpl) Decode(artifact Artifact) (record.Batch, error) {
	if err := checkFormat(artifact, FormatXML); err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(bytes.NewReader(artifact.Data))

	var doc xmlDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: xml: missing <%s> element", ErrMalformedArtifact, rootElement)
		}
		return nil, fmt.Errorf("%w: xml: %v", ErrMalformedArtifact, err)
	}

	// only whitespace, comments and processing instructions may follow the root
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: xml: %v", ErrMalformedArtifact, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
		case xml.Comment, xml.ProcInst:
			continue
		}
		return nil, fmt.Errorf("%w: xml: unexpected content after </%s>", ErrMalformedArtifact, rootElement)
	}

	return doc.Employee, nil
}

// checkXMLText reports whether s consists only of characters allowed in xml 1.0 text
func checkXMLText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("string is not valid UTF-8")
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("character %U cannot be represented in xml", r)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
