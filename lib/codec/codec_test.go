package codec

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/ValentinKolb/cbench/lib/record"
	"github.com/ValentinKolb/cbench/lib/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// testCodecs returns one instance of every codec, keyed by name
func testCodecs(t testing.TB) map[string]ICodec {
	t.Helper()
	s, err := schema.Default()
	require.NoError(t, err)

	compact, err := NewJSONCodec(0)
	require.NoError(t, err)
	pretty, err := NewJSONCodec(2)
	require.NoError(t, err)

	return map[string]ICodec{
		"JSON":       compact,
		"JSONIndent": pretty,
		"XML":        NewXMLCodec(),
		"Proto":      NewProtoCodec(s),
	}
}

// testBatches creates a set of batches with different shapes
func testBatches() map[string]record.Batch {
	return map[string]record.Batch{
		"Sample":    record.Sample(),
		"Generated": record.Generate(50),
		"Empty":     {},
		"ZeroValues": {
			{},
		},
		"SpecialCharacters": {
			{ID: 7, Name: "Zoë <&> \"Ünïcödé\"", Salary: 0.1, Email: "a'b@example.com", HireDate: "", Position: "line1\nline2", Department: "R&D", Active: true},
		},
		"LargeNumbers": {
			{ID: math.MaxInt32, Name: "max", Salary: 1e21},
			{ID: math.MinInt32, Name: "min", Salary: -123456.789},
		},
	}
}

// TestCodecRoundTrip tests that every batch survives encode then decode with every codec
func TestCodecRoundTrip(t *testing.T) {
	for name, c := range testCodecs(t) {
		t.Run(name, func(t *testing.T) {
			for batchName, batch := range testBatches() {
				artifact, err := c.Encode(batch)
				require.NoError(t, err, batchName)
				assert.Equal(t, c.Format(), artifact.Format, batchName)

				decoded, err := c.Decode(artifact)
				require.NoError(t, err, batchName)
				assert.True(t, record.Verify(batch, decoded), "%s: %s", batchName, record.Diff(batch, decoded))
			}
		})
	}
}

// TestCodecDoesNotModifyBatch tests that neither encode nor decode touches the input batch
func TestCodecDoesNotModifyBatch(t *testing.T) {
	for name, c := range testCodecs(t) {
		t.Run(name, func(t *testing.T) {
			batch := record.Sample()
			before := batch.Clone()

			artifact, err := c.Encode(batch)
			require.NoError(t, err)
			decoded, err := c.Decode(artifact)
			require.NoError(t, err)

			decoded[0].Name = "changed"
			assert.Equal(t, before, batch)
		})
	}
}

func TestCodecNames(t *testing.T) {
	s, err := schema.Default()
	require.NoError(t, err)

	for _, tc := range []struct {
		indent int
		name   string
	}{
		{0, "json"},
		{2, "json-indent2"},
		{4, "json-indent4"},
	} {
		c, err := NewJSONCodec(tc.indent)
		require.NoError(t, err)
		assert.Equal(t, tc.name, c.Name())
		assert.Equal(t, FormatJSON, c.Format())
	}
	assert.Equal(t, "xml", NewXMLCodec().Name())
	assert.Equal(t, "proto", NewProtoCodec(s).Name())
}

func TestJSONIndent(t *testing.T) {
	batch := record.Sample()

	var sizes []int
	var decoded []record.Batch
	for _, indent := range []int{0, 2, 4} {
		c, err := NewJSONCodec(indent)
		require.NoError(t, err)

		artifact, err := c.Encode(batch)
		require.NoError(t, err)
		assert.True(t, artifact.IsText())
		sizes = append(sizes, artifact.Size())

		// the compact codec must read every indentation
		compact, _ := NewJSONCodec(0)
		out, err := compact.Decode(artifact)
		require.NoError(t, err)
		decoded = append(decoded, out)

		if indent == 0 {
			assert.NotContains(t, string(artifact.Data), "\n")
		} else {
			assert.Contains(t, string(artifact.Data), "\n"+string(bytes.Repeat([]byte(" "), indent))+"\"employee\"")
		}
	}

	assert.Less(t, sizes[0], sizes[1])
	assert.Less(t, sizes[1], sizes[2])
	assert.Equal(t, decoded[0], decoded[1])
	assert.Equal(t, decoded[1], decoded[2])
}

func TestJSONNegativeIndent(t *testing.T) {
	c, err := NewJSONCodec(-1)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestArtifactShape(t *testing.T) {
	codecs := testCodecs(t)
	batch := record.Batch{{ID: 1, Name: "Ali"}}

	artifact, err := codecs["JSON"].Encode(batch)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(artifact.Data, []byte(`{"employee":[{"id":1,"name":"Ali"`)))
	assert.Equal(t, ".json", artifact.Extension())

	artifact, err = codecs["XML"].Encode(batch)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(artifact.Data, []byte("<root><employee><id>1</id><name>Ali</name>")))
	assert.True(t, bytes.HasSuffix(artifact.Data, []byte("</employee></root>")))
	assert.Equal(t, ".xml", artifact.Extension())

	artifact, err = codecs["Proto"].Encode(batch)
	require.NoError(t, err)
	assert.False(t, artifact.IsText())
	assert.Equal(t, ".bin", artifact.Extension())
	// the length prefix covers the rest of the artifact
	assert.Equal(t, int(artifact.Data[0]), artifact.Size()-1)
}

func TestEmptyBatch(t *testing.T) {
	for name, c := range testCodecs(t) {
		t.Run(name, func(t *testing.T) {
			artifact, err := c.Encode(record.Batch{})
			require.NoError(t, err)
			assert.NotZero(t, artifact.Size())

			decoded, err := c.Decode(artifact)
			require.NoError(t, err)
			assert.Zero(t, decoded.Len())
		})
	}

	artifact, err := testCodecs(t)["Proto"].Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, artifact.Data)
}

// TestDecodeMalformed tests how codecs handle corrupt or invalid data
func TestDecodeMalformed(t *testing.T) {
	codecs := testCodecs(t)

	testCases := []struct {
		name        string
		codec       string
		data        string
		expectError bool
	}{
		{"JSON empty", "JSON", "", true},
		{"JSON unterminated", "JSON", `{"employee":[`, true},
		{"JSON array at top level", "JSON", `[{"id":1}]`, true},
		{"JSON trailing content", "JSON", `{"employee":[]} x`, true},
		{"JSON trailing whitespace", "JSON", "{\"employee\":[]}\n", false},
		{"XML empty", "XML", "", true},
		{"XML wrong root", "XML", "<employees></employees>", true},
		{"XML malformed nesting", "XML", "<root><employee><id>1</employee></id></root>", true},
		{"XML unclosed root", "XML", "<root><employee></employee>", true},
		{"XML trailing element", "XML", "<root></root><root></root>", true},
		{"XML trailing text", "XML", "<root></root>garbage", true},
		{"XML surrounding whitespace", "XML", "\n  <root>\n <employee><id>1</id></employee>\n</root>\n", false},
		{"XML declaration", "XML", `<?xml version="1.0"?><root></root>`, false},
		{"Proto empty", "Proto", "", true},
		{"Proto prefix only", "Proto", "\x05", true},
		{"Proto short payload", "Proto", "\x05\x0a\x02", true},
		{"Proto trailing bytes", "Proto", "\x00\x00", true},
		{"Proto invalid message", "Proto", "\x02\xff\xff", true},
		{"Proto empty envelope", "Proto", "\x00", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := codecs[tc.codec]
			_, err := c.Decode(NewArtifact(c.Format(), []byte(tc.data)))
			if tc.expectError {
				assert.True(t, errors.Is(err, ErrMalformedArtifact), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeWrongFormat(t *testing.T) {
	codecs := testCodecs(t)

	artifact, err := codecs["JSON"].Encode(record.Sample())
	require.NoError(t, err)

	_, err = codecs["XML"].Decode(artifact)
	assert.True(t, errors.Is(err, ErrMalformedArtifact))
	_, err = codecs["Proto"].Decode(artifact)
	assert.True(t, errors.Is(err, ErrMalformedArtifact))

	// indentation does not change the format
	_, err = codecs["JSONIndent"].Decode(artifact)
	assert.NoError(t, err)
}

func TestProtoTruncated(t *testing.T) {
	c := testCodecs(t)["Proto"]

	artifact, err := c.Encode(record.Generate(20))
	require.NoError(t, err)

	for cut := 0; cut < artifact.Size(); cut++ {
		_, err := c.Decode(NewArtifact(FormatProto, artifact.Data[:cut]))
		require.Error(t, err, "cut at %d", cut)
		assert.True(t, errors.Is(err, ErrMalformedArtifact))
	}
}

func TestProtoValidation(t *testing.T) {
	c := testCodecs(t)["Proto"]

	testCases := []struct {
		name  string
		batch record.Batch
	}{
		{"id out of range", record.Batch{{ID: math.MaxInt32 + 1}}},
		{"negative id out of range", record.Batch{{ID: math.MinInt32 - 1}}},
		{"NaN salary", record.Batch{{ID: 1, Salary: math.NaN()}}},
		{"invalid utf8", record.Batch{{ID: 1, Name: "\xff\xfe"}}},
		{"second record invalid", record.Batch{{ID: 1}, {ID: 1 << 40}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			artifact, err := c.Encode(tc.batch)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.True(t, errors.Is(err, schema.ErrValidation))
			assert.Nil(t, artifact.Data)
		})
	}
}

func TestXMLRejectsUnrepresentableText(t *testing.T) {
	c := NewXMLCodec()

	testCases := []struct {
		name  string
		batch record.Batch
	}{
		{"control character", record.Batch{{ID: 1, Name: "a\x01b"}}},
		{"nul byte", record.Batch{{ID: 1, Email: "x\x00@example.com"}}},
		{"invalid utf8", record.Batch{{ID: 1, Department: "\xff"}}},
		{"second record invalid", record.Batch{{ID: 1, Name: "ok"}, {ID: 2, Position: "\x1b[0m"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			artifact, err := c.Encode(tc.batch)
			require.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, artifact.Data)
		})
	}

	// tab, newline and carriage return are allowed and survive the round trip
	batch := record.Batch{{ID: 1, Name: "a\tb\nc\rd"}}
	artifact, err := c.Encode(batch)
	require.NoError(t, err)
	decoded, err := c.Decode(artifact)
	require.NoError(t, err)
	assert.True(t, record.Verify(batch, decoded), record.Diff(batch, decoded))
}

func TestCountRecords(t *testing.T) {
	s, err := schema.Default()
	require.NoError(t, err)
	c := NewProtoCodec(s)

	n, err := CountRecords(s, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, size := range []int{0, 3, 100} {
		artifact, err := c.Encode(record.Generate(size))
		require.NoError(t, err)

		n, err := CountRecords(s, artifact.Data)
		require.NoError(t, err)
		assert.Equal(t, size, n)
	}

	_, err = CountRecords(s, []byte("\x05\x0a"))
	assert.True(t, errors.Is(err, ErrMalformedArtifact))
}

func TestCodecConcurrentUse(t *testing.T) {
	for name, c := range testCodecs(t) {
		t.Run(name, func(t *testing.T) {
			var g errgroup.Group
			for i := 1; i <= 16; i++ {
				batch := record.Generate(i)
				g.Go(func() error {
					artifact, err := c.Encode(batch)
					if err != nil {
						return err
					}
					decoded, err := c.Decode(artifact)
					if err != nil {
						return err
					}
					if !record.Verify(batch, decoded) {
						return errors.New(record.Diff(batch, decoded))
					}
					return nil
				})
			}
			assert.NoError(t, g.Wait())
		})
	}
}
