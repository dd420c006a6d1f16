package util

import (
	"strings"
	"testing"

	"github.com/ValentinKolb/cbench/lib/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 40)
	for _, line := range strings.Split(WrapString(text), "\n") {
		assert.LessOrEqual(t, len(line), Wrap)
	}
	assert.Equal(t, "short text", WrapString("  short   text "))
	assert.Equal(t, "", WrapString(""))
}

func TestParseIntList(t *testing.T) {
	got, err := ParseIntList("0, 2,,4")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, got)

	got, err = ParseIntList("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseIntList("1,two")
	require.Error(t, err)
}

func TestNewCodecs(t *testing.T) {
	s, err := schema.Default()
	require.NoError(t, err)

	codecs, err := NewCodecs([]string{"json", "xml", "proto"}, []int{0, 2}, s)
	require.NoError(t, err)

	names := make([]string, len(codecs))
	for i, c := range codecs {
		names[i] = c.Name()
	}
	assert.Equal(t, []string{"json", "json-indent2", "xml", "proto"}, names)

	_, err = NewCodecs([]string{"json"}, []int{-1}, s)
	require.Error(t, err)

	_, err = NewCodecs([]string{"yaml"}, nil, s)
	require.Error(t, err)

	_, err = NewCodecs([]string{""}, nil, s)
	require.Error(t, err)
}

func TestNewTransports(t *testing.T) {
	for _, name := range []string{"tcp", "unix", "http"} {
		st, err := NewServerTransport(name)
		require.NoError(t, err)
		assert.NotNil(t, st)

		ct, err := NewClientTransport(name)
		require.NoError(t, err)
		assert.NotNil(t, ct)
	}

	_, err := NewServerTransport("udp")
	require.Error(t, err)
	_, err = NewClientTransport("udp")
	require.Error(t, err)
}
