package selftest_test

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/ValentinKolb/cbench/cmd"
	"github.com/ValentinKolb/cbench/lib/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn and returns everything it wrote to stdout
func captureStdout(t *testing.T, fn func() error) ([]byte, error) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w

	out := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(r)
		out <- data
	}()

	runErr := fn()
	os.Stdout = stdout
	require.NoError(t, w.Close())
	return <-out, runErr
}

func TestSelftestCommand(t *testing.T) {
	for _, transport := range []string{"tcp", "unix", "http"} {
		t.Run(transport, func(t *testing.T) {
			cmd.RootCmd.SetArgs([]string{"selftest", "--transport", transport, "--report-format", "json", "--log-level", "error"})
			out, err := captureStdout(t, cmd.RootCmd.Execute)
			require.NoError(t, err)

			var calls []report.Call
			require.NoError(t, json.Unmarshal(out, &calls))
			require.Len(t, calls, 1)
			assert.True(t, calls[0].Ok)
			assert.Equal(t, 3, calls[0].Sent)
			assert.Equal(t, 3, calls[0].Received)
			assert.Positive(t, calls[0].ElapsedNs)
			assert.Empty(t, calls[0].Error)
		})
	}
}

func TestSelftestCommandGeneratedBatch(t *testing.T) {
	cmd.RootCmd.SetArgs([]string{"selftest", "--transport", "tcp", "--records", "250", "--report-format", "json", "--log-level", "error"})
	out, err := captureStdout(t, cmd.RootCmd.Execute)
	require.NoError(t, err)

	var calls []report.Call
	require.NoError(t, json.Unmarshal(out, &calls))
	require.Len(t, calls, 1)
	assert.Equal(t, 250, calls[0].Received)
}
