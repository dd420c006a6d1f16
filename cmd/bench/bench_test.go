package bench_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/cbench/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchCommand(t *testing.T) {
	outDir := t.TempDir()
	cmd.RootCmd.SetArgs([]string{
		"bench",
		"--iterations", "3",
		"--rounds", "2",
		"--store", "fs",
		"--out-dir", outDir,
		"--report-format", "yaml",
		"--log-level", "error",
	})
	require.NoError(t, cmd.RootCmd.Execute())

	// one run directory holding one artifact per codec
	runs, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	files, err := os.ReadDir(filepath.Join(outDir, runs[0].Name()))
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.ElementsMatch(t, []string{"data.json", "data.indent2.json", "data.xml", "data.bin"}, names)
}

func TestBenchCommandInvalidStore(t *testing.T) {
	cmd.RootCmd.SetArgs([]string{"bench", "--iterations", "1", "--store", "s3", "--log-level", "error"})
	require.Error(t, cmd.RootCmd.Execute())
}
