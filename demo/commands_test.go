package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goensemble/ensemble"
	"github.com/sartorproj/goensemble/visualize"
)

// execute runs the root command against the test configuration and returns
// the output directory and captured stdout.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	cfg := writeConfig(t, testConfig)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", cfg, "--out", dir))
	err := rootCmd.Execute()
	return dir, out.String(), err
}

func TestPruneCommand(t *testing.T) {
	_, out, err := execute(t, "prune", "--min-runs", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "B "))
	assert.True(t, strings.HasPrefix(lines[1], "C/x "))
	assert.Equal(t, "2 of 3 models kept, 5 runs", lines[2])
}

func TestRunsCommand(t *testing.T) {
	dir, _, err := execute(t, "runs")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "runs_per_model.svg"))
}

func TestTimeseriesCommand(t *testing.T) {
	dir, _, err := execute(t, "timeseries", "--model", "B", "--lat", "2", "--lon", "3")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "timeseries_B_2_3.svg"))

	data, err := os.ReadFile(filepath.Join(dir, "timeseries_B_2_3.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "step,r1i1p1f1,r2i1p1f1,r3i1p1f1,forced_response", lines[0])
	assert.Len(t, lines, 1+165-ensemble.SpinUpSteps)

	_, _, err = execute(t, "timeseries", "--model", "missing")
	assert.ErrorIs(t, err, ensemble.ErrModelNotFound)
}

func TestHeatmapCommand(t *testing.T) {
	dir, _, err := execute(t, "heatmap", "--model", "C/x", "--year", "1990", "--year", "2000")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "heatmap_C_x_r1i1p1f1_1990-2000.svg"))

	_, _, err = execute(t, "heatmap", "--model", "C/x", "--year", "2020")
	assert.ErrorIs(t, err, visualize.ErrYearOutOfRange)
}

func TestNormalizeCommand(t *testing.T) {
	dir, _, err := execute(t, "normalize", "--workers", "2")
	require.NoError(t, err)

	// min_runs is 3 in the test configuration.
	assert.FileExists(t, filepath.Join(dir, "forced_B.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "forced_C_x.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "forced_A.csv"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "C_x", sanitize("C/x"))
	assert.Equal(t, "ACCESS-ESM1-5", sanitize("ACCESS-ESM1-5"))
	assert.Equal(t, "a_b_c", sanitize("a b.c"))
}
