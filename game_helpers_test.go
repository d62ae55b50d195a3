package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-gol-quadtree/utils"
)

func quietConfig() utils.Config {
	config := utils.DefaultConfig()
	config.Width = 12
	config.Height = 12
	config.Seed = 3
	config.FrameRate = 0
	config.MaxGenerations = 5
	config.Render = false
	return config
}

func TestCheckRestartConditions(t *testing.T) {
	config := utils.DefaultConfig()

	restart, reason := checkRestartConditions(0, 0, 10, config)
	assert.True(t, restart)
	assert.Equal(t, "extinction", reason)

	restart, reason = checkRestartConditions(10, config.StagnationThreshold, 10, config)
	assert.True(t, restart)
	assert.Equal(t, "stagnation", reason)

	restart, reason = checkRestartConditions(10, 0, config.RefreshInterval, config)
	assert.True(t, restart)
	assert.Equal(t, "periodic refresh", reason)

	restart, _ = checkRestartConditions(10, 1, 7, config)
	assert.False(t, restart)

	restart, _ = checkRestartConditions(10, 0, 0, config)
	assert.False(t, restart)
}

func TestRunGameStopsAtMaxGenerations(t *testing.T) {
	config := quietConfig()
	world, err := initializeGame(config)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	stats := utils.NewStats(reg)

	var out bytes.Buffer
	err = runGame(context.Background(), utils.NewLogger("error", "text", io.Discard), &out, world, config, stats)
	require.NoError(t, err)

	assert.Equal(t, config.MaxGenerations, stats.TotalGenerations)
	assert.Contains(t, out.String(), "Gen: 5 |")
	assert.NotContains(t, out.String(), "Gen: 6 |")

	// only real ticks are counted; the seeded generation 0 is not
	expected := `
# HELP quadlife_generations_total Total generations simulated
# TYPE quadlife_generations_total counter
quadlife_generations_total 5
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "quadlife_generations_total"))

	families, err := reg.Gather()
	require.NoError(t, err)
	var observed uint64
	for _, mf := range families {
		if mf.GetName() == "quadlife_tick_duration_seconds" {
			observed = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(config.MaxGenerations), observed)
}

func TestRunGameLogsStatusEveryInterval(t *testing.T) {
	config := quietConfig()
	config.MaxGenerations = 5
	config.StatusInterval = 2
	world, err := initializeGame(config)
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := utils.NewLogger("info", "json", &logs)
	require.NoError(t, runGame(context.Background(), logger, io.Discard, world, config, utils.NewStats(nil)))

	var generations []string
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		if strings.Contains(line, `"msg":"generation status"`) {
			generations = append(generations, line)
		}
	}
	require.Len(t, generations, 2)
	assert.Contains(t, generations[0], `"generation":2`)
	assert.Contains(t, generations[1], `"generation":4`)
}

func TestRunGameHonorsCancellation(t *testing.T) {
	config := quietConfig()
	config.MaxGenerations = 0
	config.Render = true
	world, err := initializeGame(config)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err = runGame(ctx, utils.NewLogger("error", "text", io.Discard), &out, world, config, utils.NewStats(nil))
	assert.NoError(t, err)
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 20\nheight: 10\ncapacity: 2\n"), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--height", "15", "--count-self"}))

	var flags cliFlags
	flags.configPath = path
	flags.height = 15
	flags.countSelf = true

	config, err := resolveConfig(cmd, flags)
	require.NoError(t, err)
	assert.Equal(t, 20, config.Width)
	assert.Equal(t, 15, config.Height)
	assert.Equal(t, 2, config.Capacity)
	assert.True(t, config.CountSelf)
}

func TestRootCommandRuns(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "quadlife.prom")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{
		"--width", "10", "--height", "10", "--generations", "3", "--seed", "9",
		"--render=false", "--log-format", "json", "--metrics-file", metrics,
	})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Gen: 3 |")
	assert.Contains(t, errOut.String(), `"msg":"world initialized"`)
	assert.Contains(t, errOut.String(), `"run_id"`)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "quadlife_generations_total 3")
}

func TestRootCommandRejectsBadFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--capacity", "0"})

	assert.Error(t, cmd.Execute())
}
