// Command quadlife runs Conway's Game of Life over a quadtree-indexed population.
//
// Usage:
//
//	quadlife
//	quadlife --config config.yaml
//	quadlife --width 80 --height 40 --generations 500 --seed 7
//	quadlife --render=false --metrics-file quadlife.prom
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-gol-quadtree/utils"
)

type cliFlags struct {
	configPath  string
	metricsFile string
	width       int
	height      int
	capacity    int
	generations int
	seed        int64
	countSelf   bool
	render      bool
	logLevel    string
	logFormat   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:          "quadlife",
		Short:        "Run Conway's Game of Life on a quadtree",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return run(cmd, config, flags.metricsFile)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "path to a JSON or YAML config file")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "write prometheus metrics to this file on exit")
	f.IntVar(&flags.width, "width", 0, "world width in cells")
	f.IntVar(&flags.height, "height", 0, "world height in cells")
	f.IntVar(&flags.capacity, "capacity", 0, "points per quadtree node before it subdivides")
	f.IntVarP(&flags.generations, "generations", "g", 0, "stop after this many generations (0 runs forever)")
	f.Int64Var(&flags.seed, "seed", 0, "random seed (0 picks one from the clock)")
	f.BoolVar(&flags.countSelf, "count-self", false, "count a live cell in its own neighborhood")
	f.BoolVar(&flags.render, "render", true, "draw the board every generation")
	f.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&flags.logFormat, "log-format", "", "text or json")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file over defaults
func resolveConfig(cmd *cobra.Command, flags cliFlags) (utils.Config, error) {
	config := utils.DefaultConfig()
	if flags.configPath != "" {
		loaded, err := utils.LoadConfig(flags.configPath)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	changed := cmd.Flags().Changed
	if changed("width") {
		config.Width = flags.width
	}
	if changed("height") {
		config.Height = flags.height
	}
	if changed("capacity") {
		config.Capacity = flags.capacity
	}
	if changed("generations") {
		config.MaxGenerations = flags.generations
	}
	if changed("seed") {
		config.Seed = flags.seed
	}
	if changed("count-self") {
		config.CountSelf = flags.countSelf
	}
	if changed("render") {
		config.Render = flags.render
	}
	if changed("log-level") {
		config.LogLevel = flags.logLevel
	}
	if changed("log-format") {
		config.LogFormat = flags.logFormat
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "[resolveConfig] invalid flags")
	}
	return config, nil
}

func run(cmd *cobra.Command, config utils.Config, metricsFile string) error {
	logger := utils.NewLogger(config.LogLevel, config.LogFormat, cmd.ErrOrStderr()).
		With(slog.String("run_id", uuid.NewString()))

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	world, err := initializeGame(config)
	if err != nil {
		logger.Error("failed to initialize game", slog.Any("error", err))
		return err
	}
	logGameInfo(logger, config, world)

	reg := prometheus.NewRegistry()
	stats := utils.NewStats(reg)

	err = runGame(ctx, logger, cmd.OutOrStdout(), world, config, stats)
	logger.Info("shutting down",
		slog.Int("generations", stats.TotalGenerations),
		slog.Float64("runtime_seconds", stats.Elapsed().Seconds()),
		slog.Float64("average_population", stats.AveragePopulation),
	)
	if err != nil {
		logger.Error("simulation failed", slog.Any("error", err))
		return err
	}

	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			return errors.Wrapf(err, "[run] failed to write metrics to %s", metricsFile)
		}
	}
	return nil
}
