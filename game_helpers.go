package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-quadtree/model"
	"github.com/sheikhrachel/go-gol-quadtree/utils"
)

// frame is one generation handed from the simulation loop to the display
type frame struct {
	generation     int
	livingCells    int
	density        float64
	status         string
	boundingBox    int
	sinceRestart   int
	generationsSec float64
	avgPopulation  float64
	board          []byte
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*model.World, error) {
	world, err := model.NewWorld(config)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to build world")
	}
	world.ResetWithInterestingPatterns(config)
	return world, nil
}

// logGameInfo logs the initial game information
func logGameInfo(logger *slog.Logger, config utils.Config, world *model.World) {
	logger.Info("world initialized",
		slog.Int("width", world.GetWidth()),
		slog.Int("height", world.GetHeight()),
		slog.Int("capacity", config.Capacity),
		slog.Int("max_depth", config.MaxDepth),
		slog.Int("tree_depth", world.Tree().Depth()),
		slog.Bool("count_self", config.CountSelf),
		slog.Int("living_cells", world.CountLivingCells()),
	)
}

// updateGameState records history for the current generation, and stats once a tick has run
func updateGameState(
	world *model.World,
	generation int,
	tickDuration time.Duration,
	stats *utils.Stats,
) (int, float64, string, bool) {
	livingCells := world.CountLivingCells()
	density := float64(livingCells) / float64(world.GetWidth()*world.GetHeight()) * 100

	if generation > 0 {
		stats.Update(generation, livingCells, tickDuration)
	}

	isStagnant := world.IsStagnant()
	world.UpdateHistory()

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, sinceRestart int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation"
	}
	if config.RefreshInterval > 0 && sinceRestart > 0 && sinceRestart%config.RefreshInterval == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame reseeds the world in place
func restartGame(world *model.World, config utils.Config) {
	world.ResetWithInterestingPatterns(config)
}

// runSimulation advances the world until ctx is done or the generation limit is hit,
// sending a frame per generation. It is the only goroutine that touches world.
func runSimulation(
	ctx context.Context,
	logger *slog.Logger,
	world *model.World,
	config utils.Config,
	stats *utils.Stats,
	frames chan<- frame,
) error {
	defer close(frames)

	var (
		renderer      = &model.TerminalRenderer{}
		generation    = 0
		stagnantCount = 0
		sinceRestart  = 0
		tickDuration  time.Duration
	)

	for {
		livingCells, density, status, isStagnant := updateGameState(world, generation, tickDuration, stats)
		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		if config.StatusInterval > 0 && generation > 0 && generation%config.StatusInterval == 0 {
			logger.Info("generation status",
				slog.Int("generation", generation),
				slog.Int("living_cells", livingCells),
				slog.Float64("density_pct", density),
				slog.String("status", status),
				slog.Float64("generations_per_second", stats.GenerationsPerSecond),
				slog.Float64("average_population", stats.AveragePopulation),
			)
		}

		f := frame{
			generation:     generation,
			livingCells:    livingCells,
			density:        density,
			status:         status,
			boundingBox:    world.GetBoundingBoxSize(),
			sinceRestart:   sinceRestart,
			generationsSec: stats.GenerationsPerSecond,
			avgPopulation:  stats.AveragePopulation,
		}
		if config.Render {
			var buf bytes.Buffer
			if err := renderer.Display(&buf, world); err != nil {
				return errors.Wrap(err, "[runSimulation] failed to render world")
			}
			f.board = buf.Bytes()
		}

		select {
		case <-ctx.Done():
			return nil
		case frames <- f:
		}

		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			logger.Info("reached maximum generations", slog.Int("max_generations", config.MaxGenerations))
			return nil
		}

		shouldRestart, reason := checkRestartConditions(livingCells, stagnantCount, sinceRestart, config)
		if shouldRestart && config.AutoRestart {
			logger.Info("restarting world", slog.String("reason", reason), slog.Int("generation", generation))
			stats.RecordRestart(reason)
			restartGame(world, config)
			sinceRestart = 0
			stagnantCount = 0
		} else if stagnantCount >= 2 && stagnantCount < config.StagnationThreshold {
			logger.Debug("injecting random life", slog.Int("count", config.InjectionCount))
			world.InjectRandomLife(config.InjectionCount)
		}

		start := time.Now()
		world.Step()
		tickDuration = time.Since(start)
		generation++
		sinceRestart++

		if config.FrameRate > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(config.FrameRate):
			}
		}
	}
}

// displayFrames prints frames as they arrive until the simulation closes the channel
func displayFrames(out io.Writer, frames <-chan frame) error {
	renderer := &model.TerminalRenderer{}
	for f := range frames {
		if f.board != nil {
			if err := renderer.Clear(out); err != nil {
				return errors.Wrap(err, "[displayFrames] failed to clear terminal")
			}
		}
		fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Bounding box: %d cells\n",
			f.generation, f.livingCells, f.density, f.status, f.boundingBox)
		fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Generations since restart: %d\n\n",
			f.generationsSec, f.avgPopulation, f.sinceRestart)
		if f.board != nil {
			if _, err := out.Write(f.board); err != nil {
				return errors.Wrap(err, "[displayFrames] failed to write board")
			}
		}
	}
	return nil
}

// runGame runs the simulation and the display side by side until either stops
func runGame(
	ctx context.Context,
	logger *slog.Logger,
	out io.Writer,
	world *model.World,
	config utils.Config,
	stats *utils.Stats,
) error {
	frames := make(chan frame)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return runSimulation(ctx, logger, world, config, stats, frames)
	})
	eg.Go(func() error {
		return displayFrames(out, frames)
	})

	return eg.Wait()
}
