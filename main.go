package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/jdginn/go-prism-studio/interact"
	"github.com/jdginn/go-prism-studio/optics"
	"github.com/jdginn/go-prism-studio/optics/config"
	"github.com/jdginn/go-prism-studio/optics/experiment"
)

var CLI struct {
	Trace    TraceCmd    `cmd:"" help:"Trace light through a prism scene and render the result"`
	Validate ValidateCmd `cmd:"" help:"Check an experiment config without tracing"`
	Plot     PlotCmd     `cmd:"" help:"Chart per-source path lengths"`
	Interact InteractCmd `cmd:"" help:"Browse traced sources in the terminal"`
}

// SceneFlags are shared by every command that builds a scene
type SceneFlags struct {
	Config string `arg:"" name:"config" help:"experiment config file" type:"existingfile"`
	Seed   int64  `name:"seed" help:"generator seed; non-zero overrides the config"`
	Remove []int  `name:"remove" help:"marker ids to take out of the scene"`
}

func (f SceneFlags) load() (*config.ExperimentConfig, *optics.Scene, error) {
	cfg, err := config.LoadFromFile(f.Config, config.LoadOptions{
		ValidateImmediately: true,
		ResolvePaths:        true,
		MergeFiles:          true,
	})
	if err != nil {
		return nil, nil, err
	}
	if f.Seed != 0 {
		seed := f.Seed
		cfg.Generator.Seed = &seed
	}
	scene, err := cfg.CreateScene()
	if err != nil {
		return nil, nil, err
	}
	if len(f.Remove) > 0 {
		scene = scene.WithoutMarkers(f.Remove...)
	}
	return cfg, scene, nil
}

func traceAll(cfg *config.ExperimentConfig, scene *optics.Scene) ([][]optics.Segment, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	traces, err := scene.TraceSources(ctx, cfg.LightSources(), cfg.TraceParams())
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}
	return traces, nil
}

type TraceCmd struct {
	SceneFlags `embed:""`
	Out string `name:"out" default:"renders" help:"directory runs are written under"`
}

func (c TraceCmd) Run() error {
	cfg, scene, err := c.load()
	if err != nil {
		return err
	}
	fmt.Printf("Scene has %d prisms\n", len(scene.Polygons))

	traces, err := traceAll(cfg, scene)
	if err != nil {
		return err
	}

	grid := cfg.ExposureGrid()
	stats := make([]optics.PathStats, len(traces))
	for i, segments := range traces {
		if grid != nil {
			grid.MarkAll(segments)
		}
		stats[i] = optics.Summarize(segments)
		fmt.Printf("Source %d: %d segments, %.1f units inside prisms\n", i, stats[i].Segments, stats[i].InsideLength)
	}
	if grid != nil {
		fmt.Printf("Exposure: %d cells lit (%.1f%%)\n", grid.LitCount(), 100*grid.Coverage())
	}

	run, err := experiment.CreateRunDirectory(c.Out)
	if err != nil {
		return err
	}
	if err := cfg.View(scene, grid).SavePNG(run.GetFilePath(cfg.Render.Image), traces); err != nil {
		return fmt.Errorf("saving render: %w", err)
	}
	if cfg.Render.Annotations != "" {
		if err := optics.SaveAnnotationsToJSON(run.GetFilePath(cfg.Render.Annotations), scene, traces, grid); err != nil {
			return err
		}
	}
	if cfg.Render.Plot != "" {
		if err := optics.PlotPathStats(run.GetFilePath(cfg.Render.Plot), stats, 640, 480); err != nil {
			return err
		}
	}
	if err := run.CopyConfigFile(c.Config); err != nil {
		return err
	}
	if err := config.SaveToFile(cfg, run.GetFilePath("resolved.yaml")); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", run.Path)
	return nil
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" help:"experiment config file" type:"existingfile"`
}

func (c ValidateCmd) Run() error {
	cfg, err := config.LoadFromFile(c.Config, config.LoadOptions{ResolvePaths: true, MergeFiles: true})
	if err != nil {
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Print(config.FormatValidationErrors(errs))
		return fmt.Errorf("%d validation errors", len(errs))
	}
	fmt.Println("Config OK")
	return nil
}

type PlotCmd struct {
	SceneFlags `embed:""`
	Output string `name:"output" short:"o" default:"paths.png" help:"chart file; the extension picks the format"`
	Width  int    `name:"width" default:"640"`
	Height int    `name:"height" default:"480"`
}

func (c PlotCmd) Run() error {
	cfg, scene, err := c.load()
	if err != nil {
		return err
	}
	traces, err := traceAll(cfg, scene)
	if err != nil {
		return err
	}
	stats := make([]optics.PathStats, len(traces))
	for i, segments := range traces {
		stats[i] = optics.Summarize(segments)
	}
	return optics.PlotPathStats(c.Output, stats, c.Width, c.Height)
}

type InteractCmd struct {
	SceneFlags `embed:""`
}

func (c InteractCmd) Run() error {
	cfg, scene, err := c.load()
	if err != nil {
		return err
	}
	return interact.Interact(cfg, scene)
}

func main() {
	ctx := kong.Parse(&CLI)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
