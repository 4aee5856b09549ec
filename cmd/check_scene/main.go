package main

import (
	"fmt"
	"log"
	"slices"

	"github.com/alecthomas/kong"

	"github.com/jdginn/go-prism-studio/optics"
	"github.com/jdginn/go-prism-studio/optics/config"
	"github.com/jdginn/go-prism-studio/optics/experiment"
)

var CLI struct {
	Check CheckCmd `cmd:"" default:"withargs" help:"Check that a scene's prisms and sources are laid out sensibly"`
}

type CheckCmd struct {
	Config string `arg:"" name:"config" help:"experiment config file" type:"existingfile"`
	Out    string `name:"out" default:"renders" help:"where a render of a failing scene is written"`
}

// problem is one layout fault, tied to the polygons and sources it involves
type problem struct {
	Message  string
	Polygons []int
	Sources  []int
}

// checkScene reports overlapping prisms and sources that start inside a prism or off the canvas
func checkScene(scene *optics.Scene, sources []optics.LightSource) []problem {
	var problems []problem
	for _, pair := range scene.OverlappingPairs() {
		problems = append(problems, problem{
			Message:  fmt.Sprintf("prisms %d and %d overlap", pair[0], pair[1]),
			Polygons: []int{pair[0], pair[1]},
		})
	}
	for i, source := range sources {
		p := source.Position
		if p.X < 0 || p.X > scene.Width || p.Y < 0 || p.Y > scene.Height {
			problems = append(problems, problem{
				Message: fmt.Sprintf("source %d at (%.1f, %.1f) is off the canvas", i, p.X, p.Y),
				Sources: []int{i},
			})
		}
		for _, poly := range scene.Polygons {
			if poly.Contains(p) {
				problems = append(problems, problem{
					Message:  fmt.Sprintf("source %d starts inside prism %d", i, poly.ID),
					Polygons: []int{poly.ID},
					Sources:  []int{i},
				})
			}
		}
	}
	return problems
}

// implicated collects the polygons named by any problem and the sources worth tracing in a
// render of the failure. When no problem names a source every source is traced.
func implicated(problems []problem, sourceCount int) (polygons, sources []int) {
	for _, p := range problems {
		polygons = append(polygons, p.Polygons...)
		sources = append(sources, p.Sources...)
	}
	slices.Sort(polygons)
	slices.Sort(sources)
	polygons = slices.Compact(polygons)
	sources = slices.Compact(sources)
	if len(sources) == 0 {
		for i := 0; i < sourceCount; i++ {
			sources = append(sources, i)
		}
	}
	return polygons, sources
}

func (c CheckCmd) Run() error {
	cfg, err := config.LoadFromFile(c.Config, config.LoadOptions{
		ValidateImmediately: true,
		ResolvePaths:        true,
		MergeFiles:          true,
	})
	if err != nil {
		return err
	}
	scene, err := cfg.CreateScene()
	if err != nil {
		return err
	}
	sources := cfg.LightSources()

	problems := checkScene(scene, sources)
	if len(problems) == 0 {
		fmt.Printf("Scene OK: %d prisms, %d sources\n", len(scene.Polygons), len(sources))
		return nil
	}
	for _, p := range problems {
		fmt.Printf("ERROR: %s\n", p.Message)
	}

	run, err := experiment.CreateRunDirectory(c.Out)
	if err != nil {
		return fmt.Errorf("creating run directory: %w", err)
	}
	if err := run.CopyConfigFile(c.Config); err != nil {
		return fmt.Errorf("copying config file: %w", err)
	}
	polygons, flagged := implicated(problems, len(sources))
	var traces [][]optics.Segment
	for _, i := range flagged {
		traces = append(traces, scene.TraceSource(sources[i], cfg.TraceParams()))
	}
	view := cfg.View(scene, nil)
	view.Highlight = polygons
	if err := view.SavePNG(run.GetFilePath(cfg.Render.Image), traces); err != nil {
		return err
	}
	if err := optics.SaveAnnotationsToJSON(run.GetFilePath("annotations.json"), scene, traces, nil); err != nil {
		return err
	}
	return fmt.Errorf("%d layout problems, see %s", len(problems), run.Path)
}

func main() {
	ctx := kong.Parse(&CLI)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
