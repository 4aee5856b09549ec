package optics

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PathStats summarises the segments traced for one source
type PathStats struct {
	Segments int
	// Total drawn length
	Length float64
	// Length travelled inside prisms
	InsideLength float64
	// Length travelled by split branches
	SplitLength float64
}

func Summarize(segments []Segment) PathStats {
	var stats PathStats
	for _, seg := range segments {
		if !seg.Finite() {
			continue
		}
		stats.Segments++
		l := seg.Length()
		stats.Length += l
		if seg.Inside {
			stats.InsideLength += l
		}
		if seg.Kind == ReflectedSplit {
			stats.SplitLength += l
		}
	}
	return stats
}

// PlotPathStats saves a grouped bar chart of per-source path lengths to path. The image format
// follows the file extension.
func PlotPathStats(path string, stats []PathStats, width, height int) error {
	p := plot.New()
	p.Title.Text = "Path length per source"
	p.X.Label.Text = "Source"
	p.Y.Label.Text = "Length (canvas units)"

	total := make(plotter.Values, len(stats))
	inside := make(plotter.Values, len(stats))
	split := make(plotter.Values, len(stats))
	names := make([]string, len(stats))
	for i, s := range stats {
		total[i] = s.Length
		inside[i] = s.InsideLength
		split[i] = s.SplitLength
		names[i] = fmt.Sprintf("%d", i)
	}

	w := vg.Points(12)
	series := []struct {
		name   string
		values plotter.Values
		color  color.Color
	}{
		{"total", total, color.RGBA{255, 220, 60, 255}},
		{"inside prisms", inside, color.RGBA{255, 100, 100, 255}},
		{"split branches", split, color.RGBA{120, 200, 255, 255}},
	}
	for i, s := range series {
		bars, err := plotter.NewBarChart(s.values, w)
		if err != nil {
			return fmt.Errorf("building %s bars: %w", s.name, err)
		}
		bars.Color = s.color
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = w * vg.Length(i-1)
		p.Add(bars)
		p.Legend.Add(s.name, bars)
	}
	p.Legend.Top = true
	p.NominalX(names...)

	if err := p.Save(vg.Points(float64(width)), vg.Points(float64(height)), path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
