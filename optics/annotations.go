package optics

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
)

// JSON schema types
type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PolygonJSON struct {
	ID     int         `json:"id"`
	Kind   string      `json:"kind"`
	Marker int         `json:"marker,omitempty"`
	Points []PointJSON `json:"points"`
}

type SegmentJSON struct {
	Start     PointJSON `json:"start"`
	End       PointJSON `json:"end"`
	Inside    bool      `json:"inside"`
	Branch    string    `json:"branch"`
	Intensity float64   `json:"intensity"`
}

type TraceJSON struct {
	Source   int           `json:"source"`
	Segments []SegmentJSON `json:"segments"`
}

type ExposureJSON struct {
	CellSize float64  `json:"cellSize"`
	Cols     int      `json:"cols"`
	Rows     int      `json:"rows"`
	Coverage float64  `json:"coverage"`
	Lit      [][2]int `json:"lit"`
}

type AnnotationsJSON struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Polygons []PolygonJSON `json:"polygons"`
	Traces   []TraceJSON   `json:"traces"`
	Exposure *ExposureJSON `json:"exposure,omitempty"`
}

// Conversion functions
func VecToJSON(v r2.Vec) PointJSON {
	return PointJSON{X: v.X, Y: v.Y}
}

func PolygonToJSON(p Polygon) PolygonJSON {
	vs := p.Vertices()
	points := make([]PointJSON, len(vs))
	for i, v := range vs {
		points[i] = VecToJSON(v)
	}
	return PolygonJSON{ID: p.ID, Kind: p.Kind.String(), Marker: p.Marker, Points: points}
}

func SegmentToJSON(s Segment) SegmentJSON {
	return SegmentJSON{
		Start:     VecToJSON(s.Start),
		End:       VecToJSON(s.End),
		Inside:    s.Inside,
		Branch:    s.Kind.String(),
		Intensity: s.Intensity,
	}
}

func ExposureToJSON(g *ExposureGrid) *ExposureJSON {
	out := &ExposureJSON{
		CellSize: g.CellSize,
		Cols:     g.Cols,
		Rows:     g.Rows,
		Coverage: g.Coverage(),
		Lit:      make([][2]int, 0, g.LitCount()),
	}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Lit(col, row) {
				out.Lit = append(out.Lit, [2]int{col, row})
			}
		}
	}
	return out
}

// Annotate collects the scene, its traces and the exposure grid (which may be nil) into one
// document. Non-finite segments are dropped since JSON cannot carry them.
func Annotate(scene *Scene, traces [][]Segment, grid *ExposureGrid) AnnotationsJSON {
	doc := AnnotationsJSON{
		Width:    scene.Width,
		Height:   scene.Height,
		Polygons: make([]PolygonJSON, 0, len(scene.Polygons)),
		Traces:   make([]TraceJSON, 0, len(traces)),
	}
	for _, p := range scene.Polygons {
		doc.Polygons = append(doc.Polygons, PolygonToJSON(p))
	}
	for i, segments := range traces {
		t := TraceJSON{Source: i, Segments: make([]SegmentJSON, 0, len(segments))}
		for _, seg := range segments {
			if seg.Finite() {
				t.Segments = append(t.Segments, SegmentToJSON(seg))
			}
		}
		doc.Traces = append(doc.Traces, t)
	}
	if grid != nil {
		doc.Exposure = ExposureToJSON(grid)
	}
	return doc
}

// SaveAnnotationsToJSON writes the scene, traces and exposure grid to a JSON file
func SaveAnnotationsToJSON(filename string, scene *Scene, traces [][]Segment, grid *ExposureGrid) error {
	data, err := json.MarshalIndent(Annotate(scene, traces, grid), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling annotations: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}
