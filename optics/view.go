package optics

import (
	"image"
	"math"
	"slices"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

type rgba struct {
	R, G, B, A int
}

var (
	Background     = rgba{20, 20, 30, 255}
	PrismFill      = rgba{80, 120, 160, 70}
	SquareEdge     = rgba{230, 230, 230, 255}
	TriangleEdge   = rgba{255, 200, 120, 255}
	RayInAir       = rgba{255, 220, 60, 255}
	RayInPrism     = rgba{255, 100, 100, 255}
	RaySplit       = rgba{120, 200, 255, 255}
	ExposedCell    = rgba{255, 255, 255, 28}
	FlaggedEdge    = rgba{255, 40, 40, 255}
	minRayAlpha    = 0.15
	endpointRadius = 3.0
)

// View draws a scene, its traced rays and optionally the exposure overlay
type View struct {
	Scene    *Scene
	Exposure *ExposureGrid
	// Polygon ids outlined in FlaggedEdge
	Highlight []int
	XSize     int
	YSize     int
	// Ray width in output pixels
	LineWidth float64
	// These cache the values needed to scale and center the canvas in the requested image size
	scale      float64
	xTranslate float64
	yTranslate float64
}

func (view *View) computeScaleAndTranslation() {
	XScale := float64(view.XSize) / view.Scene.Width
	YScale := float64(view.YSize) / view.Scene.Height
	view.scale = math.Min(XScale, YScale)
	view.xTranslate = (float64(view.XSize) - view.Scene.Width*view.scale) / 2
	view.yTranslate = (float64(view.YSize) - view.Scene.Height*view.scale) / 2
}

func (view *View) getScale() float64 {
	if view.scale == 0 {
		view.computeScaleAndTranslation()
	}
	return view.scale
}

func (view *View) toImage(p r2.Vec) (float64, float64) {
	s := view.getScale()
	return p.X*s + view.xTranslate, p.Y*s + view.yTranslate
}

func setColor(c *gg.Context, col rgba) {
	c.SetRGBA255(col.R, col.G, col.B, col.A)
}

// Render draws every trace. Segments with non-finite endpoints are skipped.
func (view *View) Render(traces [][]Segment) image.Image {
	c := gg.NewContext(view.XSize, view.YSize)
	setColor(c, Background)
	c.Clear()
	s := view.getScale()

	if view.Exposure != nil {
		g := view.Exposure
		setColor(c, ExposedCell)
		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.Cols; col++ {
				if !g.Lit(col, row) {
					continue
				}
				x, y := view.toImage(V(float64(col)*g.CellSize, float64(row)*g.CellSize))
				c.DrawRectangle(x, y, g.CellSize*s, g.CellSize*s)
				c.Fill()
			}
		}
	}

	for _, poly := range view.Scene.Polygons {
		view.polygonPath(c, poly)
		setColor(c, PrismFill)
		c.Fill()
	}
	for _, poly := range view.Scene.Polygons {
		view.polygonPath(c, poly)
		width := 2.0
		switch {
		case slices.Contains(view.Highlight, poly.ID):
			setColor(c, FlaggedEdge)
			width = 4
		case poly.Kind == Square:
			setColor(c, SquareEdge)
		default:
			setColor(c, TriangleEdge)
		}
		c.SetLineWidth(width)
		c.Stroke()
	}

	lineWidth := view.LineWidth
	if lineWidth <= 0 {
		lineWidth = 3
	}
	for _, segments := range traces {
		for _, seg := range segments {
			if !seg.Finite() {
				continue
			}
			col := RayInAir
			switch {
			case seg.Kind == ReflectedSplit:
				col = RaySplit
			case seg.Inside:
				col = RayInPrism
			}
			col.A = int(255 * math.Max(minRayAlpha, math.Min(1, seg.Intensity)))
			setColor(c, col)

			x1, y1 := view.toImage(seg.Start)
			x2, y2 := view.toImage(seg.End)
			c.SetLineWidth(lineWidth)
			c.DrawLine(x1, y1, x2, y2)
			c.Stroke()
			c.DrawCircle(x2, y2, endpointRadius)
			c.Fill()
		}
	}
	return c.Image()
}

func (view *View) polygonPath(c *gg.Context, poly Polygon) {
	c.NewSubPath()
	for i, v := range poly.Vertices() {
		x, y := view.toImage(v)
		if i == 0 {
			c.MoveTo(x, y)
		} else {
			c.LineTo(x, y)
		}
	}
	c.ClosePath()
}

// SavePNG renders the traces and writes them to path
func (view *View) SavePNG(path string, traces [][]Segment) error {
	return gg.SavePNG(path, view.Render(traces))
}
