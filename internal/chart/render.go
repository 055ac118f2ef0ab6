package chart

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatSVG ImageFormat = "svg"
)

// ContentType returns the MIME type of the format.
func (f ImageFormat) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Size is the image size in inches.
type Size struct {
	Width  float64
	Height float64
}

var DefaultSize = Size{Width: 8, Height: 4}

// Render draws c to w.
func Render(w io.Writer, c Chart, format ImageFormat, size Size) error {
	if format != FormatPNG && format != FormatSVG {
		return fmt.Errorf("unsupported image format: %s", format)
	}
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}

	p, err := newPlot(c)
	if err != nil {
		return fmt.Errorf("newPlot > %w", err)
	}

	writer, err := p.WriterTo(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch, string(format))
	if err != nil {
		return fmt.Errorf("plot.WriterTo > %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("writer.WriteTo > %w", err)
	}
	return nil
}

func newPlot(c Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Y.Min = 0
	p.Y.Tick.Label.Color = color.Transparent
	p.Legend.Top = false
	p.Legend.Left = false

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = mustParseHexColor(gridColor)
	grid.Horizontal.Dashes = []vg.Length{vg.Points(10)}
	p.Add(grid)

	if len(c.Data.Labels) > 0 {
		p.NominalX(c.Data.Labels...)
	}

	switch c.Type {
	case ShapeBar:
		if err := addBars(p, c.Data); err != nil {
			return nil, err
		}
	default:
		if err := addLines(p, c.Data); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func addBars(p *plot.Plot, data Data) error {
	n := len(data.Datasets)
	width := vg.Points(18)
	for i, ds := range data.Datasets {
		if len(ds.Data) == 0 {
			continue
		}
		bars, err := plotter.NewBarChart(intValues(ds.Data), width)
		if err != nil {
			return fmt.Errorf("plotter.NewBarChart(%s) > %w", ds.Label, err)
		}
		c := mustParseHexColor(ds.BackgroundColor)
		bars.Color = c
		bars.LineStyle.Width = 0
		// center the group of bars on the tick
		bars.Offset = width * vg.Length(2*i-n+1) / 2
		p.Add(bars)
		p.Legend.Add(ds.Label, circleThumbnail{color: c})
	}
	return nil
}

func addLines(p *plot.Plot, data Data) error {
	for _, ds := range data.Datasets {
		if len(ds.Data) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(ds.Data))
		for i, v := range ds.Data {
			xys[i].X = float64(i)
			xys[i].Y = float64(v)
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("plotter.NewLinePoints(%s) > %w", ds.Label, err)
		}
		c := mustParseHexColor(ds.BorderColor)
		line.LineStyle.Color = c
		line.LineStyle.Width = vg.Points(2)
		points.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
		p.Add(line, points)
		p.Legend.Add(ds.Label, circleThumbnail{color: c})
	}
	return nil
}

func intValues(values []int) plotter.Values {
	vs := make(plotter.Values, len(values))
	for i, v := range values {
		vs[i] = float64(v)
	}
	return vs
}

// circleThumbnail draws a legend entry as a filled circle.
type circleThumbnail struct {
	color color.Color
}

func (t circleThumbnail) Thumbnail(c *draw.Canvas) {
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	c.DrawGlyph(draw.GlyphStyle{Color: t.color, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}, center)
}

func mustParseHexColor(hex string) color.Color {
	c, err := parseHexColor(hex)
	if err != nil {
		return color.Black
	}
	return c
}

// parseHexColor parses "#RRGGBB".
func parseHexColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
