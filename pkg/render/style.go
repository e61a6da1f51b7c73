// Render genome plots (linear karyotype and circular layout) to vector files

package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Style is the page setup shared by both plots.
type Style struct {
	Width      vg.Length
	Height     vg.Length
	PointSize  vg.Length
	Background color.Color
	// DPI only applies to raster output (.png); PDF and SVG stay vector.
	DPI int
}

func KaryotypeStyle() Style {
	return Style{
		Width:      14 * vg.Centimeter,
		Height:     10 * vg.Centimeter,
		PointSize:  vg.Points(6),
		Background: color.White,
		DPI:        300,
	}
}

func CircosStyle() Style {
	s := KaryotypeStyle()
	s.Width = 5 * vg.Centimeter
	s.Height = 5 * vg.Centimeter
	return s
}

var (
	ideogramFill    = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	ideogramOutline = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF}
	centromereFill  = color.RGBA{R: 0xC0, G: 0x30, B: 0x30, A: 0xFF}
	markerColor     = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
)

// textStyle returns a sans style of size scale*PointSize.
func (s Style) textStyle(scale float64) draw.TextStyle {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(font.Font{Typeface: "Liberation", Variant: "Sans"}, vg.Length(scale)*s.PointSize),
		XAlign:  text.XCenter,
		YAlign:  text.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}

func (s Style) lineStyle(clr color.Color, width float64) draw.LineStyle {
	return draw.LineStyle{Color: clr, Width: vg.Points(width)}
}

// newCanvas picks the backend from the file extension.
func newCanvas(path string, s Style) (vg.CanvasWriterTo, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return vgpdf.New(s.Width, s.Height), nil
	case ".svg":
		return vgsvg.New(s.Width, s.Height), nil
	case ".png":
		c := vgimg.NewWith(vgimg.UseWH(s.Width, s.Height), vgimg.UseDPI(s.DPI))
		return vgimg.PngCanvas{Canvas: c}, nil
	default:
		return nil, fmt.Errorf("unsupported plot format %q", ext)
	}
}

func fillBackground(dc draw.Canvas, clr color.Color) {
	r := dc.Rectangle
	dc.FillPolygon(clr, []vg.Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	})
}

// writeCanvas overwrites path with the rendered canvas.
func writeCanvas(path string, c io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
