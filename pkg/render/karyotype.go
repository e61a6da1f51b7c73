package render

import (
	"fmt"

	"github.com/yumyai/geneloc/logger"
	"github.com/yumyai/geneloc/pkg/model"
	"go.uber.org/zap"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// KaryotypePlotter draws every chromosome of a build as a horizontal
// ideogram, one row per chromosome, with a labelled marker per gene.
type KaryotypePlotter struct {
	Style Style
	// MarkerHeight is the marker length as a fraction of the data panel above
	// each ideogram.
	MarkerHeight float64
	LabelScale   float64
}

func NewKaryotypePlotter() *KaryotypePlotter {
	return &KaryotypePlotter{
		Style:        KaryotypeStyle(),
		MarkerHeight: 0.3,
		LabelScale:   0.8,
	}
}

// karyotypeLayout maps genomic coordinates onto the page.
type karyotypeLayout struct {
	left, right vg.Length
	top         vg.Length
	rowHeight   vg.Length
	ideogram    vg.Length
	longest     int64
}

func newKaryotypeLayout(r vg.Rectangle, genome *model.Genome) karyotypeLayout {
	const (
		nameMargin = 1.0 * vg.Centimeter
		edge       = 0.3 * vg.Centimeter
	)
	rows := vg.Length(len(genome.Chromosomes))
	rowHeight := (r.Max.Y - r.Min.Y - 2*edge) / rows
	return karyotypeLayout{
		left:      r.Min.X + nameMargin,
		right:     r.Max.X - edge,
		top:       r.Max.Y - edge,
		rowHeight: rowHeight,
		ideogram:  rowHeight * 0.3,
		longest:   genome.Longest(),
	}
}

// baseline is the bottom edge of the ideogram in row i.
func (l karyotypeLayout) baseline(i int) vg.Length {
	return l.top - vg.Length(i+1)*l.rowHeight
}

func (l karyotypeLayout) x(pos int64) vg.Length {
	return l.left + (l.right-l.left)*vg.Length(float64(pos)/float64(l.longest))
}

// dataPanel is the vertical room between an ideogram and the row above it.
func (l karyotypeLayout) dataPanel() vg.Length {
	return l.rowHeight - l.ideogram
}

// Plot renders the annotated rows on the karyotype of build into path.
func (p *KaryotypePlotter) Plot(path, build string, table model.AnnotatedTable) error {
	genome, err := model.LookupGenome(build)
	if err != nil {
		return err
	}

	canvas, err := newCanvas(path, p.Style)
	if err != nil {
		return err
	}
	dc := draw.New(canvas)
	fillBackground(dc, p.Style.Background)

	layout := newKaryotypeLayout(dc.Rectangle, genome)
	for i, chr := range genome.Chromosomes {
		p.drawIdeogram(dc, layout, i, chr)
	}

	drawn := 0
	for _, rec := range table {
		row, ok := genome.Row(rec.Chromosome)
		if !ok {
			logger.Warn("Skipping marker outside the karyotype",
				zap.String("gene", rec.Symbol),
				zap.String("chromosome", rec.Chromosome),
				zap.String("genome", build))
			continue
		}
		p.drawMarker(dc, layout, row, rec)
		drawn++
	}

	logger.Debug("Karyotype drawn", zap.String("genome", build), zap.Int("markers", drawn))

	if err := writeCanvas(path, canvas); err != nil {
		return fmt.Errorf("karyotype plot: %w", err)
	}
	return nil
}

func (p *KaryotypePlotter) drawIdeogram(dc draw.Canvas, l karyotypeLayout, row int, chr model.Chromosome) {
	y0 := l.baseline(row)
	y1 := y0 + l.ideogram
	x0 := l.x(0)
	x1 := l.x(chr.Length)

	body := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
	dc.FillPolygon(ideogramFill, body)
	dc.StrokeLines(p.Style.lineStyle(ideogramOutline, 0.3), append(body, body[0]))

	if chr.Centromere > 0 {
		cx := l.x(chr.Centromere)
		w := l.ideogram / 2
		dc.FillPolygon(centromereFill, []vg.Point{
			{X: cx - w, Y: y0}, {X: cx + w, Y: y0}, {X: cx, Y: (y0 + y1) / 2},
		})
		dc.FillPolygon(centromereFill, []vg.Point{
			{X: cx - w, Y: y1}, {X: cx + w, Y: y1}, {X: cx, Y: (y0 + y1) / 2},
		})
	}

	name := p.Style.textStyle(1)
	name.XAlign = text.XRight
	dc.FillText(name, vg.Point{X: l.left - vg.Points(3), Y: (y0 + y1) / 2}, chr.Name)
}

// drawMarker draws a vertical tick rising MarkerHeight of the data panel
// from the ideogram top, with the gene symbol written horizontally on top.
// Labels are not moved apart when they collide.
func (p *KaryotypePlotter) drawMarker(dc draw.Canvas, l karyotypeLayout, row int, rec model.GeneLocationRecord) {
	x := l.x(rec.Start)
	base := l.baseline(row) + l.ideogram
	tip := base + l.dataPanel()*vg.Length(p.MarkerHeight)

	dc.StrokeLine2(p.Style.lineStyle(markerColor, 0.4), x, base, x, tip)

	label := p.Style.textStyle(p.LabelScale)
	label.YAlign = text.YBottom
	dc.FillText(label, vg.Point{X: x, Y: tip}, rec.Symbol)
}
