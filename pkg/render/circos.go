package render

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/yumyai/geneloc/logger"
	"github.com/yumyai/geneloc/pkg/model"
	"go.uber.org/zap"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	ErrCircosActive         = errors.New("circos: already initialized, clear it first")
	ErrCircosNotInitialized = errors.New("circos: not initialized")
	ErrPositionOutOfRange   = errors.New("circos: position outside chromosome")
)

// CircosParams shapes the circular layout. Radii are fractions of half the
// shorter canvas side.
type CircosParams struct {
	StartDegree float64
	GapDegree   float64
	Outer       float64
	TrackHeight float64
	Connector   float64
	NameScale   float64
	LabelScale  float64
}

func DefaultCircosParams() CircosParams {
	return CircosParams{
		StartDegree: 90,
		GapDegree:   1,
		Outer:       0.72,
		TrackHeight: 0.08,
		Connector:   0.06,
		NameScale:   0.6,
		LabelScale:  0.6,
	}
}

type sector struct {
	chromosome model.Chromosome
	start      float64 // radians, the sector runs clockwise from here
	span       float64
}

func (s sector) angle(pos int64) float64 {
	return s.start - s.span*float64(pos)/float64(s.chromosome.Length)
}

// circosState is the process-wide circular plot, as set up by
// CircosInitialize and torn down by CircosClear. Tracks are stacked inwards
// from the outer radius.
type circosState struct {
	active  bool
	canvas  draw.Canvas
	style   Style
	params  CircosParams
	genome  *model.Genome
	center  vg.Point
	unit    vg.Length
	radius  vg.Length // inner edge of the last track drawn
	order   []string
	sectors map[string]sector
}

var (
	stateMu sync.Mutex
	circos  circosState

	// renderMu serializes whole scoped renders, see WithCircos.
	renderMu sync.Mutex
)

// CircosInitialize lays out one sector per chromosome of genome on dc. It
// fails while a previous layout has not been cleared.
func CircosInitialize(dc draw.Canvas, style Style, genome *model.Genome, params CircosParams) error {
	stateMu.Lock()
	defer stateMu.Unlock()

	if circos.active {
		return ErrCircosActive
	}
	if len(genome.Chromosomes) == 0 {
		return fmt.Errorf("circos: genome %s has no chromosomes", genome.Build)
	}

	r := dc.Rectangle
	w, h := r.Max.X-r.Min.X, r.Max.Y-r.Min.Y
	unit := w / 2
	if h < w {
		unit = h / 2
	}

	n := float64(len(genome.Chromosomes))
	free := 2*math.Pi - n*degToRad(params.GapDegree)
	total := float64(genome.TotalLength())

	sectors := make(map[string]sector, len(genome.Chromosomes))
	order := make([]string, 0, len(genome.Chromosomes))
	at := degToRad(params.StartDegree)
	for _, chr := range genome.Chromosomes {
		span := free * float64(chr.Length) / total
		sectors[chr.Name] = sector{chromosome: chr, start: at, span: span}
		order = append(order, chr.Name)
		at -= span + degToRad(params.GapDegree)
	}

	circos = circosState{
		active:  true,
		canvas:  dc,
		style:   style,
		params:  params,
		genome:  genome,
		center:  vg.Point{X: r.Min.X + w/2, Y: r.Min.Y + h/2},
		unit:    unit,
		radius:  unit * vg.Length(params.Outer),
		order:   order,
		sectors: sectors,
	}
	return nil
}

// CircosClear drops the current layout so the next plot starts fresh.
func CircosClear() {
	stateMu.Lock()
	defer stateMu.Unlock()
	circos = circosState{}
}

func CircosActive() bool {
	stateMu.Lock()
	defer stateMu.Unlock()
	return circos.active
}

// WithCircos initializes the layout, runs fn and always clears the layout
// afterwards, including when fn fails or panics. Concurrent callers are
// served one at a time.
func WithCircos(dc draw.Canvas, style Style, genome *model.Genome, params CircosParams, fn func() error) error {
	renderMu.Lock()
	defer renderMu.Unlock()

	if err := CircosInitialize(dc, style, genome, params); err != nil {
		return err
	}
	defer CircosClear()

	return fn()
}

// CircosChromosomeNames writes the chromosome names just outside the circle.
func CircosChromosomeNames() error {
	stateMu.Lock()
	defer stateMu.Unlock()
	if !circos.active {
		return ErrCircosNotInitialized
	}

	sty := circos.style.textStyle(circos.params.NameScale)
	r := circos.radius + circos.unit*0.08
	for _, name := range circos.order {
		s := circos.sectors[name]
		mid := s.start - s.span/2
		circos.canvas.FillText(sty, polar(circos.center, r, mid), trimChr(name))
	}
	return nil
}

// CircosIdeogram adds a ring of chromosome arcs as the next track.
func CircosIdeogram() error {
	stateMu.Lock()
	defer stateMu.Unlock()
	if !circos.active {
		return ErrCircosNotInitialized
	}

	outer := circos.radius
	inner := outer - circos.unit*vg.Length(circos.params.TrackHeight)
	outline := circos.style.lineStyle(ideogramOutline, 0.2)

	for _, name := range circos.order {
		s := circos.sectors[name]
		band := annulusSector(circos.center, inner, outer, s.start, s.span)
		circos.canvas.FillPolygon(ideogramFill, band)
		circos.canvas.StrokeLines(outline, append(band, band[0]))

		if c := s.chromosome.Centromere; c > 0 {
			a := s.angle(c)
			half := s.span * 0.01
			circos.canvas.FillPolygon(centromereFill,
				annulusSector(circos.center, inner, outer, a+half, 2*half))
		}
	}
	circos.radius = inner
	return nil
}

// CircosGenomicLabels draws the fourth column of each row inside the circle
// at the row's midpoint, joined to the ideogram by a short connector. Rows on
// chromosomes outside the layout are skipped; a position beyond its
// chromosome is an error.
func CircosGenomicLabels(rows []model.CircosRow) error {
	stateMu.Lock()
	defer stateMu.Unlock()
	if !circos.active {
		return ErrCircosNotInitialized
	}

	connector := circos.style.lineStyle(markerColor, 0.3)
	from := circos.radius
	to := from - circos.unit*vg.Length(circos.params.Connector)
	gap := circos.unit * 0.01

	for _, row := range rows {
		s, ok := circos.sectors[row.Chromosome]
		if !ok {
			logger.Warn("Skipping label outside the circular layout",
				zap.String("gene", row.Label),
				zap.String("chromosome", row.Chromosome),
				zap.String("genome", circos.genome.Build))
			continue
		}
		mid := row.Start + (row.End-row.Start)/2
		if row.Start < 0 || mid > s.chromosome.Length {
			return fmt.Errorf("%w: %s %s:%d-%d (length %d)",
				ErrPositionOutOfRange, row.Label, row.Chromosome, row.Start, row.End, s.chromosome.Length)
		}

		a := s.angle(mid)
		p0 := polar(circos.center, from, a)
		p1 := polar(circos.center, to, a)
		circos.canvas.StrokeLine2(connector, p0.X, p0.Y, p1.X, p1.Y)

		sty := circos.style.textStyle(circos.params.LabelScale)
		sty.Rotation = a
		sty.XAlign = text.XRight
		// keep text upright on the left half
		if math.Cos(a) < 0 {
			sty.Rotation = a + math.Pi
			sty.XAlign = text.XLeft
		}
		circos.canvas.FillText(sty, polar(circos.center, to-gap, a), row.Label)
	}
	return nil
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

func polar(c vg.Point, r vg.Length, a float64) vg.Point {
	return vg.Point{
		X: c.X + r*vg.Length(math.Cos(a)),
		Y: c.Y + r*vg.Length(math.Sin(a)),
	}
}

// annulusSector approximates a ring segment running clockwise from start.
func annulusSector(c vg.Point, inner, outer vg.Length, start, span float64) []vg.Point {
	steps := int(math.Ceil(span/degToRad(2))) + 1
	pts := make([]vg.Point, 0, 2*(steps+1))
	for i := 0; i <= steps; i++ {
		pts = append(pts, polar(c, outer, start-span*float64(i)/float64(steps)))
	}
	for i := steps; i >= 0; i-- {
		pts = append(pts, polar(c, inner, start-span*float64(i)/float64(steps)))
	}
	return pts
}

func trimChr(name string) string {
	return strings.TrimPrefix(name, model.ChromosomePrefix)
}
