package render

import (
	"fmt"

	"github.com/yumyai/geneloc/logger"
	"github.com/yumyai/geneloc/pkg/model"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg/draw"
)

// CircosPlotter draws the whole genome as a ring of chromosome sectors with
// gene labels inside the ring.
type CircosPlotter struct {
	Style  Style
	Params CircosParams
}

func NewCircosPlotter() *CircosPlotter {
	return &CircosPlotter{
		Style:  CircosStyle(),
		Params: DefaultCircosParams(),
	}
}

// Plot renders rows on the circular layout of build into path. The shared
// layout is cleared before Plot returns, whatever the outcome.
func (p *CircosPlotter) Plot(path, build string, rows []model.CircosRow) error {
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

	err = WithCircos(dc, p.Style, genome, p.Params, func() error {
		if err := CircosChromosomeNames(); err != nil {
			return err
		}
		if err := CircosIdeogram(); err != nil {
			return err
		}
		return CircosGenomicLabels(rows)
	})
	if err != nil {
		return fmt.Errorf("circos plot: %w", err)
	}

	logger.Debug("Circos drawn", zap.String("genome", build), zap.Int("labels", len(rows)))

	if err := writeCanvas(path, canvas); err != nil {
		return fmt.Errorf("circos plot: %w", err)
	}
	return nil
}
