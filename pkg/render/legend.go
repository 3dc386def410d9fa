package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/recorder"
)

// legendGap is the clearance kept between the legend and the boxes under it.
var legendGap = vg.Points(4)

// placeLegend puts the legend in the top corner above the x category whose
// values reach lower, then raises the y range until no box or outlier under
// the legend reaches into it. entries are the legend texts in order.
func placeLegend(p *plot.Plot, opts Options, boxes []*plotter.BoxPlot, entries []string) {
	p.Legend.Top = true
	p.Legend.Left = sideMax(boxes, false) < sideMax(boxes, true)

	// Raising Y.Max can widen the tick labels and shift the data area, so
	// settle the layout over a few passes.
	for range 8 {
		da := layoutCanvas(p, opts)
		r := legendRect(&p.Legend, da, entries)

		hi, radius, found := 0.0, vg.Length(0), false
		for _, b := range boxes {
			ext := boxExtent(p, da, b)
			if ext.Max.X < r.Min.X || ext.Min.X > r.Max.X {
				continue
			}
			if !found || b.Max > hi {
				hi = b.Max
			}
			radius = max(radius, b.GlyphStyle.Radius)
			found = true
		}
		if !found {
			return
		}
		target := r.Min.Y - legendGap - radius
		if da.Y(p.Y.Norm(hi)) <= target {
			return
		}
		f := float64((target - da.Min.Y) / (da.Max.Y - da.Min.Y))
		if f <= 0 {
			// The legend is taller than the data area.
			return
		}
		p.Y.Max = p.Y.Min + (hi-p.Y.Min)/f
	}
}

// sideMax returns the largest value drawn at the last x category when last
// is set, else at the first one.
func sideMax(boxes []*plotter.BoxPlot, last bool) float64 {
	if len(boxes) == 0 {
		return 0
	}
	loc := boxes[0].Location
	for _, b := range boxes {
		if (last && b.Location > loc) || (!last && b.Location < loc) {
			loc = b.Location
		}
	}
	hi, found := 0.0, false
	for _, b := range boxes {
		if b.Location == loc && (!found || b.Max > hi) {
			hi, found = b.Max, true
		}
	}
	return hi
}

// layoutCanvas returns the data area p would draw into on a canvas of the
// options' size.
func layoutCanvas(p *plot.Plot, opts Options) draw.Canvas {
	c := draw.Canvas{
		Canvas:    &recorder.Canvas{},
		Rectangle: vg.Rectangle{Max: vg.Point{X: opts.Width, Y: opts.Height}},
	}
	return p.DataCanvas(c)
}

// legendRect returns the area the legend covers when drawn against the top
// of c. It follows plot.Legend.Draw and pads the bottom by one descent for
// the last entry's text.
func legendRect(l *plot.Legend, c draw.Canvas, entries []string) vg.Rectangle {
	sty := l.TextStyle
	var enth, width vg.Length
	for _, e := range entries {
		enth = max(enth, sty.Rectangle(e).Max.Y)
		width = max(width, l.ThumbnailWidth+sty.Rectangle(" "+e).Max.X)
	}
	n := vg.Length(len(entries))
	descent := sty.FontExtents().Descent

	var r vg.Rectangle
	r.Max.Y = c.Max.Y + l.YOffs
	r.Min.Y = r.Max.Y - 2*descent - n*enth - (n-1)*l.Padding
	if l.Left {
		r.Min.X = c.Min.X + l.XOffs
		r.Max.X = r.Min.X + width
	} else {
		r.Max.X = c.Max.X + l.XOffs
		r.Min.X = r.Max.X - width
	}
	return r
}

// boxExtent returns the area b covers on c, including its outlier glyphs.
func boxExtent(p *plot.Plot, c draw.Canvas, b *plotter.BoxPlot) vg.Rectangle {
	x := c.X(p.X.Norm(b.Location)) + b.Offset
	return vg.Rectangle{
		Min: vg.Point{X: x - b.Width/2, Y: c.Y(p.Y.Norm(b.Min)) - b.GlyphStyle.Radius},
		Max: vg.Point{X: x + b.Width/2, Y: c.Y(p.Y.Norm(b.Max)) + b.GlyphStyle.Radius},
	}
}
