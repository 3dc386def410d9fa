package render

import (
	"image/color"

	"github.com/pkg/errors"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"bizviz/pkg/table"
)

// CropMode selects how the rendered canvas is trimmed before saving.
type CropMode string

const (
	// CropTight trims background margins around the drawn content.
	CropTight CropMode = "tight"
	// CropExact keeps the full nominal canvas.
	CropExact CropMode = "exact"
)

// ParseCropMode returns the crop mode named s.
func ParseCropMode(s string) (CropMode, error) {
	switch m := CropMode(s); m {
	case CropTight, CropExact:
		return m, nil
	}
	return "", errors.Errorf("render: unknown crop mode %q (want %q or %q)", s, CropTight, CropExact)
}

// Options describes one boxplot. X and Hue name categorical columns, Y a
// numeric one; Hue may be empty.
type Options struct {
	X, Y, Hue        string
	XOrder, HueOrder []string

	Palette     string
	Title       string
	XLabel      string
	YLabel      string
	LegendTitle string

	Width, Height vg.Length
	DPI           int
	Crop          CropMode
}

// DefaultOptions returns an 8in x 8in, 64 dpi (512x512 px) Set2 boxplot of
// customers acquired, tightly cropped.
func DefaultOptions() Options {
	return Options{
		Y:       table.ColAcquired,
		Palette: "Set2",
		YLabel:  "Customers Acquired",
		Width:   8 * vg.Inch,
		Height:  8 * vg.Inch,
		DPI:     64,
		Crop:    CropTight,
	}
}

// PixelSize returns the nominal raster size of the canvas.
func (o Options) PixelSize() (int, int) {
	w := o.Width / vg.Inch * vg.Length(o.DPI)
	h := o.Height / vg.Inch * vg.Length(o.DPI)
	return int(w + 0.5), int(h + 0.5)
}

func (o Options) validate() error {
	if o.X == "" || o.Y == "" {
		return errors.New("render: x and y columns are required")
	}
	if o.Width <= axisAllowance || o.Height <= 0 {
		return errors.Errorf("render: canvas must be wider than %v and have a positive height, got %v x %v",
			axisAllowance, o.Width, o.Height)
	}
	if o.DPI <= 0 {
		return errors.Errorf("render: dpi must be positive, got %d", o.DPI)
	}
	if _, err := ParseCropMode(string(o.Crop)); err != nil {
		return err
	}
	return nil
}

// axisAllowance approximates the canvas width taken by the y axis, its
// label and tick labels.
const axisAllowance = vg.Inch

// Text sizes of the presentation theme.
var (
	titleSize = vg.Points(16)
	labelSize = vg.Points(14)
	tickSize  = vg.Points(12)
)

// Boxplot draws the distribution of opts.Y for every category of opts.X,
// split by opts.Hue when set.
func Boxplot(t *table.Table, opts Options) (*plot.Plot, error) {
	p, _, err := boxplot(t, opts)
	return p, err
}

func boxplot(t *table.Table, opts Options) (*plot.Plot, []*plotter.BoxPlot, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	if t.Len() == 0 {
		return nil, nil, errors.New("render: empty table")
	}
	groups, err := t.Group(opts.Y, opts.X, opts.Hue, opts.XOrder, opts.HueOrder)
	if err != nil {
		return nil, nil, errors.Wrap(err, "render")
	}
	xLevels, err := t.Categories(opts.X, opts.XOrder)
	if err != nil {
		return nil, nil, errors.Wrap(err, "render")
	}
	hueLevels := []string{""}
	if opts.Hue != "" {
		if hueLevels, err = t.Categories(opts.Hue, opts.HueOrder); err != nil {
			return nil, nil, errors.Wrap(err, "render")
		}
	}

	// Without a hue each x category gets its own color.
	colorKeys := hueLevels
	if opts.Hue == "" {
		colorKeys = xLevels
	}
	colors, err := paletteColors(opts.Palette, len(colorKeys))
	if err != nil {
		return nil, nil, err
	}
	colorOf := make(map[string]color.Color, len(colorKeys))
	for i, k := range colorKeys {
		colorOf[k] = colors[i]
	}

	p := plot.New()
	applyTheme(p, opts)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	xIndex := make(map[string]int, len(xLevels))
	for i, x := range xLevels {
		xIndex[x] = i
	}
	hueIndex := make(map[string]int, len(hueLevels))
	for i, h := range hueLevels {
		hueIndex[h] = i
	}

	// Each x category spans one data unit; its boxes share 80% of it.
	unit := (opts.Width - axisAllowance) / vg.Length(len(xLevels))
	slot := unit * 0.8 / vg.Length(len(hueLevels))
	boxes := make([]*plotter.BoxPlot, 0, len(groups))
	for _, g := range groups {
		b, err := plotter.NewBoxPlot(slot*0.85, float64(xIndex[g.X]), plotter.Values(g.Values))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "render: box for %s/%s", g.X, g.Hue)
		}
		h := hueIndex[g.Hue]
		b.Offset = (vg.Length(h) - vg.Length(len(hueLevels)-1)/2) * slot
		if opts.Hue == "" {
			b.FillColor = colorOf[g.X]
		} else {
			b.FillColor = colorOf[g.Hue]
		}
		b.BoxStyle.Width = vg.Points(1)
		b.MedianStyle.Width = vg.Points(1.5)
		b.WhiskerStyle = b.BoxStyle
		b.GlyphStyle.Shape = draw.CircleGlyph{}
		b.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(b)
		boxes = append(boxes, b)
	}

	p.NominalX(xLevels...)
	p.X.Min = -0.5
	p.X.Max = float64(len(xLevels)) - 0.5

	if opts.Hue != "" {
		var entries []string
		if opts.LegendTitle != "" {
			p.Legend.Add(opts.LegendTitle)
			entries = append(entries, opts.LegendTitle)
		}
		for _, h := range hueLevels {
			p.Legend.Add(h, swatch{fill: colorOf[h], line: plotter.DefaultLineStyle})
		}
		entries = append(entries, hueLevels...)
		placeLegend(p, opts, boxes, entries)
	}
	return p, boxes, nil
}

func applyTheme(p *plot.Plot, opts Options) {
	p.Title.Text = opts.Title
	p.Title.TextStyle.Font.Size = titleSize
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(8)

	p.X.Label.Text = opts.XLabel
	p.X.Label.TextStyle.Font.Size = labelSize
	p.Y.Label.Text = opts.YLabel
	p.Y.Label.TextStyle.Font.Size = labelSize
	p.X.Tick.Label.Font.Size = tickSize
	p.Y.Tick.Label.Font.Size = tickSize

	p.Legend.TextStyle.Font.Size = tickSize
	p.Legend.ThumbnailWidth = vg.Points(16)
}

// paletteColors returns n colors of a qualitative ColorBrewer palette.
// Brewer palettes start at three colors; smaller requests take a prefix.
func paletteColors(name string, n int) ([]color.Color, error) {
	size := max(n, 3)
	pal, err := brewer.GetPalette(brewer.TypeQualitative, name, size)
	if err != nil {
		return nil, errors.Wrapf(err, "render: palette %q with %d colors", name, size)
	}
	return pal.Colors()[:n], nil
}

// swatch is a filled square legend thumbnail.
type swatch struct {
	fill color.Color
	line draw.LineStyle
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.fill, c.ClipPolygonY(pts))
	pts = append(pts, vg.Point{X: c.Min.X, Y: c.Min.Y})
	c.StrokeLines(s.line, c.ClipLinesY(pts)...)
}
