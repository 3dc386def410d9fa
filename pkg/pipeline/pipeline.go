package pipeline

import (
	"math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"

	"bizviz/pkg/config"
	"bizviz/pkg/dataprep"
	"bizviz/pkg/render"
	"bizviz/pkg/stats"
	"bizviz/pkg/synth"
	"bizviz/pkg/table"
)

// Variant fixes the grouping and presentation of one chart flavor.
type Variant struct {
	Name        string
	X           string
	Hue         string
	SpendLevels bool // whether the table needs the spend_level column
	Crop        render.CropMode
	Title       string
	XLabel      string
	LegendTitle string
}

var campaignOrder = []string{synth.CampaignEmail, synth.CampaignSocial, synth.CampaignTV}

// VariantSpec returns the variant registered under name.
func VariantSpec(name string) (Variant, error) {
	switch name {
	case config.VariantSpendLevel:
		return Variant{
			Name:        name,
			X:           table.ColSpendLevel,
			Hue:         table.ColCampaign,
			SpendLevels: true,
			Crop:        render.CropTight,
			Title:       "Customer Acquisition by Spend Level and Campaign Type",
			XLabel:      "Marketing Spend Level",
			LegendTitle: "Campaign Type",
		}, nil
	case config.VariantCampaign:
		return Variant{
			Name:   name,
			X:      table.ColCampaign,
			Crop:   render.CropExact,
			Title:  "Customer Acquisition by Campaign Type",
			XLabel: "Campaign Type",
		}, nil
	}
	return Variant{}, errors.Errorf("pipeline: unknown variant %q", name)
}

// Result is what one run produced.
type Result struct {
	Table  *table.Table
	Output render.Output
}

// Pipeline chains generation, table building and rendering for one config.
type Pipeline struct {
	cfg     config.Config
	variant Variant
	logger  *log.Entry
}

// New validates cfg and resolves its variant. A nil logger uses the
// standard logrus logger.
func New(cfg config.Config, logger *log.Entry) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v, err := VariantSpec(cfg.Variant)
	if err != nil {
		return nil, err
	}
	if cfg.Crop != "" {
		if v.Crop, err = render.ParseCropMode(cfg.Crop); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Pipeline{
		cfg:     cfg,
		variant: v,
		logger:  logger.WithField("variant", v.Name),
	}, nil
}

// Variant returns the resolved variant.
func (p *Pipeline) Variant() Variant { return p.variant }

// Params returns the generator parameters for the configured seed and size.
func (p *Pipeline) Params() synth.Params {
	params := synth.DefaultParams()
	params.Seed = p.cfg.Seed
	params.N = p.cfg.Rows
	return params
}

// Build generates the observations and assembles the table.
func (p *Pipeline) Build() (*table.Table, error) {
	params := p.Params()
	cols, err := synth.Generate(params)
	if err != nil {
		return nil, err
	}
	p.logger.WithFields(log.Fields{
		"seed": params.Seed,
		"rows": cols.Len(),
	}).Debug("generated observations")

	var binner *dataprep.Binner
	if p.variant.SpendLevels {
		binner = dataprep.SpendLevels()
	}
	t, err := table.Build(cols, binner)
	if err != nil {
		return nil, err
	}
	p.logger.WithField("columns", t.Schema().FeatureNames).Debug("built table")
	return t, nil
}

// Options returns the render options for the configured variant.
func (p *Pipeline) Options() render.Options {
	opts := render.DefaultOptions()
	opts.X = p.variant.X
	opts.Hue = p.variant.Hue
	opts.HueOrder = campaignOrder
	if p.variant.SpendLevels {
		opts.XOrder = dataprep.SpendLevels().Labels
	} else {
		opts.XOrder = campaignOrder
	}
	opts.Palette = p.cfg.Palette
	opts.Title = p.variant.Title
	opts.XLabel = p.variant.XLabel
	opts.LegendTitle = p.variant.LegendTitle
	opts.Width = vg.Length(p.cfg.Width) * vg.Inch
	opts.Height = vg.Length(p.cfg.Height) * vg.Inch
	opts.DPI = p.cfg.DPI
	opts.Crop = p.variant.Crop
	return opts
}

// Run builds the table, renders it and writes the image.
func (p *Pipeline) Run() (Result, error) {
	t, err := p.Build()
	if err != nil {
		return Result{}, err
	}
	opts := p.Options()
	plt, err := render.Boxplot(t, opts)
	if err != nil {
		return Result{}, err
	}
	out, err := render.Save(plt, opts, p.cfg.Output)
	if err != nil {
		return Result{}, err
	}
	p.logger.WithFields(log.Fields{
		"output": out.Path,
		"width":  out.Width,
		"height": out.Height,
		"bytes":  out.Bytes,
		"crop":   opts.Crop,
	}).Info("wrote chart")
	return Result{Table: t, Output: out}, nil
}

// GroupSummary is the box statistics of one (x, hue) cell.
type GroupSummary struct {
	table.Group
	stats.Summary
}

// Summarize returns box statistics for every cell the chart would draw.
func (p *Pipeline) Summarize(t *table.Table) ([]GroupSummary, error) {
	opts := p.Options()
	groups, err := t.Group(opts.Y, opts.X, opts.Hue, opts.XOrder, opts.HueOrder)
	if err != nil {
		return nil, err
	}
	out := make([]GroupSummary, len(groups))
	for i, g := range groups {
		out[i] = GroupSummary{Group: g, Summary: stats.Describe(g.Values)}
	}
	return out, nil
}

// Share is the fraction of rows carrying one campaign label.
type Share struct {
	Campaign string
	Count    int
	Fraction float64
}

// CampaignShares returns the observed campaign mix in legend order.
func (p *Pipeline) CampaignShares(t *table.Table) ([]Share, error) {
	labels, err := t.Strings(table.ColCampaign)
	if err != nil {
		return nil, err
	}
	_, freq := dataprep.FrequencyEncode(labels)
	out := make([]Share, 0, len(freq))
	for _, c := range dataprep.Levels(labels, campaignOrder) {
		out = append(out, Share{
			Campaign: c,
			Count:    int(math.Round(freq[c] * float64(len(labels)))),
			Fraction: freq[c],
		})
	}
	return out, nil
}
