package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizviz/pkg/config"
	"bizviz/pkg/dataprep"
	"bizviz/pkg/logging"
	"bizviz/pkg/render"
	"bizviz/pkg/table"
)

func testConfig(t *testing.T, variant string) config.Config {
	c := config.Defaults()
	c.Variant = variant
	c.Output = filepath.Join(t.TempDir(), "chart.png")
	return c
}

func TestVariantSpec(t *testing.T) {
	v, err := VariantSpec(config.VariantSpendLevel)
	require.NoError(t, err)
	assert.Equal(t, table.ColSpendLevel, v.X)
	assert.Equal(t, table.ColCampaign, v.Hue)
	assert.Equal(t, render.CropTight, v.Crop)
	assert.True(t, v.SpendLevels)

	v, err = VariantSpec(config.VariantCampaign)
	require.NoError(t, err)
	assert.Equal(t, table.ColCampaign, v.X)
	assert.Empty(t, v.Hue)
	assert.Equal(t, render.CropExact, v.Crop)
	assert.False(t, v.SpendLevels)

	_, err = VariantSpec("pie")
	assert.Error(t, err)
}

func TestNew_CropOverride(t *testing.T) {
	c := testConfig(t, config.VariantSpendLevel)
	c.Crop = "exact"
	p, err := New(c, nil)
	require.NoError(t, err)
	assert.Equal(t, render.CropExact, p.Variant().Crop)
	assert.Equal(t, render.CropExact, p.Options().Crop)
}

func TestNew_InvalidConfig(t *testing.T) {
	c := testConfig(t, config.VariantSpendLevel)
	c.Rows = -1
	_, err := New(c, nil)
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	tests := map[string]struct {
		variant     string
		spendLevels bool
	}{
		"spend level": {variant: config.VariantSpendLevel, spendLevels: true},
		"campaign":    {variant: config.VariantCampaign},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := New(testConfig(t, tc.variant), nil)
			require.NoError(t, err)
			tbl, err := p.Build()
			require.NoError(t, err)
			assert.Equal(t, 200, tbl.Len())
			assert.Equal(t, tc.spendLevels, tbl.HasColumn(table.ColSpendLevel))
			assert.InDelta(t, 43.708610696262625, tbl.Row(0).Spend, 1e-12)
			assert.Equal(t, "Social Media", tbl.Row(0).Campaign)
		})
	}
}

func TestRun(t *testing.T) {
	tests := map[string]struct {
		variant string
		exact   bool
	}{
		"spend level is tightly cropped": {variant: config.VariantSpendLevel},
		"campaign keeps the full canvas": {variant: config.VariantCampaign, exact: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewLogger(&buf, log.InfoLevel)
			c := testConfig(t, tc.variant)

			p, err := New(c, log.NewEntry(logger))
			require.NoError(t, err)
			res, err := p.Run()
			require.NoError(t, err)

			info, err := os.Stat(c.Output)
			require.NoError(t, err)
			assert.Equal(t, info.Size(), res.Output.Bytes)
			assert.Greater(t, res.Output.Bytes, int64(0))
			assert.Equal(t, 200, res.Table.Len())
			if tc.exact {
				assert.Equal(t, 512, res.Output.Width)
				assert.Equal(t, 512, res.Output.Height)
			} else {
				assert.LessOrEqual(t, res.Output.Width, 512)
				assert.LessOrEqual(t, res.Output.Height, 512)
			}
			assert.Contains(t, buf.String(), "msg=\"wrote chart\"")
			assert.Contains(t, buf.String(), "variant="+tc.variant)
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	dir := t.TempDir()
	var outputs [][]byte
	for _, name := range []string{"a.png", "b.png"} {
		c := config.Defaults()
		c.Output = filepath.Join(dir, name)
		p, err := New(c, nil)
		require.NoError(t, err)
		_, err = p.Run()
		require.NoError(t, err)
		data, err := os.ReadFile(c.Output)
		require.NoError(t, err)
		outputs = append(outputs, data)
	}
	assert.Equal(t, outputs[0], outputs[1])
}

func TestSummarize(t *testing.T) {
	p, err := New(testConfig(t, config.VariantSpendLevel), nil)
	require.NoError(t, err)
	tbl, err := p.Build()
	require.NoError(t, err)

	summaries, err := p.Summarize(tbl)
	require.NoError(t, err)
	require.NotEmpty(t, summaries)

	total := 0
	for _, s := range summaries {
		total += s.N
		assert.Equal(t, len(s.Values), s.N)
		assert.LessOrEqual(t, s.Q1, s.Median)
		assert.LessOrEqual(t, s.Median, s.Q3)
		assert.Contains(t, dataprep.SpendLevels().Labels, s.X)
	}
	assert.Equal(t, 200, total)
	assert.Equal(t, dataprep.LowSpend, summaries[0].X)
	assert.Equal(t, "Email", summaries[0].Hue)
	assert.Equal(t, 22, summaries[0].N)
	assert.Len(t, summaries, 9)
}

func TestCampaignShares(t *testing.T) {
	p, err := New(testConfig(t, config.VariantCampaign), nil)
	require.NoError(t, err)
	tbl, err := p.Build()
	require.NoError(t, err)

	shares, err := p.CampaignShares(tbl)
	require.NoError(t, err)
	assert.Equal(t, []Share{
		{Campaign: "Email", Count: 63, Fraction: 0.315},
		{Campaign: "Social Media", Count: 81, Fraction: 0.405},
		{Campaign: "TV Ads", Count: 56, Fraction: 0.28},
	}, shares)
}
