package synth

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Campaign labels in the order their weights are given.
const (
	CampaignEmail  = "Email"
	CampaignSocial = "Social Media"
	CampaignTV     = "TV Ads"
)

// Params controls the synthetic marketing dataset.
type Params struct {
	Seed uint64
	N    int

	// Spend is drawn uniformly from [SpendMin, SpendMax).
	SpendMin, SpendMax float64

	// Acquisition is LogCoef*ln(spend) plus normal noise.
	LogCoef     float64
	NoiseMean   float64
	NoiseStdDev float64

	Campaigns []string
	Weights   []float64
}

// DefaultParams returns the parameters of the reference dataset:
// 200 rows from seed 42, spend in [10, 100), 30*ln(spend) + N(0, 10)
// and a 0.3/0.4/0.3 campaign split.
func DefaultParams() Params {
	return Params{
		Seed:        42,
		N:           200,
		SpendMin:    10,
		SpendMax:    100,
		LogCoef:     30,
		NoiseMean:   0,
		NoiseStdDev: 10,
		Campaigns:   []string{CampaignEmail, CampaignSocial, CampaignTV},
		Weights:     []float64{0.3, 0.4, 0.3},
	}
}

// Validate reports the first parameter that cannot produce a dataset.
func (p Params) Validate() error {
	if p.N <= 0 {
		return errors.Errorf("synth: row count must be positive, got %d", p.N)
	}
	if p.SpendMin <= 0 {
		return errors.Errorf("synth: minimum spend must be positive for the log transform, got %v", p.SpendMin)
	}
	if p.SpendMin >= p.SpendMax {
		return errors.Errorf("synth: empty spend range [%v, %v)", p.SpendMin, p.SpendMax)
	}
	if p.NoiseStdDev <= 0 {
		return errors.Errorf("synth: noise standard deviation must be positive, got %v", p.NoiseStdDev)
	}
	if len(p.Campaigns) == 0 {
		return errors.New("synth: no campaign types")
	}
	if len(p.Campaigns) != len(p.Weights) {
		return errors.Errorf("synth: %d campaign types but %d weights", len(p.Campaigns), len(p.Weights))
	}
	sum := 0.0
	for i, w := range p.Weights {
		if w < 0 || math.IsNaN(w) {
			return errors.Errorf("synth: invalid weight %v for %q", w, p.Campaigns[i])
		}
		sum += w
	}
	if sum <= 0 {
		return errors.New("synth: campaign weights sum to zero")
	}
	return nil
}

// Columns holds the parallel sequences of one draw. Index i of every slice
// describes the same observation.
type Columns struct {
	Spend    []float64
	Acquired []float64
	Campaign []string
}

// Len returns the number of observations.
func (c Columns) Len() int { return len(c.Spend) }

// Generator draws datasets from a single seeded source. Successive calls to
// Generate continue the same stream.
type Generator struct {
	params Params
	rnd    *rand.Rand

	spend distuv.Uniform
	noise gaussian
	cdf   []float64
}

// NewGenerator validates p and seeds an MT19937 source with the low 32 bits
// of p.Seed.
func NewGenerator(p Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	src := newMTSource(p.Seed)
	rnd := rand.New(src)
	return &Generator{
		params: p,
		rnd:    rnd,
		spend:  distuv.Uniform{Min: p.SpendMin, Max: p.SpendMax, Src: src},
		noise:  gaussian{mu: p.NoiseMean, sigma: p.NoiseStdDev, rnd: rnd},
		cdf:    cumulative(p.Weights),
	}, nil
}

// Params returns the parameters the generator was built with.
func (g *Generator) Params() Params { return g.params }

// Generate draws N observations. All spend values are drawn first, then all
// noise terms, then all campaign labels; changing that order changes every
// value after the first column.
func (g *Generator) Generate() Columns {
	n := g.params.N
	cols := Columns{
		Spend:    make([]float64, n),
		Acquired: make([]float64, n),
		Campaign: make([]string, n),
	}
	for i := range n {
		cols.Spend[i] = g.spend.Rand()
	}
	for i := range n {
		cols.Acquired[i] = g.params.LogCoef*math.Log(cols.Spend[i]) + g.noise.Rand()
	}
	for i := range n {
		cols.Campaign[i] = g.params.Campaigns[g.choose()]
	}
	return cols
}

// choose returns the first index whose cumulative weight exceeds a uniform
// draw.
func (g *Generator) choose() int {
	u := g.rnd.Float64()
	return sort.Search(len(g.cdf)-1, func(i int) bool { return g.cdf[i] > u })
}

// cumulative returns the running sums of w normalized by the total.
func cumulative(w []float64) []float64 {
	cdf := make([]float64, len(w))
	sum := 0.0
	for i, v := range w {
		sum += v
		cdf[i] = sum
	}
	for i := range cdf {
		cdf[i] /= sum
	}
	return cdf
}

// Generate is shorthand for NewGenerator(p) followed by one Generate call.
func Generate(p Params) (Columns, error) {
	g, err := NewGenerator(p)
	if err != nil {
		return Columns{}, err
	}
	return g.Generate(), nil
}
