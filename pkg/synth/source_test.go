package synth

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMTSource_Float64(t *testing.T) {
	rnd := rand.New(newMTSource(42))
	assert.Equal(t, 0.3745401188473625, rnd.Float64())
	for range 1000 {
		v := rnd.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestMTSource_LowSeedBits(t *testing.T) {
	a := rand.New(newMTSource(42))
	b := rand.New(newMTSource(42 + 1<<32))
	assert.Equal(t, a.Float64(), b.Float64())
}

func TestGaussian_PairsAndCache(t *testing.T) {
	g := gaussian{mu: 0, sigma: 1, rnd: rand.New(newMTSource(42))}
	assert.InDelta(t, 0.4967141530112327, g.Rand(), 1e-15)
	assert.True(t, g.cached)
	g.Rand()
	assert.False(t, g.cached)

	shifted := gaussian{mu: 5, sigma: 10, rnd: rand.New(newMTSource(42))}
	assert.InDelta(t, 5+10*0.4967141530112327, shifted.Rand(), 1e-12)
}

func TestCumulative(t *testing.T) {
	assert.Equal(t, []float64{0.25, 0.5, 1}, cumulative([]float64{1, 1, 2}))
	cdf := cumulative([]float64{0.3, 0.4, 0.3})
	assert.InDelta(t, 0.3, cdf[0], 1e-15)
	assert.InDelta(t, 0.7, cdf[1], 1e-15)
	assert.Equal(t, 1.0, cdf[2])
}
