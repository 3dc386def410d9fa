package synth

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mathext/prng"
)

// mtSource is a rand.Source over MT19937 whose Uint64 packs two 32-bit
// outputs into 53 bits (27 high, 26 low), so rand.Rand.Float64 yields the
// genrand_res53 double of the reference mt19937ar implementation.
type mtSource struct {
	mt *prng.MT19937
}

func newMTSource(seed uint64) *mtSource {
	mt := prng.NewMT19937()
	mt.Seed(seed)
	return &mtSource{mt: mt}
}

func (s *mtSource) Uint64() uint64 {
	a := uint64(s.mt.Uint32() >> 5)
	b := uint64(s.mt.Uint32() >> 6)
	return a<<26 | b
}

// gaussian draws normal variates with the Marsaglia polar method. Each
// accepted pair yields two values; the second is held for the next call.
type gaussian struct {
	mu, sigma float64
	rnd       *rand.Rand

	cached bool
	next   float64
}

func (g *gaussian) Rand() float64 {
	return g.mu + g.sigma*g.standard()
}

func (g *gaussian) standard() float64 {
	if g.cached {
		g.cached = false
		return g.next
	}
	var x1, x2, r2 float64
	for {
		x1 = 2*g.rnd.Float64() - 1
		x2 = 2*g.rnd.Float64() - 1
		r2 = x1*x1 + x2*x2
		if r2 < 1 && r2 != 0 {
			break
		}
	}
	f := math.Sqrt(-2 * math.Log(r2) / r2)
	g.next = f * x1
	g.cached = true
	return f * x2
}
