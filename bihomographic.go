package contfrac

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/kbolino/contfrac/rational"
)

// Initial coefficients (a, b, c, d, e, f, g, h) of the bihomographic function
// (a*x*y+b*x+c*y+d)/(e*x*y+f*x+g*y+h) for the four basic operations.
var (
	opAdd = [8]int64{0, 1, 1, 0, 0, 0, 0, 1}
	opSub = [8]int64{0, 1, -1, 0, 0, 0, 0, 1}
	opMul = [8]int64{1, 0, 0, 0, 0, 0, 0, 1}
	opDiv = [8]int64{0, 1, 0, 0, 0, 0, 1, 0}
)

// bihomographic produces the coefficients of
// (a*x*y+b*x+c*y+d)/(e*x*y+f*x+g*y+h), where x and y are the values of its two
// input sources.
//
// As with homographic, the coefficients describe the remaining transformation
// as a function of the unread tails of x and y. Once both are primed, the
// output lies within the four corner ratios a/e, b/f, c/g and d/h as long as
// e, f, g and h share a sign.
//
// When emission is not yet possible, the input whose tail moves the output
// more is read next: x when |a/e - c/g| is wider, y when |a/e - b/f| is
// wider. An undefined spread counts as infinitely wide. Ties alternate,
// starting with the input that was read less recently. The choice affects only
// how many terms are read, never the result.
type bihomographic struct {
	x, y Source
	m    [8]*big.Int

	xPrimed, yPrimed bool
	lastX            bool // the most recent ingest was from x
	emitted          bool
	stall            int
	budget           int
	rest             *homographic // set once either input is exhausted
	done             bool
	err              error
	log              *slog.Logger
}

func newBihomographic(x, y Source, m [8]*big.Int, budget int, log *slog.Logger) *bihomographic {
	b := &bihomographic{x: x, y: y, m: m, budget: budget, log: log}
	if allZero(m[4], m[5], m[6], m[7]) {
		b.err = fmt.Errorf("zero denominator: %w", ErrDegenerateTransform)
	}
	return b
}

func bigTuple(v [8]int64) [8]*big.Int {
	var m [8]*big.Int
	for i := range v {
		m[i] = big.NewInt(v[i])
	}
	return m
}

func (b *bihomographic) next() (*big.Int, bool, error) {
	if b.err != nil {
		return nil, false, b.err
	}
	if b.rest != nil {
		return b.rest.next()
	}
	if b.done {
		return nil, false, nil
	}
	for {
		if allZero(b.m[4], b.m[5], b.m[6], b.m[7]) {
			// only reachable after an emission that was exact
			b.done = true
			return nil, false, nil
		}
		if t, ok := b.emittable(); ok {
			b.emit(t)
			return t, true, nil
		}
		if b.budget > 0 && b.stall >= b.budget {
			b.err = fmt.Errorf("no coefficient after %d input terms: %w", b.stall, ErrPrecisionExceeded)
			return nil, false, b.err
		}
		fromX := b.chooseX()
		src := b.y
		if fromX {
			src = b.x
		}
		_, ok, err := src.Peek()
		if err != nil {
			b.err = fmt.Errorf("reading input: %w", err)
			return nil, false, b.err
		}
		if !ok {
			if err := b.degrade(fromX); err != nil {
				b.err = err
				return nil, false, err
			}
			return b.rest.next()
		}
		p, err := src.Advance()
		if err != nil {
			b.err = fmt.Errorf("reading input: %w", err)
			return nil, false, b.err
		}
		if fromX {
			b.ingestX(p)
		} else {
			b.ingestY(p)
		}
	}
}

// emittable returns the next output coefficient if all four corner ratios
// share the same floor.
func (b *bihomographic) emittable() (*big.Int, bool) {
	if !b.xPrimed || !b.yPrimed {
		return nil, false
	}
	s := b.m[4].Sign()
	for _, den := range b.m[4:] {
		if den.Sign() == 0 || den.Sign() != s {
			return nil, false
		}
	}
	t := rational.FloorDiv(b.m[0], b.m[4])
	for i := 1; i < 4; i++ {
		if rational.FloorDiv(b.m[i], b.m[i+4]).Cmp(t) != 0 {
			return nil, false
		}
	}
	return t, true
}

// emit composes the function with z -> 1/(z-t).
func (b *bihomographic) emit(t *big.Int) {
	var m [8]*big.Int
	for i := 0; i < 4; i++ {
		m[i] = b.m[i+4]
		m[i+4] = new(big.Int).Sub(b.m[i], new(big.Int).Mul(t, b.m[i+4]))
	}
	b.m = m
	b.emitted = true
	b.stall = 0
	b.log.Debug("emit", "engine", "bihomographic", "term", t)
}

// ingestX substitutes x -> p + 1/x.
func (b *bihomographic) ingestX(p *big.Int) {
	a, bb, c, d, e, f, g, h := b.m[0], b.m[1], b.m[2], b.m[3], b.m[4], b.m[5], b.m[6], b.m[7]
	b.m = [8]*big.Int{
		mulAdd(a, p, c), mulAdd(bb, p, d), a, bb,
		mulAdd(e, p, g), mulAdd(f, p, h), e, f,
	}
	b.xPrimed = true
	b.lastX = true
	b.stall++
	b.log.Debug("ingest", "engine", "bihomographic", "input", "x", "term", p)
}

// ingestY substitutes y -> q + 1/y.
func (b *bihomographic) ingestY(q *big.Int) {
	a, bb, c, d, e, f, g, h := b.m[0], b.m[1], b.m[2], b.m[3], b.m[4], b.m[5], b.m[6], b.m[7]
	b.m = [8]*big.Int{
		mulAdd(a, q, bb), a, mulAdd(c, q, d), c,
		mulAdd(e, q, f), e, mulAdd(g, q, h), g,
	}
	b.yPrimed = true
	b.lastX = false
	b.stall++
	b.log.Debug("ingest", "engine", "bihomographic", "input", "y", "term", q)
}

// chooseX reports whether x should be read next.
func (b *bihomographic) chooseX() bool {
	switch {
	case !b.xPrimed:
		return true
	case !b.yPrimed:
		return false
	}
	a, bb, c, e, f, g := b.m[0], b.m[1], b.m[2], b.m[4], b.m[5], b.m[6]
	wx, okx := spread(a, e, c, g)
	wy, oky := spread(a, e, bb, f)
	switch {
	case !okx && !oky:
		return !b.lastX
	case !okx:
		return true
	case !oky:
		return false
	}
	switch wx.Cmp(wy) {
	case 1:
		return true
	case -1:
		return false
	}
	return !b.lastX
}

// degrade replaces the engine by a homographic one over the input that is not
// yet exhausted, with the exhausted tail fixed at ∞.
//
// Once the exhausted input has been read, the kept coefficients are
// proportional to the numerator and denominator of the whole expression as a
// function of the other input. If they all vanish, the expression is 0/0.
func (b *bihomographic) degrade(xDone bool) error {
	a, bb, c, d, e, f, g, h := b.m[0], b.m[1], b.m[2], b.m[3], b.m[4], b.m[5], b.m[6], b.m[7]
	var src Source
	var primed, read bool
	var n [4]*big.Int
	if xDone {
		// z -> (a*y+b)/(e*y+f), or (c*y+d)/(g*y+h) if x was never read
		src, primed, read = b.y, b.yPrimed, b.xPrimed
		n = [4]*big.Int{a, bb, e, f}
		if !read && allZero(a, bb, e, f) {
			n = [4]*big.Int{c, d, g, h}
		}
	} else {
		// z -> (a*x+c)/(e*x+g), or (b*x+d)/(f*x+h) if y was never read
		src, primed, read = b.x, b.xPrimed, b.yPrimed
		n = [4]*big.Int{a, c, e, g}
		if !read && allZero(a, c, e, g) {
			n = [4]*big.Int{bb, d, f, h}
		}
	}
	b.log.Debug("input exhausted", "engine", "bihomographic", "x", xDone)
	if allZero(n[:]...) {
		return fmt.Errorf("0/0: %w", ErrDivByZero)
	}
	b.rest = &homographic{
		x: src,
		a: n[0], b: n[1], c: n[2], d: n[3],
		primed:  primed,
		emitted: b.emitted,
		stall:   b.stall,
		budget:  b.budget,
		log:     b.log,
	}
	return nil
}

func (b *bihomographic) truncated() bool {
	return truncated(b.x) || truncated(b.y)
}

// spread returns |p/q - r/s|, or false if either ratio is undefined.
func spread(p, q, r, s *big.Int) (rational.N, bool) {
	if q.Sign() == 0 || s.Sign() == 0 {
		return rational.N{}, false
	}
	u, _ := rational.TryBig(p, q)
	v, _ := rational.TryBig(r, s)
	return u.Sub(v).Abs(), true
}

// mulAdd returns x*y+z as a new integer.
func mulAdd(x, y, z *big.Int) *big.Int {
	r := new(big.Int).Mul(x, y)
	return r.Add(r, z)
}

func allZero(xs ...*big.Int) bool {
	for _, x := range xs {
		if x.Sign() != 0 {
			return false
		}
	}
	return true
}
