package contfrac

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/kbolino/contfrac/rational"
)

// homographic produces the coefficients of (a*x+b)/(c*x+d), where x is the
// value of its input source.
//
// The matrix always describes the part of the transformation that has not
// been applied yet, as a function of the unread tail of x. Once x has been
// primed by reading its first term, that tail lies in [1, ∞], so the output
// lies between b/d and a/c whenever c and d share a sign; if both have the
// same floor, that floor is the next output coefficient.
type homographic struct {
	x          Source
	a, b, c, d *big.Int

	primed  bool // x has been read at least once
	emitted bool // at least one coefficient has been produced
	stall   int  // ingests since the last emission
	budget  int
	tail    *euclid // set once x is exhausted
	done    bool
	err     error
	log     *slog.Logger
}

func newHomographic(x Source, a, b, c, d *big.Int, budget int, log *slog.Logger) *homographic {
	h := &homographic{
		x: x,
		a: a, b: b, c: c, d: d,
		budget: budget,
		log:    log,
	}
	if c.Sign() == 0 && d.Sign() == 0 {
		h.err = fmt.Errorf("(%s*x+%s)/(0*x+0): %w", a, b, ErrDegenerateTransform)
	}
	return h
}

func (h *homographic) next() (*big.Int, bool, error) {
	if h.err != nil {
		return nil, false, h.err
	}
	if h.tail != nil {
		return h.tail.next()
	}
	if h.done {
		return nil, false, nil
	}
	for {
		if h.c.Sign() == 0 && h.d.Sign() == 0 {
			return h.infinite()
		}
		if t, ok := h.emittable(); ok {
			h.emit(t)
			return t, true, nil
		}
		if h.budget > 0 && h.stall >= h.budget {
			h.err = fmt.Errorf("no coefficient after %d input terms: %w", h.stall, ErrPrecisionExceeded)
			return nil, false, h.err
		}
		_, ok, err := h.x.Peek()
		if err != nil {
			h.err = fmt.Errorf("reading input: %w", err)
			return nil, false, h.err
		}
		if !ok {
			return h.finish()
		}
		p, err := h.x.Advance()
		if err != nil {
			h.err = fmt.Errorf("reading input: %w", err)
			return nil, false, h.err
		}
		h.ingest(p)
	}
}

// emittable returns the next output coefficient if the matrix determines it.
func (h *homographic) emittable() (*big.Int, bool) {
	if !h.primed || h.c.Sign() == 0 || h.d.Sign() == 0 || h.c.Sign() != h.d.Sign() {
		return nil, false
	}
	t := rational.FloorDiv(h.a, h.c)
	if t.Cmp(rational.FloorDiv(h.b, h.d)) != 0 {
		return nil, false
	}
	return t, true
}

// emit composes the matrix with y -> 1/(y-t).
func (h *homographic) emit(t *big.Int) {
	a := new(big.Int).Sub(h.a, new(big.Int).Mul(t, h.c))
	b := new(big.Int).Sub(h.b, new(big.Int).Mul(t, h.d))
	h.a, h.b, h.c, h.d = h.c, h.d, a, b
	h.emitted = true
	h.stall = 0
	h.log.Debug("emit", "engine", "homographic", "term", t)
}

// ingest substitutes x -> p + 1/x.
func (h *homographic) ingest(p *big.Int) {
	a := new(big.Int).Mul(h.a, p)
	a.Add(a, h.b)
	c := new(big.Int).Mul(h.c, p)
	c.Add(c, h.d)
	h.a, h.b, h.c, h.d = a, h.a, c, h.c
	h.primed = true
	h.stall++
	h.log.Debug("ingest", "engine", "homographic", "term", p)
}

// finish evaluates the matrix at x = ∞ once the input is exhausted and
// produces the coefficients of that exact value.
//
// Once x has been read, a and c are proportional to the numerator and
// denominator of the whole expression at the exact value of x, so a == c == 0
// means 0/0. Before that, x itself is ∞ and the matrix (0, b, 0, d) is the
// constant b/d.
func (h *homographic) finish() (*big.Int, bool, error) {
	num, den := h.a, h.c
	if num.Sign() == 0 && den.Sign() == 0 {
		if h.primed {
			h.err = fmt.Errorf("0/0: %w", ErrDivByZero)
			return nil, false, h.err
		}
		num, den = h.b, h.d
	}
	if den.Sign() == 0 {
		return h.infinite()
	}
	r, err := rational.TryBig(num, den)
	if err != nil {
		h.err = err
		return nil, false, err
	}
	h.log.Debug("input exhausted", "engine", "homographic", "value", r)
	h.tail = newEuclid(r)
	return h.tail.next()
}

// infinite handles a remaining value of ∞. After an emission it means the
// previous coefficient was exact; before any, the whole value is infinite.
func (h *homographic) infinite() (*big.Int, bool, error) {
	switch {
	case h.emitted:
		h.done = true
		return nil, false, nil
	case h.a.Sign() == 0 && h.b.Sign() == 0:
		h.err = ErrDegenerateTransform
	default:
		h.err = ErrDivByZero
	}
	return nil, false, h.err
}

func (h *homographic) truncated() bool {
	return truncated(h.x)
}
