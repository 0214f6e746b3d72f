package contfrac

import (
	"fmt"
	"math/big"

	"github.com/kbolino/contfrac/rational"
)

// Source is a stateful cursor over a possibly infinite sequence of continued
// fraction coefficients.
//
// Peek returns the next coefficient without consuming it; ok is false once the
// sequence is exhausted. Advance consumes and returns the next coefficient;
// calling Advance on an exhausted source returns ErrStreamExhausted.
//
// Coefficients returned by a Source are shared and must not be modified.
type Source interface {
	Peek() (t *big.Int, ok bool, err error)
	Advance() (*big.Int, error)
}

// Truncator is implemented by sources that may stop short of the value they
// approximate. Truncated is only meaningful once the source is exhausted.
type Truncator interface {
	Truncated() bool
}

// truncated reports whether s is known to have been cut short.
func truncated(s Source) bool {
	t, ok := s.(Truncator)
	return ok && t.Truncated()
}

// producer yields the coefficients of a sequence in order. It is driven only
// by a sequence, which memoizes what it produces.
type producer interface {
	next() (t *big.Int, ok bool, err error)
}

// sequence is the shared, append-only store of coefficients behind one
// ContFrac. Cursors read from it at their own positions and drive the
// producer on demand.
type sequence struct {
	src   producer
	terms []*big.Int
	done  bool
	err   error
}

func newSequence(p producer) *sequence {
	return &sequence{src: p}
}

// at returns the coefficient at index i, producing terms as needed.
func (s *sequence) at(i int) (*big.Int, bool, error) {
	for len(s.terms) <= i {
		if s.err != nil {
			return nil, false, s.err
		}
		if s.done {
			return nil, false, nil
		}
		t, ok, err := s.src.next()
		switch {
		case err != nil:
			s.err = err
		case !ok:
			s.done = true
		case len(s.terms) > 0 && t.Sign() <= 0:
			s.err = fmt.Errorf("coefficient %d is %s: %w", len(s.terms), t, ErrInvalidTerm)
		default:
			s.terms = append(s.terms, t)
		}
	}
	return s.terms[i], true, nil
}

func (s *sequence) truncated() bool {
	t, ok := s.src.(interface{ truncated() bool })
	return ok && t.truncated()
}

// Cursor is a Source reading one ContFrac's coefficients from its own
// position. Any number of cursors may read the same ContFrac without
// interfering with each other, but a Cursor is not safe for concurrent use.
type Cursor struct {
	seq *sequence
	pos int
}

func newCursor(p producer) *Cursor {
	return &Cursor{seq: newSequence(p)}
}

// Peek returns the next coefficient without consuming it.
func (c *Cursor) Peek() (*big.Int, bool, error) {
	return c.seq.at(c.pos)
}

// Advance consumes and returns the next coefficient.
func (c *Cursor) Advance() (*big.Int, error) {
	t, ok, err := c.seq.at(c.pos)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStreamExhausted
	}
	c.pos++
	return t, nil
}

// Truncated reports whether the sequence stopped short of the value it
// approximates, such as a bounded expansion of an irrational number.
func (c *Cursor) Truncated() bool {
	return c.seq.truncated()
}

// NewRationalSource returns a finite Source of the canonical coefficients of
// r, obtained with Euclid's algorithm.
func NewRationalSource(r rational.N) *Cursor {
	return newCursor(newEuclid(r))
}

// NewSliceSource returns a finite Source of the given coefficients. The terms
// are copied.
func NewSliceSource(terms ...*big.Int) *Cursor {
	cp := make([]*big.Int, len(terms))
	for i, t := range terms {
		cp[i] = new(big.Int).Set(t)
	}
	return newCursor(&slice{terms: cp})
}

// NewFloatSource returns a Source approximating v by a bounded expansion of at
// most maxTerms coefficients; if maxTerms < 1, DefaultMaxTerms is used. See
// FromFloat64 for details.
func NewFloatSource(v float64, maxTerms int) (*Cursor, error) {
	terms, trunc, err := expandFloat(v, maxTerms)
	if err != nil {
		return nil, err
	}
	return newCursor(&slice{terms: terms, trunc: trunc}), nil
}

// euclid produces the coefficients of p/q.
type euclid struct {
	p, q *big.Int
}

func newEuclid(r rational.N) *euclid {
	return &euclid{p: r.Num(), q: r.Den()}
}

func (e *euclid) next() (*big.Int, bool, error) {
	if e.q.Sign() == 0 {
		return nil, false, nil
	}
	t := rational.FloorDiv(e.p, e.q)
	r := new(big.Int).Mul(t, e.q)
	r.Sub(e.p, r)
	e.p, e.q = e.q, r
	return t, true, nil
}

// slice produces a fixed list of coefficients.
type slice struct {
	terms []*big.Int
	i     int
	trunc bool
}

func (s *slice) next() (*big.Int, bool, error) {
	if s.i >= len(s.terms) {
		return nil, false, nil
	}
	t := s.terms[s.i]
	s.i++
	return t, true, nil
}

func (s *slice) truncated() bool {
	return s.trunc
}

// passThrough produces whatever a Source produces.
type passThrough struct {
	src Source
}

func (p *passThrough) next() (*big.Int, bool, error) {
	if _, ok, err := p.src.Peek(); err != nil || !ok {
		return nil, false, err
	}
	t, err := p.src.Advance()
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

func (p *passThrough) truncated() bool {
	return truncated(p.src)
}

// failed produces nothing but an error.
type failed struct {
	err error
}

func (f failed) next() (*big.Int, bool, error) {
	return nil, false, f.err
}

// expandFloat expands the exact binary value of v with Euclid's algorithm. It
// stops after maxTerms coefficients or once the latest convergent rounds back
// to v, whichever comes first; in either case the result is reported as
// truncated unless the expansion happened to end there exactly. A trailing
// coefficient of 1 is merged into its predecessor.
func expandFloat(v float64, maxTerms int) ([]*big.Int, bool, error) {
	if maxTerms < 1 {
		maxTerms = DefaultMaxTerms
	}
	r, err := rational.FromFloat64(v)
	if err != nil {
		return nil, false, fmt.Errorf("expanding %g: %w", v, err)
	}
	e := newEuclid(r)
	var terms []*big.Int
	var cv convergents
	for {
		t, ok, _ := e.next()
		if !ok {
			return terms, false, nil
		}
		terms = append(terms, t)
		f, _ := cv.push(t).Float64()
		if len(terms) < maxTerms && f != v {
			continue
		}
		if _, more, _ := e.next(); !more {
			return terms, false, nil
		}
		return canonical(terms), true, nil
	}
}

// canonical merges a trailing coefficient of 1 into the one before it. It
// modifies terms in place.
func canonical(terms []*big.Int) []*big.Int {
	n := len(terms)
	if n < 2 || terms[n-1].Cmp(bigOne) != 0 {
		return terms
	}
	terms[n-2] = new(big.Int).Add(terms[n-2], bigOne)
	return terms[:n-1]
}

// convergents computes successive convergents with the recurrence
// h[i] = t[i]*h[i-1] + h[i-2] and likewise for k.
type convergents struct {
	h1, h2, k1, k2 *big.Int
}

// push folds in the next coefficient and returns the new convergent.
func (c *convergents) push(t *big.Int) rational.N {
	if c.h1 == nil {
		c.h1, c.h2 = big.NewInt(1), big.NewInt(0)
		c.k1, c.k2 = big.NewInt(0), big.NewInt(1)
	}
	h := new(big.Int).Mul(t, c.h1)
	h.Add(h, c.h2)
	k := new(big.Int).Mul(t, c.k1)
	k.Add(k, c.k2)
	c.h1, c.h2 = h, c.h1
	c.k1, c.k2 = k, c.k1
	// k > 0 for every valid sequence, and gcd(h, k) == 1
	r, _ := rational.TryBig(h, k)
	return r
}
