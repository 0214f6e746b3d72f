// Package contfrac provides exact arithmetic on real numbers represented as
// continued fractions.
//
// A continued fraction [a0; a1, a2, ...] stands for a0 + 1/(a1 + 1/(a2 + ...)),
// where every coefficient after the first is positive. A ContFrac is a lazy,
// possibly infinite stream of such coefficients. Arithmetic between ContFrac
// values uses Gosper's algorithm: the result is itself a stream that reads
// just enough coefficients of its operands to decide each of its own, and no
// intermediate value is ever rounded to floating point.
//
// Nothing is computed when a ContFrac is constructed. Work happens when
// coefficients are requested, and errors such as division by zero surface at
// that point. Coefficients are memoized per ContFrac, so a value can be read
// repeatedly, and used as both operands of an operation, without recomputing
// them.
//
// ContFrac values are not safe for concurrent use.
package contfrac

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"

	"github.com/kbolino/contfrac/internal/logging"
	"github.com/kbolino/contfrac/rational"
)

// Common errors returned by functions in this package.
var (
	// ErrDivByZero is returned when a value would be infinite, such as when
	// dividing by zero.
	ErrDivByZero = rational.ErrDivByZero
	// ErrDegenerateTransform is returned when a transformation is undefined,
	// such as one whose denominator is identically zero.
	ErrDegenerateTransform = errors.New("degenerate transformation")
	// ErrStreamExhausted is returned when advancing a Source past its end.
	ErrStreamExhausted = errors.New("coefficient stream exhausted")
	// ErrPrecisionExceeded is returned when a question cannot be decided
	// within the configured number of coefficients.
	ErrPrecisionExceeded = errors.New("precision exceeded")
	// ErrInvalidTerm is returned for a coefficient after the first that is not
	// positive.
	ErrInvalidTerm = errors.New("invalid coefficient")
	// ErrNotPositive is returned by Stern-Brocot functions for values that are
	// not positive.
	ErrNotPositive = errors.New("value is not positive")
)

// Defaults for the options of a ContFrac.
const (
	DefaultMaxTerms    = 20
	DefaultLimit       = 1024
	DefaultRenderTerms = 20
)

var bigOne = big.NewInt(1)

type options struct {
	maxTerms    int
	limit       int
	renderTerms int
	logger      *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTerms:    DefaultMaxTerms,
		limit:       DefaultLimit,
		renderTerms: DefaultRenderTerms,
		logger:      logging.NewNop(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a ContFrac. The result of an operation inherits the
// options of its receiver.
type Option func(*options)

// WithMaxTerms sets the number of coefficients kept by FromFloat64 before a
// value is treated as irrational.
func WithMaxTerms(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxTerms = n
		}
	}
}

// WithLimit bounds how many coefficients are read by queries that may not
// terminate on an infinite value, such as IsFinite, Rat, Float64 and Cmp.
// It also bounds how many input terms an operation may read without
// producing a coefficient.
func WithLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithRenderTerms sets how many coefficients String shows.
func WithRenderTerms(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.renderTerms = n
		}
	}
}

// WithLogger sets the logger that receives the engine's Debug events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ContFrac is a real number represented by a lazily computed continued
// fraction.
type ContFrac struct {
	seq  *sequence
	opts options
}

func newContFrac(p producer, o options) *ContFrac {
	return &ContFrac{seq: newSequence(p), opts: o}
}

// FromRational returns the finite continued fraction of r.
func FromRational(r rational.N, opts ...Option) *ContFrac {
	return newContFrac(newEuclid(r), buildOptions(opts))
}

// FromInt returns the continued fraction [v].
func FromInt(v int64, opts ...Option) *ContFrac {
	return FromRational(rational.Int(v), opts...)
}

// Parse returns the continued fraction of a rational number written as "p/q",
// as an integer, or as a decimal such as "2.54".
func Parse(s string, opts ...Option) (*ContFrac, error) {
	r, err := rational.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", s, err)
	}
	return FromRational(r, opts...), nil
}

// FromFloat64 returns a bounded expansion of v.
//
// The expansion is that of the exact binary value of v. It stops after the
// number of coefficients set by WithMaxTerms, or earlier once the latest
// convergent converts back to v exactly. A value that stops this way is an
// approximation of some real number rather than an exact rational, so
// IsFinite reports false for it even though only finitely many coefficients
// are ever produced. Values whose expansion ends sooner are exact.
//
// FromFloat64 returns rational.ErrNotFinite if v is NaN or infinite.
func FromFloat64(v float64, opts ...Option) (*ContFrac, error) {
	o := buildOptions(opts)
	terms, trunc, err := expandFloat(v, o.maxTerms)
	if err != nil {
		return nil, err
	}
	return newContFrac(&slice{terms: terms, trunc: trunc}, o), nil
}

// FromCoefficients returns the continued fraction with the given
// coefficients. Every coefficient after the first must be positive. A trailing
// coefficient of 1 is merged into the one before it.
func FromCoefficients(terms []int64, opts ...Option) (*ContFrac, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("no coefficients: %w", ErrInvalidTerm)
	}
	ts := make([]*big.Int, len(terms))
	for i, t := range terms {
		if i > 0 && t <= 0 {
			return nil, fmt.Errorf("coefficient %d is %d: %w", i, t, ErrInvalidTerm)
		}
		ts[i] = big.NewInt(t)
	}
	return newContFrac(&slice{terms: canonical(ts)}, buildOptions(opts)), nil
}

// FromSource returns a continued fraction reading its coefficients from src,
// which may be infinite. The ContFrac takes ownership of src; it must not be
// read by anything else afterwards.
func FromSource(src Source, opts ...Option) *ContFrac {
	return newContFrac(&passThrough{src: src}, buildOptions(opts))
}

// FromContFrac returns a continued fraction with the same coefficients as x,
// read through its own cursor.
func FromContFrac(x *ContFrac) *ContFrac {
	return newContFrac(&passThrough{src: x.Cursor()}, x.opts)
}

// Cursor returns a new Source over the coefficients of x, starting at the
// first one.
func (x *ContFrac) Cursor() *Cursor {
	return &Cursor{seq: x.seq}
}

// Homographic returns (a*x+b)/(c*x+d).
func (x *ContFrac) Homographic(a, b, c, d int64) *ContFrac {
	return x.homographic(big.NewInt(a), big.NewInt(b), big.NewInt(c), big.NewInt(d))
}

func (x *ContFrac) homographic(a, b, c, d *big.Int) *ContFrac {
	h := newHomographic(x.Cursor(), a, b, c, d, x.opts.limit, x.opts.logger)
	return newContFrac(h, x.opts)
}

// Bihomographic returns (a*x*y+b*x+c*y+d)/(e*x*y+f*x+g*y+h).
func (x *ContFrac) Bihomographic(y *ContFrac, a, b, c, d, e, f, g, h int64) *ContFrac {
	return x.bihomographic(y, [8]int64{a, b, c, d, e, f, g, h})
}

func (x *ContFrac) bihomographic(y *ContFrac, m [8]int64) *ContFrac {
	b := newBihomographic(x.Cursor(), y.Cursor(), bigTuple(m), x.opts.limit, x.opts.logger)
	return newContFrac(b, x.opts)
}

// Add returns x+y.
func (x *ContFrac) Add(y *ContFrac) *ContFrac {
	return x.bihomographic(y, opAdd)
}

// Sub returns x-y.
func (x *ContFrac) Sub(y *ContFrac) *ContFrac {
	return x.bihomographic(y, opSub)
}

// Mul returns x*y.
func (x *ContFrac) Mul(y *ContFrac) *ContFrac {
	return x.bihomographic(y, opMul)
}

// Div returns x/y. Division by zero is reported when coefficients of the
// result are requested.
func (x *ContFrac) Div(y *ContFrac) *ContFrac {
	return x.bihomographic(y, opDiv)
}

// AddRat returns x+r.
func (x *ContFrac) AddRat(r rational.N) *ContFrac {
	n, d := r.Num(), r.Den()
	return x.homographic(d, n, new(big.Int), d)
}

// SubRat returns x-r.
func (x *ContFrac) SubRat(r rational.N) *ContFrac {
	return x.AddRat(r.Neg())
}

// RatSub returns r-x.
func (x *ContFrac) RatSub(r rational.N) *ContFrac {
	n, d := r.Num(), r.Den()
	return x.homographic(new(big.Int).Neg(d), n, new(big.Int), d)
}

// MulRat returns x*r.
func (x *ContFrac) MulRat(r rational.N) *ContFrac {
	n, d := r.Num(), r.Den()
	return x.homographic(n, new(big.Int), new(big.Int), d)
}

// DivRat returns x/r. Division by zero is reported when coefficients of the
// result are requested.
func (x *ContFrac) DivRat(r rational.N) *ContFrac {
	if r.IsZero() {
		return newContFrac(failed{ErrDivByZero}, x.opts)
	}
	n, d := r.Num(), r.Den()
	return x.homographic(d, new(big.Int), new(big.Int), n)
}

// RatDiv returns r/x.
func (x *ContFrac) RatDiv(r rational.N) *ContFrac {
	n, d := r.Num(), r.Den()
	return x.homographic(new(big.Int), n, d, new(big.Int))
}

// Neg returns -x.
func (x *ContFrac) Neg() *ContFrac {
	return x.Homographic(-1, 0, 0, 1)
}

// Inv returns 1/x.
func (x *ContFrac) Inv() *ContFrac {
	return x.Homographic(0, 1, 1, 0)
}

// Coefficients returns up to limit coefficients of x. more reports whether x
// has further coefficients. The returned integers are copies.
func (x *ContFrac) Coefficients(limit int) (terms []*big.Int, more bool, err error) {
	c := x.Cursor()
	for len(terms) < limit {
		t, ok, err := c.Peek()
		if err != nil {
			return terms, false, err
		}
		if !ok {
			return terms, false, nil
		}
		terms = append(terms, new(big.Int).Set(t))
		c.pos++
	}
	_, more, err = c.Peek()
	return terms, more, err
}

// IsFinite reports whether x is an exact rational number. It reads up to the
// configured limit of coefficients; a value that is still going at that point
// is reported as not finite.
func (x *ContFrac) IsFinite() (bool, error) {
	_, more, err := x.Coefficients(x.opts.limit)
	if err != nil {
		return false, err
	}
	return !more && !x.seq.truncated(), nil
}

// Truncated reports whether x, or an operand it was computed from, is a
// bounded approximation that stopped short of the value it stands for. It is
// only meaningful once the coefficients of x have been read to the end.
func (x *ContFrac) Truncated() bool {
	return x.seq.truncated()
}

// Floor returns the greatest integer not greater than x, which is its first
// coefficient.
func (x *ContFrac) Floor() (*big.Int, error) {
	t, ok, err := x.seq.at(0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDivByZero
	}
	return new(big.Int).Set(t), nil
}

// Ceil returns the least integer not less than x. x is an integer exactly
// when it has a single coefficient.
func (x *ContFrac) Ceil() (*big.Int, error) {
	v, err := x.Floor()
	if err != nil {
		return nil, err
	}
	_, more, err := x.seq.at(1)
	if err != nil {
		return nil, err
	}
	if more {
		v.Add(v, bigOne)
	}
	return v, nil
}

// Trunc returns the integer part of x, rounding toward zero.
func (x *ContFrac) Trunc() (*big.Int, error) {
	v, err := x.Floor()
	if err != nil || v.Sign() >= 0 {
		return v, err
	}
	return x.Ceil()
}

// Round returns the integer nearest to x, rounding half away from zero.
//
// With x = [a0; a1, ...], the fractional part is 1/[a1; a2, ...], which is
// below one half when that tail exceeds 2 and above it when the tail is less.
func (x *ContFrac) Round() (*big.Int, error) {
	v, err := x.Floor()
	if err != nil {
		return nil, err
	}
	tail, err := x.tailPrefix(3)
	if err != nil {
		return nil, err
	}
	two := big.NewInt(2)
	var up bool
	switch {
	case len(tail) == 0:
	case len(tail) == 1 && tail[0].Cmp(two) == 0,
		len(tail) == 2 && tail[0].Cmp(bigOne) == 0 && tail[1].Cmp(bigOne) == 0:
		// exactly one half
		up = v.Sign() >= 0
	default:
		up = tail[0].Cmp(bigOne) == 0
	}
	if up {
		v.Add(v, bigOne)
	}
	return v, nil
}

// tailPrefix returns up to n coefficients of x after the first.
func (x *ContFrac) tailPrefix(n int) ([]*big.Int, error) {
	var ts []*big.Int
	for i := 1; i <= n; i++ {
		t, ok, err := x.seq.at(i)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// Convergents returns the convergents of x obtained from its first one, two,
// and so on up to n coefficients. Fewer are returned if x has fewer
// coefficients.
func (x *ContFrac) Convergents(n int) ([]rational.N, error) {
	var cv convergents
	var rs []rational.N
	for i := 0; i < n; i++ {
		t, ok, err := x.seq.at(i)
		if err != nil {
			return rs, err
		}
		if !ok {
			break
		}
		rs = append(rs, cv.push(t))
	}
	return rs, nil
}

// Convergent returns the best rational approximation of x given by its first
// n coefficients, or the exact value of x if it has fewer.
func (x *ContFrac) Convergent(n int) (rational.N, error) {
	if n < 1 {
		return rational.N{}, fmt.Errorf("convergent %d: %w", n, ErrInvalidTerm)
	}
	rs, err := x.Convergents(n)
	if err != nil {
		return rational.N{}, err
	}
	if len(rs) == 0 {
		return rational.N{}, ErrDivByZero
	}
	return rs[len(rs)-1], nil
}

// Rat returns the convergent of x at the configured limit, which is x itself
// when x is an exact rational within that limit.
func (x *ContFrac) Rat() (rational.N, error) {
	return x.Convergent(x.opts.limit)
}

// Float64 returns an approximation of x. Convergents are read until two
// consecutive ones convert to the same float64, or the configured limit is
// reached.
func (x *ContFrac) Float64() (float64, error) {
	var cv convergents
	var prev float64
	for i := 0; i < x.opts.limit; i++ {
		t, ok, err := x.seq.at(i)
		if err != nil {
			return 0, err
		}
		if !ok {
			if i == 0 {
				return 0, ErrDivByZero
			}
			break
		}
		f, _ := cv.push(t).Float64()
		if i > 0 && f == prev {
			break
		}
		prev = f
	}
	return prev, nil
}

// Cmp compares x and y coefficient by coefficient. It returns -1 if x < y,
// 0 if x == y, and 1 if x > y. If neither differs from the other within the
// configured limit of x, Cmp returns ErrPrecisionExceeded.
func (x *ContFrac) Cmp(y *ContFrac) (int, error) {
	cx, cy := x.Cursor(), y.Cursor()
	sign := 1
	for i := 0; i < x.opts.limit; i++ {
		tx, okx, err := cx.Peek()
		if err != nil {
			return 0, err
		}
		ty, oky, err := cy.Peek()
		if err != nil {
			return 0, err
		}
		// a missing coefficient stands for +∞; at odd positions a larger
		// coefficient means a smaller value
		switch {
		case !okx && !oky:
			return 0, nil
		case !okx:
			return sign, nil
		case !oky:
			return -sign, nil
		}
		if c := tx.Cmp(ty); c != 0 {
			return c * sign, nil
		}
		cx.pos++
		cy.pos++
		sign = -sign
	}
	return 0, ErrPrecisionExceeded
}

// CmpRat compares x and r like Cmp.
func (x *ContFrac) CmpRat(r rational.N) (int, error) {
	return x.Cmp(FromRational(r, WithLimit(x.opts.limit)))
}

// Equal reports whether x and y have the same coefficients.
func (x *ContFrac) Equal(y *ContFrac) (bool, error) {
	c, err := x.Cmp(y)
	return c == 0 && err == nil, err
}

// Render returns x as its first n coefficients followed by the convergent
// they give, e.g. "[2; 1, 1, 5, 1, 3] 127/50 = 2.54". The list ends in "..."
// when x has further coefficients or is a truncated approximation.
func (x *ContFrac) Render(n int) (string, error) {
	terms, more, err := x.Coefficients(n)
	if err != nil {
		return "", err
	}
	if len(terms) == 0 {
		return "", ErrDivByZero
	}
	if !more && x.seq.truncated() {
		more = true
	}
	var buf strings.Builder
	var cv convergents
	var r rational.N
	buf.WriteByte('[')
	for i, t := range terms {
		switch i {
		case 0:
		case 1:
			buf.WriteString("; ")
		default:
			buf.WriteString(", ")
		}
		buf.WriteString(t.String())
		r = cv.push(t)
	}
	if more {
		if len(terms) == 1 {
			buf.WriteString("; ...")
		} else {
			buf.WriteString(", ...")
		}
	}
	buf.WriteString("] ")
	f, _ := r.Float64()
	fmt.Fprintf(&buf, "%s = %s", r, strconv.FormatFloat(f, 'g', -1, 64))
	return buf.String(), nil
}

// String renders x with the configured number of coefficients. Errors are
// rendered in place of the value.
func (x *ContFrac) String() string {
	s, err := x.Render(x.opts.renderTerms)
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}
	return s
}
