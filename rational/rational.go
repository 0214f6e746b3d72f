// Package rational provides exact arbitrary-precision rational numbers.
// See the N type and New function for details.
package rational

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Common errors returned by functions in this package.
var (
	ErrDivByZero  = errors.New("division by zero")
	ErrFmtInvalid = errors.New("invalid number format")
	ErrNotFinite  = errors.New("value is not finite")
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTen  = big.NewInt(10)
)

// N is an exact rational number with arbitrary-precision numerator and
// denominator.
//
// The denominator is always positive and the fraction is always in lowest
// terms. The zero value is equivalent to 0/1 and thus valid and equal to 0.
//
// Valid values are obtained in the following ways:
//   - the zero value of the type N
//   - returned by the New, Try, or TryBig functions
//   - returned by arithmetic on any valid values
//   - copied from a valid value
//
// N never mutates the integers it holds, so its values can be freely copied
// and shared. Because the fields are pointers, compare values with Equal or
// Cmp rather than the == operator.
type N struct {
	m *big.Int // nil means 0
	n *big.Int // nil means 1
}

// Try creates a new rational number with the given numerator and denominator.
// Try returns ErrDivByZero if the denominator is zero. A negative denominator
// is allowed; its sign is moved to the numerator.
func Try(num, den int64) (N, error) {
	return TryBig(big.NewInt(num), big.NewInt(den))
}

// New is like Try but panics if the denominator is zero.
func New(num, den int64) N {
	n, err := Try(num, den)
	if err != nil {
		panic(err)
	}
	return n
}

// Int returns the integer v as a rational number.
func Int(v int64) N {
	if v == 0 {
		return N{}
	}
	return N{m: big.NewInt(v)}
}

// TryBig is like Try for arbitrary-precision integers. The arguments are not
// retained or modified.
func TryBig(num, den *big.Int) (N, error) {
	if den.Sign() == 0 {
		return N{}, ErrDivByZero
	}
	m := new(big.Int).Set(num)
	n := new(big.Int).Set(den)
	if n.Sign() < 0 {
		m.Neg(m)
		n.Neg(n)
	}
	return N{m, n}.reduce(), nil
}

// FromBigRat converts a big.Rat to N. The argument is not retained.
func FromBigRat(r *big.Rat) N {
	x, _ := TryBig(r.Num(), r.Denom())
	return x
}

// FromFloat64 extracts a rational number from a float64. The result is exactly
// equal to v. FromFloat64 returns ErrNotFinite if v is NaN or infinite.
func FromFloat64(v float64) (N, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return N{}, ErrNotFinite
	}
	return FromBigRat(new(big.Rat).SetFloat64(v)), nil
}

// Parse parses a rational number written as "m/n", as a bare integer "m", or
// as a decimal accepted by ParseDecimalString.
func Parse(s string) (N, error) {
	switch {
	case strings.Contains(s, "/"):
		return ParseRationalString(s)
	case strings.Contains(s, "."):
		return ParseDecimalString(s)
	}
	m, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return N{}, ErrFmtInvalid
	}
	return TryBig(m, bigOne)
}

// ParseRationalString parses a string representation of a rational number.
// The string must be in the form "m/n", where m and n are integers in base 10,
// n is not zero, and m or n may be negative (indicated with leading hyphen).
// It is not necessary for m/n to be in lowest terms, but the result will be.
func ParseRationalString(s string) (N, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 2 {
		return N{}, ErrFmtInvalid
	}
	num, ok := new(big.Int).SetString(parts[0], 10)
	if !ok {
		return N{}, fmt.Errorf("parsing numerator: %w", ErrFmtInvalid)
	}
	den, ok := new(big.Int).SetString(parts[1], 10)
	if !ok {
		return N{}, fmt.Errorf("parsing denominator: %w", ErrFmtInvalid)
	}
	return TryBig(num, den)
}

// ParseDecimalString parses a string representation of a decimal number as a
// rational number. The string must be in the form "A", "A.", "A.B", or ".B"
// where A is an integer that may have leading zeroes and may be negative
// (indicated with leading hyphen) and B is an integer that may have trailing
// zeroes.
func ParseDecimalString(s string) (N, error) {
	neg := false
	dotIndex := -1
	digits := make([]byte, 0, len(s))
	for i, r := range s {
		switch r {
		case '-':
			if i != 0 {
				return N{}, ErrFmtInvalid
			}
			neg = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			digits = append(digits, byte(r))
		case '.':
			if dotIndex >= 0 {
				return N{}, ErrFmtInvalid
			}
			dotIndex = len(digits)
		default:
			return N{}, ErrFmtInvalid
		}
	}
	if len(digits) == 0 {
		return N{}, ErrFmtInvalid
	}
	m, ok := new(big.Int).SetString(string(digits), 10)
	if !ok {
		return N{}, ErrFmtInvalid
	}
	n := big.NewInt(1)
	if dotIndex >= 0 {
		n.Exp(bigTen, big.NewInt(int64(len(digits)-dotIndex)), nil)
	}
	if neg {
		m.Neg(m)
	}
	return TryBig(m, n)
}

// Num returns a copy of the numerator of x.
func (x N) Num() *big.Int {
	return new(big.Int).Set(x.num())
}

// Den returns a copy of the denominator of x, which is always positive.
func (x N) Den() *big.Int {
	return new(big.Int).Set(x.den())
}

func (x N) num() *big.Int {
	if x.m == nil {
		return bigZero
	}
	return x.m
}

func (x N) den() *big.Int {
	if x.n == nil {
		return bigOne
	}
	return x.n
}

// IsZero returns true if x is equal to 0.
func (x N) IsZero() bool {
	return x.num().Sign() == 0
}

// IsInt returns true if x is an integer.
func (x N) IsInt() bool {
	return x.den().Cmp(bigOne) == 0
}

// Sign returns the sign of x: -1 if x < 0, 0 if x == 0, and 1 if x > 0.
func (x N) Sign() int {
	return x.num().Sign()
}

// Neg returns the negation of x, -x.
func (x N) Neg() N {
	if x.IsZero() {
		return N{}
	}
	return N{new(big.Int).Neg(x.num()), x.n}
}

// TryInv returns the inverse of x, 1/x.
// TryInv returns ErrDivByZero if x is zero.
func (x N) TryInv() (N, error) {
	return TryBig(x.den(), x.num())
}

// Inv is like TryInv but panics if x is zero.
func (x N) Inv() N {
	z, err := x.TryInv()
	if err != nil {
		panic(err)
	}
	return z
}

// Abs returns the absolute value of x, |x|.
func (x N) Abs() N {
	if x.Sign() >= 0 {
		return x
	}
	return x.Neg()
}

// Floor returns the greatest integer not greater than x.
func (x N) Floor() *big.Int {
	return FloorDiv(x.num(), x.den())
}

// Cmp returns -1 if x < y, 0 if x == y, and 1 if x > y.
func (x N) Cmp(y N) int {
	l := new(big.Int).Mul(x.num(), y.den())
	r := new(big.Int).Mul(y.num(), x.den())
	return l.Cmp(r)
}

// Equal returns true if x and y represent the same number.
func (x N) Equal(y N) bool {
	return x.num().Cmp(y.num()) == 0 && x.den().Cmp(y.den()) == 0
}

// Add adds x and y and returns the result.
func (x N) Add(y N) N {
	mx, nx := x.num(), x.den()
	my, ny := y.num(), y.den()
	m := new(big.Int).Mul(mx, ny)
	m.Add(m, new(big.Int).Mul(my, nx))
	n := new(big.Int).Mul(nx, ny)
	return N{m, n}.reduce()
}

// Sub subtracts y from x and returns the result.
// The following are equivalent in outcome and behavior:
//
//	x.Sub(y) == x.Add(y.Neg())
func (x N) Sub(y N) N {
	return x.Add(y.Neg())
}

// Mul multiplies x and y and returns the result.
func (x N) Mul(y N) N {
	m := new(big.Int).Mul(x.num(), y.num())
	n := new(big.Int).Mul(x.den(), y.den())
	return N{m, n}.reduce()
}

// TryDiv divides x by y and returns the result.
// TryDiv returns 0 and ErrDivByZero if y is zero.
func (x N) TryDiv(y N) (N, error) {
	if y.IsZero() {
		return N{}, ErrDivByZero
	}
	return x.Mul(y.Inv()), nil
}

// Div divides x by y and returns the result.
// The following are equivalent in outcome and behavior:
//
//	x.Div(y) == x.Mul(y.Inv())
func (x N) Div(y N) N {
	return x.Mul(y.Inv())
}

// String returns a string representation of x, as m/n.
func (x N) String() string {
	return fmt.Sprintf("%s/%s", x.num(), x.den())
}

// DecimalString returns a string representation of x, as a decimal number
// to the given number of digits after the decimal point.
// The last digit is rounded to nearest, with ties rounded away from zero.
// If prec <= 0, the decimal point is omitted from the string.
// If the result of rounding is zero but x is negative, the string will still
// include a negative sign.
//
// The following relation should hold for all valid values of x:
//
//	x.DecimalString(prec) == x.BigRat().FloatString(prec)
func (x N) DecimalString(prec int) string {
	if prec < 0 {
		prec = 0
	}
	var buf strings.Builder
	m, n := new(big.Int).Set(x.num()), x.den()
	if m.Sign() < 0 {
		buf.WriteByte('-')
		m.Neg(m)
	}
	// start with empty digit to hold carryover from rounding
	digits := []byte{'0'}
	q, r := new(big.Int).QuoRem(m, n, new(big.Int))
	digits = q.Append(digits, 10)
	for i := 0; i <= prec; i++ {
		t := new(big.Int).Mul(r, bigTen)
		q.QuoRem(t, n, r)
		// q < 10 since r < n before the multiplication
		digits = append(digits, byte(q.Int64())+'0')
	}
	// use digit in last position to round
	if k := len(digits) - 1; digits[k] >= '5' {
		digits[k-1]++
		for i := k - 1; i >= 0; i-- {
			if digits[i] <= '9' {
				break
			}
			digits[i] = '0'
			digits[i-1]++
		}
	}
	start := 0
	end := len(digits) - 1
	if digits[0] == '0' {
		start = 1
	}
	if prec > 0 {
		dotIndex := len(digits) - prec - 1
		for i := len(digits) - 1; i > dotIndex; i-- {
			digits[i] = digits[i-1]
		}
		digits[dotIndex] = '.'
		end = len(digits)
	}
	buf.Write(digits[start:end])
	// this may return "-0" etc. which could be filtered out but agrees with
	// the output of big.Rat.FloatString
	return buf.String()
}

// Float64 returns the floating-point equivalent of x. If exact is true, then
// v is exactly equal to x; otherwise, it is the closest approximation. The
// conversion is lossy in general.
func (x N) Float64() (v float64, exact bool) {
	return x.BigRat().Float64()
}

// BigRat converts x to a new big.Rat.
func (x N) BigRat() *big.Rat {
	return new(big.Rat).SetFrac(x.num(), x.den())
}

// FloorDiv returns floor(a/b) as a new integer. It panics if b is zero.
func FloorDiv(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		q.Sub(q, bigOne)
	}
	return q
}

// reduce returns x in lowest terms. It takes ownership of x's integers.
func (x N) reduce() N {
	if x.num().Sign() == 0 {
		return N{}
	}
	if x.n == nil {
		return x
	}
	d := new(big.Int).GCD(nil, nil, new(big.Int).Abs(x.m), x.n)
	if d.Cmp(bigOne) != 0 {
		x.m.Quo(x.m, d)
		x.n.Quo(x.n, d)
	}
	if x.n.Cmp(bigOne) == 0 {
		x.n = nil
	}
	return x
}
