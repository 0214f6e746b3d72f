package contfrac

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/kbolino/contfrac/rational"
)

// MaxSternBrocotPath is the longest path EncodeSternBrocot will produce.
const MaxSternBrocotPath = 1 << 20

// EncodeSternBrocot returns the path from 1/1 to r in the Stern-Brocot tree,
// as a string of 'L' (left) and 'R' (right) moves. The empty string stands
// for 1/1. EncodeSternBrocot returns ErrNotPositive if r <= 0, and
// ErrPrecisionExceeded if the path is longer than MaxSternBrocotPath.
//
// The path is read off the coefficients of r: [a0; a1, ..., an] is
// R^a0 L^a1 R^a2 ... with the last run shortened by one.
func EncodeSternBrocot(r rational.N) (string, error) {
	if r.Sign() <= 0 {
		return "", fmt.Errorf("encoding %s: %w", r, ErrNotPositive)
	}
	var terms []*big.Int
	e := newEuclid(r)
	for {
		t, ok, _ := e.next()
		if !ok {
			break
		}
		terms = append(terms, t)
	}
	last := len(terms) - 1
	terms[last] = new(big.Int).Sub(terms[last], bigOne)
	total := new(big.Int)
	for _, t := range terms {
		total.Add(total, t)
	}
	if !total.IsInt64() || total.Int64() > MaxSternBrocotPath {
		return "", fmt.Errorf("encoding %s: path of %s moves: %w", r, total, ErrPrecisionExceeded)
	}
	var buf strings.Builder
	buf.Grow(int(total.Int64()))
	for i, t := range terms {
		move := "R"
		if i%2 == 1 {
			move = "L"
		}
		buf.WriteString(strings.Repeat(move, int(t.Int64())))
	}
	return buf.String(), nil
}

// DecodeSternBrocot returns the rational number at the end of a Stern-Brocot
// path of 'L' and 'R' moves starting from 1/1.
func DecodeSternBrocot(s string) (rational.N, error) {
	// the current node is the mediant of the bounds lm/ln and rm/rn
	lm, ln := big.NewInt(0), big.NewInt(1)
	rm, rn := big.NewInt(1), big.NewInt(0)
	for i, c := range s {
		m := new(big.Int).Add(lm, rm)
		n := new(big.Int).Add(ln, rn)
		switch c {
		case 'L':
			rm, rn = m, n
		case 'R':
			lm, ln = m, n
		default:
			return rational.N{}, fmt.Errorf("move %d is %q: %w", i, c, rational.ErrFmtInvalid)
		}
	}
	return rational.TryBig(new(big.Int).Add(lm, rm), new(big.Int).Add(ln, rn))
}

// SternBrocotHomographic applies (a*x+b)/(c*x+d) to the number at path s and
// returns the path of the result, which must be positive.
func SternBrocotHomographic(s string, a, b, c, d int64) (string, error) {
	x, err := DecodeSternBrocot(s)
	if err != nil {
		return "", err
	}
	num := rational.Int(a).Mul(x).Add(rational.Int(b))
	den := rational.Int(c).Mul(x).Add(rational.Int(d))
	y, err := num.TryDiv(den)
	if err != nil {
		return "", fmt.Errorf("transforming %s: %w", x, err)
	}
	return EncodeSternBrocot(y)
}
