package contfrac_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbolino/contfrac"
	"github.com/kbolino/contfrac/rational"
)

type binaryOp struct {
	Name string
	CF   func(x, y *contfrac.ContFrac) *contfrac.ContFrac
	Rat  func(x, y rational.N) (rational.N, error)
}

var binaryOps = []binaryOp{
	{"+", (*contfrac.ContFrac).Add, func(x, y rational.N) (rational.N, error) { return x.Add(y), nil }},
	{"-", (*contfrac.ContFrac).Sub, func(x, y rational.N) (rational.N, error) { return x.Sub(y), nil }},
	{"*", (*contfrac.ContFrac).Mul, func(x, y rational.N) (rational.N, error) { return x.Mul(y), nil }},
	{"/", (*contfrac.ContFrac).Div, rational.N.TryDiv},
}

func TestContFrac_Bihomographic(t *testing.T) {
	cases := []struct {
		X, Y  string
		Op    int
		Terms []int64
	}{
		{"3", "-3", 0, []int64{0}},
		{"254/100", "-7/3", 0, []int64{0, 4, 1, 5, 5}},
		{"22/7", "22/7", 3, []int64{1}},
		{"254/100", "254/100", 1, []int64{0}},
		{"1/2", "1/3", 2, []int64{0, 6}},
	}
	for _, c := range cases {
		op := binaryOps[c.Op]
		t.Run(fmt.Sprintf("%s%s%s", c.X, op.Name, c.Y), func(t *testing.T) {
			z := op.CF(mustParse(t, c.X), mustParse(t, c.Y))
			assert.Equal(t, c.Terms, coeffs(t, z, 100))
		})
	}
}

func TestContFrac_Bihomographic_General(t *testing.T) {
	// (x*y + 2x + 3y + 4) / (x*y + 1) at x = 1/2, y = 2
	x, y := mustParse(t, "1/2"), mustParse(t, "2")
	z := x.Bihomographic(y, 1, 2, 3, 4, 1, 0, 0, 1)
	got, err := z.Rat()
	require.NoError(t, err)
	assert.Equal(t, "6/1", got.String())
}

func TestContFrac_Bihomographic_Identities(t *testing.T) {
	s2 := []int64{1, 2, 2, 2, 2, 2}
	cases := []struct {
		Name  string
		F     func(x *contfrac.ContFrac) *contfrac.ContFrac
		Terms []int64
	}{
		{"x+0", func(x *contfrac.ContFrac) *contfrac.ContFrac { return x.Add(contfrac.FromInt(0)) }, s2},
		{"x*1", func(x *contfrac.ContFrac) *contfrac.ContFrac { return x.Mul(contfrac.FromInt(1)) }, s2},
		{"x+3", func(x *contfrac.ContFrac) *contfrac.ContFrac { return x.Add(contfrac.FromInt(3)) }, []int64{4, 2, 2, 2, 2, 2}},
		{"x*2.54", func(x *contfrac.ContFrac) *contfrac.ContFrac {
			return x.Mul(mustParse(t, "2.54"))
		}, []int64{3, 1, 1, 2, 4, 1, 1, 1, 60, 1, 6, 2}},
		{"2.54*x", func(x *contfrac.ContFrac) *contfrac.ContFrac {
			return mustParse(t, "2.54").Mul(x)
		}, []int64{3, 1, 1, 2, 4, 1, 1, 1, 60, 1, 6, 2}},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			x := c.F(contfrac.FromSource(sqrt2()))
			assert.Equal(t, c.Terms, coeffs(t, x, len(c.Terms)))
		})
	}
}

func TestContFrac_Bihomographic_SameOperand(t *testing.T) {
	x := floatSqrt2(t)
	assert.Equal(t, []int64{2, 255821727047184}, coeffs(t, x.Mul(x), 100))

	y := mustParse(t, "22/7")
	assert.Equal(t, []int64{1}, coeffs(t, y.Div(y), 100))
}

func TestContFrac_Bihomographic_Stall(t *testing.T) {
	// √2·√2 is exactly 2, which no finite prefix of √2 can confirm
	x := contfrac.FromSource(sqrt2(), contfrac.WithLimit(64))
	_, _, err := x.Mul(x).Coefficients(1)
	assert.ErrorIs(t, err, contfrac.ErrPrecisionExceeded)
}

func TestContFrac_Bihomographic_Errors(t *testing.T) {
	zero := mustParse(t, "7/3").Sub(mustParse(t, "7/3"))
	cases := []struct {
		Name string
		X    *contfrac.ContFrac
		Err  error
	}{
		{"5/0", contfrac.FromInt(5).Div(contfrac.FromInt(0)), contfrac.ErrDivByZero},
		{"(1/2)/0", mustParse(t, "1/2").Div(mustParse(t, "0")), contfrac.ErrDivByZero},
		{"0/0", contfrac.FromInt(0).Div(contfrac.FromInt(0)), contfrac.ErrDivByZero},
		{"(x-x)/(x-x)", zero.Div(zero), contfrac.ErrDivByZero},
		{"√2/0", contfrac.FromSource(sqrt2()).Div(contfrac.FromInt(0)), contfrac.ErrDivByZero},
		{"zero denominator", contfrac.FromInt(1).Bihomographic(contfrac.FromInt(2), 1, 1, 1, 1, 0, 0, 0, 0), contfrac.ErrDegenerateTransform},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			_, _, err := c.X.Coefficients(10)
			assert.ErrorIs(t, err, c.Err)
		})
	}
}

func TestContFrac_Bihomographic_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 2000; i++ {
		x, y := randRational(rng), randRational(rng)
		op := binaryOps[rng.Intn(len(binaryOps))]
		msg := fmt.Sprintf("%s %s %s", x, op.Name, y)
		z := op.CF(contfrac.FromRational(x), contfrac.FromRational(y))
		want, err := op.Rat(x, y)
		if err != nil {
			_, _, err := z.Coefficients(contfrac.DefaultLimit)
			assert.ErrorIs(t, err, contfrac.ErrDivByZero, msg)
			continue
		}
		assertExact(t, z, want, msg)
	}
}
