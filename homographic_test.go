package contfrac_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbolino/contfrac"
	"github.com/kbolino/contfrac/internal/logging"
	"github.com/kbolino/contfrac/rational"
)

func TestContFrac_Homographic(t *testing.T) {
	cases := []struct {
		X          string
		A, B, C, D int64
		Terms      []int64
	}{
		{"-7/3", 1, 1, 0, 2, []int64{-1, 3}},
		{"254/100", 3, 1, 2, -5, []int64{107, 1, 3}},
		{"2", 0, 0, 1, 0, []int64{0}},
		{"5", 2, 4, 1, 2, []int64{2}},
		{"254/100", 1, 0, 0, 1, []int64{2, 1, 1, 5, 1, 3}},
	}
	for _, c := range cases {
		name := fmt.Sprintf("(%d*%s+%d)/(%d*%s+%d)", c.A, c.X, c.B, c.C, c.X, c.D)
		t.Run(name, func(t *testing.T) {
			x := mustParse(t, c.X).Homographic(c.A, c.B, c.C, c.D)
			assert.Equal(t, c.Terms, coeffs(t, x, 100))
		})
	}
}

func TestContFrac_Homographic_Infinite(t *testing.T) {
	cases := []struct {
		Name  string
		F     func(*contfrac.ContFrac) *contfrac.ContFrac
		Terms []int64
	}{
		{"Neg", (*contfrac.ContFrac).Neg, []int64{-2, 1, 1, 2, 2, 2, 2, 2}},
		{"Inv", (*contfrac.ContFrac).Inv, []int64{0, 1, 2, 2, 2, 2, 2, 2}},
		{"AddRat", func(x *contfrac.ContFrac) *contfrac.ContFrac {
			return x.AddRat(rational.Int(1))
		}, []int64{2, 2, 2, 2, 2, 2}},
		{"MulRat", func(x *contfrac.ContFrac) *contfrac.ContFrac {
			return x.MulRat(rational.New(254, 100))
		}, []int64{3, 1, 1, 2, 4, 1, 1, 1, 60, 1, 6, 2}},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			x := c.F(contfrac.FromSource(sqrt2()))
			assert.Equal(t, c.Terms, coeffs(t, x, len(c.Terms)))
		})
	}
}

func TestContFrac_Homographic_Errors(t *testing.T) {
	cases := []struct {
		Name string
		X    *contfrac.ContFrac
		Err  error
	}{
		{"Inv(0)", contfrac.FromInt(0).Inv(), contfrac.ErrDivByZero},
		{"pole", contfrac.FromInt(2).Homographic(1, 1, 1, -2), contfrac.ErrDivByZero},
		{"zero denominator", contfrac.FromInt(2).Homographic(1, 0, 0, 0), contfrac.ErrDegenerateTransform},
		{"DivRat(0)", contfrac.FromInt(2).DivRat(rational.Int(0)), contfrac.ErrDivByZero},
		{"RatDiv(0)", contfrac.FromInt(0).RatDiv(rational.Int(5)), contfrac.ErrDivByZero},
		{"0/0 RatDiv", contfrac.FromInt(0).RatDiv(rational.Int(0)), contfrac.ErrDivByZero},
		{"0/0 DivRat", contfrac.FromInt(0).DivRat(rational.Int(0)), contfrac.ErrDivByZero},
		{"0/0 at root", contfrac.FromInt(2).Homographic(-26, 52, -3, 6), contfrac.ErrDivByZero},
		{"0/(0*x)", contfrac.FromInt(0).Homographic(0, 0, 1, 0), contfrac.ErrDivByZero},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			_, _, err := c.X.Coefficients(10)
			assert.ErrorIs(t, err, c.Err)
			_, err = c.X.Floor()
			assert.ErrorIs(t, err, c.Err)
		})
	}
}

func TestContFrac_RatShortcuts(t *testing.T) {
	x := mustParse(t, "254/100")
	r := rational.New(-7, 3)
	cases := []struct {
		Name string
		X    *contfrac.ContFrac
		Want rational.N
	}{
		{"AddRat", x.AddRat(r), rational.New(254, 100).Add(r)},
		{"SubRat", x.SubRat(r), rational.New(254, 100).Sub(r)},
		{"RatSub", x.RatSub(r), r.Sub(rational.New(254, 100))},
		{"MulRat", x.MulRat(r), rational.New(254, 100).Mul(r)},
		{"DivRat", x.DivRat(r), rational.New(254, 100).Div(r)},
		{"RatDiv", x.RatDiv(r), r.Div(rational.New(254, 100))},
		{"Neg", x.Neg(), rational.New(-254, 100)},
		{"Inv", x.Inv(), rational.New(100, 254)},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			got, err := c.X.Rat()
			require.NoError(t, err)
			assert.True(t, got.Equal(c.Want), "got %s, want %s", got, c.Want)
			assert.Equal(t, coeffs(t, contfrac.FromRational(c.Want), 100), coeffs(t, c.X, 100))
		})
	}
}

// randRational returns a small random rational, zero about one time in ten.
func randRational(rng *rand.Rand) rational.N {
	if rng.Intn(10) == 0 {
		return rational.N{}
	}
	return rational.New(rng.Int63n(2001)-1000, rng.Int63n(300)+1)
}

// assertExact checks that x has exactly the canonical coefficients of want,
// and that its final convergent expands back to the same coefficients.
func assertExact(t *testing.T, x *contfrac.ContFrac, want rational.N, msg string) {
	t.Helper()
	terms, more, err := x.Coefficients(contfrac.DefaultLimit)
	require.NoError(t, err, msg)
	require.False(t, more, msg)
	got := ints(terms)
	assert.Equal(t, drain(t, contfrac.NewRationalSource(want)), got, msg)
	if n := len(got); n > 1 {
		assert.NotEqual(t, int64(1), got[n-1], "%s: trailing 1 in %v", msg, got)
	}
	r, err := x.Rat()
	require.NoError(t, err, msg)
	assert.True(t, r.Equal(want), "%s: got %s, want %s", msg, r, want)
	assert.Equal(t, got, coeffs(t, contfrac.FromRational(r), contfrac.DefaultLimit), msg)
}

func TestContFrac_Homographic_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		x := randRational(rng)
		a, b, c, d := rng.Int63n(41)-20, rng.Int63n(41)-20, rng.Int63n(41)-20, rng.Int63n(41)-20
		msg := fmt.Sprintf("(%d*x+%d)/(%d*x+%d) at x=%s", a, b, c, d, x)
		z := contfrac.FromRational(x).Homographic(a, b, c, d)
		num := rational.Int(a).Mul(x).Add(rational.Int(b))
		den := rational.Int(c).Mul(x).Add(rational.Int(d))
		want, err := num.TryDiv(den)
		if err != nil {
			_, _, err := z.Coefficients(contfrac.DefaultLimit)
			if c == 0 && d == 0 {
				assert.ErrorIs(t, err, contfrac.ErrDegenerateTransform, msg)
			} else {
				assert.ErrorIs(t, err, contfrac.ErrDivByZero, msg)
			}
			continue
		}
		assertExact(t, z, want, msg)
	}
}

func TestContFrac_Homographic_Logging(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWriter(&buf, slog.LevelDebug)
	x := mustParse(t, "254/100", contfrac.WithLogger(log)).AddRat(rational.Int(1))
	_, _, err := x.Coefficients(100)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `msg=ingest engine=homographic term=2`)
	assert.Contains(t, buf.String(), `msg=emit engine=homographic term=3`)
	assert.Contains(t, buf.String(), `msg="input exhausted" engine=homographic`)
}
