package contfrac_test

import (
	"math"
	"testing"

	"github.com/kbolino/contfrac"
	"github.com/kbolino/contfrac/rational"
)

func BenchmarkContFrac_Homographic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		x := contfrac.FromSource(sqrt2())
		x.MulRat(rational.New(254, 100)).Coefficients(100)
	}
}

func BenchmarkContFrac_Bihomographic(b *testing.B) {
	y, err := contfrac.FromFloat64(math.Pi)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		x := contfrac.FromSource(sqrt2())
		x.Add(y).Coefficients(100)
	}
}

func BenchmarkFromFloat64(b *testing.B) {
	for i := 0; i < b.N; i++ {
		contfrac.FromFloat64(math.E)
	}
}
