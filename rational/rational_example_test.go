package rational_test

import (
	"fmt"

	"github.com/kbolino/contfrac/rational"
)

func ExampleNew() {
	n := rational.New(1, 2)
	fmt.Println(n)
	// Output: 1/2
}

func ExampleTry() {
	n, err := rational.Try(2, -4)
	if err != nil {
		panic(err)
	}
	fmt.Println(n)
	// Output: -1/2
}

func ExampleTry_denomZero() {
	_, err := rational.Try(1, 0)
	fmt.Println(err)
	// Output: division by zero
}

func ExampleParse() {
	for _, s := range []string{"2/4", "-3", "2.54"} {
		n, err := rational.Parse(s)
		if err != nil {
			panic(err)
		}
		fmt.Println(n)
	}
	// Output:
	// 1/2
	// -3/1
	// 127/50
}

func ExampleParseRationalString_denomZero() {
	_, err := rational.ParseRationalString("1/0")
	fmt.Println(err)
	// Output: division by zero
}

func ExampleN_Add() {
	x := rational.New(1, 2)
	y := rational.New(1, 3)
	fmt.Println(x.Add(y))
	// Output: 5/6
}

func ExampleN_Sub() {
	x := rational.New(1, 2)
	y := rational.New(1, 3)
	fmt.Println(x.Sub(y))
	// Output: 1/6
}

func ExampleN_Mul() {
	x := rational.New(1, 2)
	y := rational.New(2, 3)
	fmt.Println(x.Mul(y))
	// Output: 1/3
}

func ExampleN_Div() {
	x := rational.New(1, 2)
	y := rational.New(2, 3)
	fmt.Println(x.Div(y))
	// Output: 3/4
}

func ExampleN_DecimalString() {
	x := rational.New(2, 3)
	fmt.Println(x.DecimalString(4))
	// Output: 0.6667
}
