package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kbolino/contfrac"
	"github.com/kbolino/contfrac/rational"
)

// parseOperand reads a rational literal, "float:V" or "sqrt:V".
func parseOperand(s string, opts ...contfrac.Option) (*contfrac.ContFrac, error) {
	kind, val, found := strings.Cut(s, ":")
	if !found {
		return contfrac.Parse(s, opts...)
	}
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", s, rational.ErrFmtInvalid)
	}
	switch kind {
	case "float":
	case "sqrt":
		if v < 0 {
			return nil, fmt.Errorf("parsing %q: square root of a negative number", s)
		}
		v = math.Sqrt(v)
	default:
		return nil, fmt.Errorf("parsing %q: unknown kind %q", s, kind)
	}
	return contfrac.FromFloat64(v, opts...)
}

// apply combines x and y with the operator op.
func apply(x *contfrac.ContFrac, op string, y *contfrac.ContFrac) (*contfrac.ContFrac, error) {
	switch op {
	case "+":
		return x.Add(y), nil
	case "-":
		return x.Sub(y), nil
	case "*", "x":
		return x.Mul(y), nil
	case "/":
		return x.Div(y), nil
	}
	return nil, fmt.Errorf("unknown operator %q", op)
}

// evaluate folds "x op y op z ..." from left to right.
func evaluate(args []string, opts ...contfrac.Option) (*contfrac.ContFrac, error) {
	if len(args)%2 == 0 {
		return nil, fmt.Errorf("want operand (operator operand)..., got %d arguments", len(args))
	}
	acc, err := parseOperand(args[0], opts...)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i += 2 {
		y, err := parseOperand(args[i+1], opts...)
		if err != nil {
			return nil, err
		}
		acc, err = apply(acc, args[i], y)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
