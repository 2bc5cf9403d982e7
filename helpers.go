// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Rat is a rational number.
type Rat[T int32 | uint32] interface {
	Num() T
	Den() T
	Float64() float64

	// String returns the string representation of the rational number.
	// If the denominator is 1, the string will be the numerator only.
	String() string
}

var errZeroDenominator = errors.New("denominator must be non-zero")

// rat is a rational number.
// It's a lightweight version of math/big.rat.
type rat[T int32 | uint32] struct {
	num T
	den T
}

// Num returns the numerator of the rational number.
func (r rat[T]) Num() T {
	return r.num
}

// Den returns the denominator of the rational number.
func (r rat[T]) Den() T {
	return r.den
}

// Float64 returns the float64 representation of the rational number.
// A zero denominator, which EXIF writers do produce, gives ±Inf or NaN.
func (r rat[T]) Float64() float64 {
	return float64(r.num) / float64(r.den)
}

// String returns the string representation of the rational number.
// If the denominator is 1, the string will be the numerator only.
func (r rat[T]) String() string {
	if r.den == 1 {
		return strconv.FormatInt(int64(r.num), 10)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

// NewRat returns a new Rat with the given numerator and denominator,
// reduced to lowest terms with a positive denominator.
func NewRat[T int32 | uint32](num, den T) (Rat[T], error) {
	if den == 0 {
		return nil, errZeroDenominator
	}

	// Remove the greatest common divisor.
	gcd := func(a, b T) T {
		for b != 0 {
			a, b = b, a%b
		}
		return a
	}
	d := gcd(num, den)
	if d != 1 && d != 0 {
		num, den = num/d, den/d
	}

	// Denominator must be positive.
	if den < 0 {
		num, den = -num, -den
	}

	return rat[T]{num: num, den: den}, nil
}

// rawRat keeps the numerator and denominator exactly as stored in the stream.
func rawRat[T int32 | uint32](num, den T) Rat[T] {
	return rat[T]{num: num, den: den}
}

func printableString(s string) string {
	ss := strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, s)

	return strings.TrimSpace(ss)
}

func trimBytesNulls(b []byte) []byte {
	var lo, hi int
	for lo = 0; lo < len(b) && b[lo] == 0; lo++ {
	}
	for hi = len(b) - 1; hi >= 0 && b[hi] == 0; hi-- {
	}
	if lo > hi {
		return nil
	}
	return b[lo : hi+1]
}
