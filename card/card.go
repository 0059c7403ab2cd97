// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package card

import (
	"errors"
	"strconv"
	"strings"
)

// Issuer is the card network inferred from a number. Its value is the
// line printed for the number.
type Issuer string

const (
	Amex       Issuer = "AMEX"
	Visa       Issuer = "VISA"
	Mastercard Issuer = "MASTERCARD"
	Invalid    Issuer = "INVALID"
)

var ErrNotANumber = errors.New("not a card number")

// ParseNumber reads a card number made only of decimal digits
func ParseNumber(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNotANumber
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrNotANumber
		}
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	return n, nil
}

// Checksum returns the Luhn sum of n
func Checksum(n uint64) int {
	sum := 0
	pos := 1
	for v := n; v > 0; v /= 10 {
		d := int(v % 10)
		if pos%2 == 0 {
			d *= 2
			if d >= 10 {
				d -= 9
			}
		}
		sum += d
		pos++
	}
	return sum
}

// Valid reports whether the checksum of n is a multiple of 10
func Valid(n uint64) bool {
	return Checksum(n)%10 == 0
}

// DigitCount returns the number of decimal digits in n. Zero has one digit.
func DigitCount(n uint64) int {
	count := 1
	for v := n; v >= 10; v /= 10 {
		count++
	}
	return count
}

// Leading returns the first k digits of n, or n itself when it has k or
// fewer digits.
func Leading(n uint64, k int) uint64 {
	if k <= 0 {
		return 0
	}
	for drop := DigitCount(n) - k; drop > 0; drop-- {
		n /= 10
	}
	return n
}

// Network classifies n by digit count and prefix only, ignoring the checksum
func Network(n uint64) Issuer {
	digits := DigitCount(n)
	first := Leading(n, 1)
	firstTwo := Leading(n, 2)

	switch {
	case digits == 15 && (firstTwo == 34 || firstTwo == 37):
		return Amex
	case (digits == 13 || digits == 16) && first == 4:
		return Visa
	case digits == 16 && firstTwo >= 51 && firstTwo <= 55:
		return Mastercard
	default:
		return Invalid
	}
}

// Classify returns the issuer of a structurally valid number, or Invalid
func Classify(n uint64) Issuer {
	if !Valid(n) {
		return Invalid
	}
	return Network(n)
}
