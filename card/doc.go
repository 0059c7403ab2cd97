// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package card validates payment card numbers and infers the issuing network.

# Checksum

Checksum walks the decimal digits from least to most significant. Every
second digit is doubled, and doubled values of ten or more have 9
subtracted. A number is structurally valid when the sum is a multiple of 10:

	card.Valid(4111111111111111) // true

# Networks

Classify applies the checksum, then the length and prefix table:

	15 digits, 34 or 37        → AMEX
	13 or 16 digits, 4         → VISA
	16 digits, 51 through 55   → MASTERCARD
	anything else              → INVALID

Network applies only the table, which is useful for explaining why a number
was rejected.

# Input

ParseNumber accepts a decimal string (surrounding whitespace is ignored)
and returns ErrNotANumber for anything else.
*/
package card
