// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package card

import (
	"errors"
	"testing"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name     string
		number   uint64
		expected int
	}{
		{"zero", 0, 0},
		{"single digit", 7, 7},
		{"doubled digit collapses", 91, 10},
		{"visa 16", 4111111111111111, 30},
		{"visa 13 prefix only", 4111111111111, 22},
		{"sequential", 1234567890123, 55},
		{"amex", 378282246310005, 60},
		{"classic example", 79927398713, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Checksum(tt.number)
			if result != tt.expected {
				t.Errorf("Checksum(%d) = %d, want %d", tt.number, result, tt.expected)
			}
		})
	}
}

func TestDigitCountAndLeading(t *testing.T) {
	if got := DigitCount(0); got != 1 {
		t.Errorf("DigitCount(0) = %d, want 1", got)
	}
	if got := DigitCount(4111111111111111); got != 16 {
		t.Errorf("DigitCount = %d, want 16", got)
	}

	n := uint64(378282246310005)
	if got := Leading(n, 2); got != 37 {
		t.Errorf("Leading(n, 2) = %d, want 37", got)
	}
	if got := Leading(n, 1); got != 3 {
		t.Errorf("Leading(n, 1) = %d, want 3", got)
	}
	if got := Leading(42, 5); got != 42 {
		t.Errorf("Leading(42, 5) = %d, want 42", got)
	}
	if got := Leading(42, 0); got != 0 {
		t.Errorf("Leading(42, 0) = %d, want 0", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		number   uint64
		expected Issuer
	}{
		{"visa 13 digits", 4222222222222, Visa},
		{"visa 16 digits", 4111111111111111, Visa},
		{"visa 16 digits alt", 4012888888881881, Visa},
		{"amex 34", 341111111111111, Amex},
		{"amex 37", 378282246310005, Amex},
		{"amex 37 alt", 371449635398431, Amex},
		{"mastercard 55", 5555555555554444, Mastercard},
		{"mastercard 51", 5105105105105100, Mastercard},
		{"failed checksum", 1234567890123, Invalid},
		{"visa 13 failed checksum", 4111111111111, Invalid},
		{"mastercard failed checksum", 5111111111111111, Invalid},
		{"valid checksum unknown prefix", 6011111111111117, Invalid},
		{"valid checksum 16 digit 35", 3530111333300000, Invalid},
		{"valid checksum wrong length", 4062901840, Invalid},
		{"zero", 0, Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.number)
			if result != tt.expected {
				t.Errorf("Classify(%d) = %s, want %s", tt.number, result, tt.expected)
			}
		})
	}
}

func TestNetwork(t *testing.T) {
	tests := []struct {
		number   uint64
		expected Issuer
	}{
		{4111111111111, Visa},
		{4111111111111111, Visa},
		{341111111111111, Amex},
		{371111111111111, Amex},
		{5111111111111111, Mastercard},
		{5511111111111111, Mastercard},
		{5611111111111111, Invalid},
		{5011111111111111, Invalid},
		{3411111111111111, Invalid},
		{411111111111111, Invalid},
		{51111111111111, Invalid},
	}

	for _, tt := range tests {
		if result := Network(tt.number); result != tt.expected {
			t.Errorf("Network(%d) = %s, want %s", tt.number, result, tt.expected)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected uint64
		wantErr  bool
	}{
		{"4111111111111111", 4111111111111111, false},
		{"  378282246310005\n", 378282246310005, false},
		{"0", 0, false},
		{"", 0, true},
		{"   ", 0, true},
		{"-4111", 0, true},
		{"4111-1111", 0, true},
		{"foo", 0, true},
		{"99999999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseNumber(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNotANumber) {
					t.Errorf("ParseNumber(%q) error = %v, want ErrNotANumber", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNumber(%q) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseNumber(%q) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}
