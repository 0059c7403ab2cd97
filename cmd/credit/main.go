// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command credit reports the issuer of a card number, or INVALID.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-tally/card"
	"github.com/danielhkuo/quickly-tally/prompt"
)

func main() {
	if _, statErr := os.Stat(".env"); statErr == nil {
		_ = godotenv.Load(".env")
	}
	if err := run(os.Stdin, os.Stdout); err != nil {
		slog.Error("failed to read card number", "error", err)
	}
}

// run asks for a number until one parses, then prints its issuer
func run(stdin io.Reader, stdout io.Writer) error {
	p := prompt.New(stdin, stdout)

	var number uint64
	err := p.Ask(func(line string) error {
		n, err := card.ParseNumber(line)
		if err != nil {
			return err
		}
		number = n
		return nil
	}, "Number: ")
	if err != nil {
		return err
	}

	slog.Debug("card checked", "digits", card.DigitCount(number), "checksum", card.Checksum(number))
	fmt.Fprintln(stdout, card.Classify(number))
	return nil
}
