// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package prompt reads answers to interactive questions one line at a time.
// Numeric questions are asked again until the answer parses.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrClosed = errors.New("input closed")

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

// String prints the formatted prompt and returns the next line without its
// line ending
func (p *Prompter) String(format string, args ...any) (string, error) {
	fmt.Fprintf(p.out, format, args...)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", ErrClosed
	}
	return strings.TrimRight(p.in.Text(), "\r"), nil
}

// Ask repeats the prompt until parse accepts the answer
func (p *Prompter) Ask(parse func(string) error, format string, args ...any) error {
	for {
		line, err := p.String(format, args...)
		if err != nil {
			return err
		}
		if parse(line) == nil {
			return nil
		}
	}
}

// Int asks until the answer is a base-10 integer
func (p *Prompter) Int(format string, args ...any) (int, error) {
	var n int
	err := p.Ask(func(line string) error {
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return err
		}
		n = v
		return nil
	}, format, args...)
	return n, err
}
