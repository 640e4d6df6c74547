// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package code

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
)

// DefaultAlphabet omits 0/O/1/I to keep codes readable when shared aloud.
const DefaultAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	DefaultLength      = 6
	DefaultMaxAttempts = 20
)

// ErrSpaceExhausted is returned when NextUnique gives up after hitting
// existing codes on every attempt.
var ErrSpaceExhausted = errors.New("code space exhausted")

// ExistsFunc reports whether a candidate code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generator produces short share codes from a fixed alphabet.
type Generator struct {
	alphabet    string
	length      int
	maxAttempts int
}

func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{
		alphabet:    DefaultAlphabet,
		length:      length,
		maxAttempts: DefaultMaxAttempts,
	}
}

// Generate returns one random candidate code.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	for i, b := range buf {
		buf[i] = g.alphabet[int(b)%len(g.alphabet)]
	}
	return string(buf), nil
}

// NextUnique generates candidates until exists reports one free, up to a
// bounded number of attempts. An unbounded retry loop could spin forever
// once the code space fills up, so exhaustion is surfaced as an error.
func (g *Generator) NextUnique(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		candidate, err := g.Generate()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("uniqueness check failed: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrSpaceExhausted
}
