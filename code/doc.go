// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package code generates short human-shareable codes for polls and quizzes.
//
// A Generator draws fixed-length codes from a restricted alphabet.
// NextUnique pairs the generator with a caller-supplied uniqueness check and
// retries up to a fixed cap before returning ErrSpaceExhausted.
package code
