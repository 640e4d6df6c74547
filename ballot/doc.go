// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ballot validates a respondent's selection against a poll's
// selection mode. Normalize is pure: it turns a raw ballot into the
// de-duplicated list of option indices to increment, or a ValidationError.
package ballot
