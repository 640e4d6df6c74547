// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"

	"github.com/danielhkuo/pollcast/models"
)

// Validation failure reasons
const (
	ReasonInvalidSelection  = "invalid_selection"
	ReasonNoValidSelections = "no_valid_selections"
	ReasonUnknownMode       = "unknown_mode"
)

// ValidationError reports a malformed selection. It is routine user input
// failure, not an internal error.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid ballot (%s): %s", e.Reason, e.Message)
}

// Ballot is one respondent's submission against a single poll. It is
// ephemeral and never persisted.
type Ballot struct {
	TargetCode    string
	Fingerprint   string
	OptionIndex   *int
	OptionIndices []int
}

// Normalize validates a ballot's selection against a poll's mode and option
// count and returns the option indices to increment. Single mode requires
// exactly one in-range index. Multiple mode requires at least one in-range
// index; duplicates and out-of-range indices are discarded, keeping first
// occurrence order. Pure function: no side effects, no I/O.
func Normalize(mode string, optionCount int, b Ballot) ([]int, error) {
	switch mode {
	case models.ModeSingle:
		if b.OptionIndex == nil {
			return nil, &ValidationError{
				Reason:  ReasonInvalidSelection,
				Message: "option_index is required for single-select polls",
			}
		}
		idx := *b.OptionIndex
		if idx < 0 || idx >= optionCount {
			return nil, &ValidationError{
				Reason:  ReasonInvalidSelection,
				Message: fmt.Sprintf("option_index %d out of range [0,%d)", idx, optionCount),
			}
		}
		return []int{idx}, nil

	case models.ModeMultiple:
		if len(b.OptionIndices) == 0 {
			return nil, &ValidationError{
				Reason:  ReasonNoValidSelections,
				Message: "option_indices must not be empty for multi-select polls",
			}
		}
		seen := make(map[int]bool, len(b.OptionIndices))
		var indices []int
		for _, idx := range b.OptionIndices {
			if idx < 0 || idx >= optionCount || seen[idx] {
				continue
			}
			seen[idx] = true
			indices = append(indices, idx)
		}
		if len(indices) == 0 {
			return nil, &ValidationError{
				Reason:  ReasonNoValidSelections,
				Message: "no valid option indices in selection",
			}
		}
		return indices, nil

	default:
		return nil, &ValidationError{
			Reason:  ReasonUnknownMode,
			Message: fmt.Sprintf("unknown selection mode %q", mode),
		}
	}
}
