// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danielhkuo/pollcast/models"
)

func intPtr(i int) *int { return &i }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		optionCount int
		ballot      Ballot
		want        []int
		wantReason  string
	}{
		{
			name:        "single valid index",
			mode:        models.ModeSingle,
			optionCount: 2,
			ballot:      Ballot{OptionIndex: intPtr(0)},
			want:        []int{0},
		},
		{
			name:        "single index out of range",
			mode:        models.ModeSingle,
			optionCount: 2,
			ballot:      Ballot{OptionIndex: intPtr(2)},
			wantReason:  ReasonInvalidSelection,
		},
		{
			name:        "single negative index",
			mode:        models.ModeSingle,
			optionCount: 3,
			ballot:      Ballot{OptionIndex: intPtr(-1)},
			wantReason:  ReasonInvalidSelection,
		},
		{
			name:        "single missing index",
			mode:        models.ModeSingle,
			optionCount: 2,
			ballot:      Ballot{},
			wantReason:  ReasonInvalidSelection,
		},
		{
			name:        "single ignores indices field",
			mode:        models.ModeSingle,
			optionCount: 2,
			ballot:      Ballot{OptionIndices: []int{0, 1}},
			wantReason:  ReasonInvalidSelection,
		},
		{
			name:        "multiple dedupes repeated index",
			mode:        models.ModeMultiple,
			optionCount: 3,
			ballot:      Ballot{OptionIndices: []int{0, 0, 1}},
			want:        []int{0, 1},
		},
		{
			name:        "multiple keeps first occurrence order",
			mode:        models.ModeMultiple,
			optionCount: 4,
			ballot:      Ballot{OptionIndices: []int{3, 1, 3, 0}},
			want:        []int{3, 1, 0},
		},
		{
			name:        "multiple drops out of range entries",
			mode:        models.ModeMultiple,
			optionCount: 2,
			ballot:      Ballot{OptionIndices: []int{0, 5, -2}},
			want:        []int{0},
		},
		{
			name:        "multiple empty selection",
			mode:        models.ModeMultiple,
			optionCount: 2,
			ballot:      Ballot{OptionIndices: []int{}},
			wantReason:  ReasonNoValidSelections,
		},
		{
			name:        "multiple nothing valid after filtering",
			mode:        models.ModeMultiple,
			optionCount: 2,
			ballot:      Ballot{OptionIndices: []int{7, 9}},
			wantReason:  ReasonNoValidSelections,
		},
		{
			name:        "unknown mode",
			mode:        "ranked",
			optionCount: 2,
			ballot:      Ballot{OptionIndex: intPtr(0)},
			wantReason:  ReasonUnknownMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.mode, tt.optionCount, tt.ballot)

			if tt.wantReason != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Expected ValidationError, got %v", err)
				}
				if verr.Reason != tt.wantReason {
					t.Errorf("Expected reason %q, got %q", tt.wantReason, verr.Reason)
				}
				return
			}

			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected indices %v, got %v", tt.want, got)
			}
		})
	}
}
