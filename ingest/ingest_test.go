// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"strings"
	"testing"

	"github.com/danielhkuo/pollcast/models"
)

func TestParseRows(t *testing.T) {
	input := strings.Join([]string{
		"question,options,topic,allowMultiple,folder",
		"Q1,A|B|C,Topic1,true,TestFolder",
		"Q2,Yes|No,Topic2,false,TestFolder",
		"Q3,One,Topic3,false,",
		",A|B,Topic4,false,",
	}, "\n")

	rows, err := ParseRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	v := rows[0].Valid
	if v == nil {
		t.Fatalf("row 0 should be valid, got skip %+v", rows[0].Skipped)
	}
	if v.Question != "Q1" || v.Topic != "Topic1" || v.Folder != "TestFolder" {
		t.Errorf("row 0 = %+v", v)
	}
	if len(v.Options) != 3 || v.Options[0] != "A" || v.Options[2] != "C" {
		t.Errorf("row 0 options = %v", v.Options)
	}
	if v.Mode != models.ModeMultiple {
		t.Errorf("row 0 mode = %s, want multiple", v.Mode)
	}

	if rows[1].Valid == nil || rows[1].Valid.Mode != models.ModeSingle {
		t.Errorf("row 1 = %+v", rows[1])
	}

	if rows[2].Skipped == nil {
		t.Fatalf("row 2 should be skipped, got %+v", rows[2].Valid)
	}
	if rows[2].Skipped.Line != 4 || rows[2].Skipped.Reason != "fewer than two options" {
		t.Errorf("row 2 skip = %+v", rows[2].Skipped)
	}

	if rows[3].Skipped == nil || rows[3].Skipped.Reason != "missing question" {
		t.Errorf("row 3 = %+v", rows[3])
	}
}

func TestParseRowsHeaderVariants(t *testing.T) {
	// Column order and casing should not matter, and unknown columns are
	// ignored.
	input := "Topic,OPTIONS,extra,Question\nmath,1|2|3,junk,Pick one\n"

	rows, err := ParseRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	if len(rows) != 1 || rows[0].Valid == nil {
		t.Fatalf("rows = %+v", rows)
	}
	v := rows[0].Valid
	if v.Question != "Pick one" || v.Topic != "math" || len(v.Options) != 3 {
		t.Errorf("row = %+v", v)
	}
}

func TestParseRowsMissingColumns(t *testing.T) {
	for _, input := range []string{
		"",
		"question,topic\nQ1,math\n",
		"options,topic\nA|B,math\n",
	} {
		if _, err := ParseRows(strings.NewReader(input)); err != ErrMissingHeader {
			t.Errorf("input %q: err = %v, want ErrMissingHeader", input, err)
		}
	}
}

func TestParseRowsShortRecord(t *testing.T) {
	// A data line with fewer fields than the header still parses; missing
	// trailing columns read as empty.
	input := "question,options,topic\nQ1,A|B\n"

	rows, err := ParseRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	if rows[0].Valid == nil || rows[0].Valid.Topic != "" {
		t.Errorf("rows = %+v", rows[0])
	}
}

func TestParseRowsWhitespaceOptions(t *testing.T) {
	input := "question,options\nQ1, A | | B \n"

	rows, err := ParseRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	v := rows[0].Valid
	if v == nil {
		t.Fatalf("row should be valid, got %+v", rows[0].Skipped)
	}
	if len(v.Options) != 2 || v.Options[0] != "A" || v.Options[1] != "B" {
		t.Errorf("options = %v", v.Options)
	}
}
