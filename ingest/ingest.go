// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/pollcast/models"
)

var ErrMissingHeader = errors.New("csv is missing the required question and options columns")

// ValidRow is a fully validated poll definition parsed from one CSV line.
type ValidRow struct {
	Line     int
	Question string
	Options  []string
	Topic    string
	Folder   string
	Mode     string
}

// ImportRow is either a ValidRow or a SkippedRow, never both.
type ImportRow struct {
	Valid   *ValidRow
	Skipped *models.SkippedRow
}

// optionSeparator splits the options column. Pipe keeps commas free for
// the CSV layer.
const optionSeparator = "|"

// ParseRows reads a CSV with a header line naming at least question and
// options columns (topic, allowMultiple and folder are optional) and
// classifies every data line. Invalid lines are reported, not dropped
// silently, and never abort the rest of the file. The function does no
// persistence; callers decide what to do with the valid rows.
func ParseRows(r io.Reader) ([]ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["question"]; !ok {
		return nil, ErrMissingHeader
	}
	if _, ok := cols["options"]; !ok {
		return nil, ErrMissingHeader
	}

	var rows []ImportRow
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rows = append(rows, skip(line, "malformed csv line"))
			continue
		}
		rows = append(rows, classify(line, cols, record))
	}
	return rows, nil
}

func classify(line int, cols map[string]int, record []string) ImportRow {
	question := strings.TrimSpace(field(cols, record, "question"))
	if question == "" {
		return skip(line, "missing question")
	}

	var options []string
	for _, opt := range strings.Split(field(cols, record, "options"), optionSeparator) {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}
	if len(options) < 2 {
		return skip(line, "fewer than two options")
	}

	mode := models.ModeSingle
	if strings.EqualFold(strings.TrimSpace(field(cols, record, "allowmultiple")), "true") {
		mode = models.ModeMultiple
	}

	return ImportRow{Valid: &ValidRow{
		Line:     line,
		Question: question,
		Options:  options,
		Topic:    strings.TrimSpace(field(cols, record, "topic")),
		Folder:   strings.TrimSpace(field(cols, record, "folder")),
		Mode:     mode,
	}}
}

func field(cols map[string]int, record []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func skip(line int, reason string) ImportRow {
	return ImportRow{Skipped: &models.SkippedRow{Line: line, Reason: reason}}
}
