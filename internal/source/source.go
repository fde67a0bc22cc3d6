// Package source loads raw task records from CSV and JSON files.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"gantt2svg/internal/config"
	"gantt2svg/internal/task"
)

// milestoneSeparator splits several milestones in one CSV cell.
const milestoneSeparator = ";"

// Load reads the task records in path. Files ending in .json hold a JSON
// array of records; anything else is read as CSV with a header row.
func Load(path string, cols config.Columns) ([]task.Raw, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer file.Close()

	var raw []task.Raw
	if strings.EqualFold(filepath.Ext(path), ".json") {
		raw, err = DecodeJSON(file)
	} else {
		raw, err = ReadCSV(file, cols)
	}
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"path": path, "records": len(raw)}).Debug("loaded tasks")
	return raw, nil
}

// DecodeJSON decodes a JSON array of task records. Numbers decode as
// float64, so a numeric shape or color stays a series index.
func DecodeJSON(r io.Reader) ([]task.Raw, error) {
	var raw []task.Raw
	if err := sonic.ConfigStd.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error parsing JSON input: %w", err)
	}
	return raw, nil
}

// ReadCSV reads task records from CSV. Header names are matched to cols
// case-insensitively; only the label column is required. Empty cells are
// absent values, integer shape and color cells are series indexes.
func ReadCSV(r io.Reader, cols config.Columns) ([]task.Raw, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Read header to get column mapping
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := columnMap[strings.ToLower(cols.Label)]; !ok {
		return nil, fmt.Errorf("label column '%s' not found in CSV. Available columns: %v", cols.Label, header)
	}

	var raw []task.Raw
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		cell := func(name string) string {
			i, ok := columnMap[strings.ToLower(name)]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		raw = append(raw, task.Raw{
			Label:     cell(cols.Label),
			Start:     optional(cell(cols.Start)),
			Stop:      optional(cell(cols.Stop)),
			Milestone: milestones(cell(cols.Milestone)),
			Shape:     indexOrName(cell(cols.Shape)),
			Color:     indexOrName(cell(cols.Color)),
		})
	}
	return raw, nil
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func milestones(s string) any {
	var out []any
	for _, part := range strings.Split(s, milestoneSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}

func indexOrName(s string) any {
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}
