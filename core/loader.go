// Package core has the sweep-log pipeline: loading, segmentation, subsetting,
// fitting and label/overlay assembly.
package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sweeplab/sweepfit/schema"
)

// LoadSamples reads comma-separated rows from r and returns the parsed
// (phase, value) samples in row order. Rows that do not have exactly two
// fields, or whose fields do not parse as real numbers, are dropped without
// an error; the drop count is reported in LoadStats.
func LoadSamples(r io.Reader) ([]schema.Sample, schema.LoadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Row width is validated per row, not globally
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var samples []schema.Sample
	var stats schema.LoadStats

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// A structurally broken row is dropped like any other malformed row.
				stats.Rows++
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("failed to read sweep log: %w", err)
		}

		stats.Rows++
		if len(record) != 2 {
			stats.Skipped++
			continue
		}

		phase, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			stats.Skipped++
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			stats.Skipped++
			continue
		}

		samples = append(samples, schema.Sample{Phase: phase, Value: value})
		stats.Loaded++
	}

	return samples, stats, nil
}

// LoadSamplesFile opens the sweep log at path and parses it with LoadSamples.
// A missing or unreadable file is a hard failure; the file handle is released
// as soon as parsing completes.
func LoadSamplesFile(path string) ([]schema.Sample, schema.LoadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, schema.LoadStats{}, fmt.Errorf("failed to open sweep log %q: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return LoadSamples(file)
}
