package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Timestamp layouts the remote sampler is known to emit.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// numberPattern extracts the first signed decimal from the temperature
// field, e.g. "+45.0" out of "Core 0:  +45.0°C". Label and unit tokens
// around it are ignored.
var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ParseResult carries the parsed series together with line accounting, so
// the run record can distinguish "small log" from "noisy log".
type ParseResult struct {
	Series  Series
	Lines   int
	Skipped int
}

// ParseLog converts a raw log snapshot into a Series. One record per line,
// fields comma-separated: a timestamp and a temperature field that may embed
// a sensor label and unit. The first line is treated as a header and skipped
// iff its leading field does not parse as a timestamp. Malformed lines —
// including a trailing line truncated by the concurrently-appending writer —
// are skipped and counted, never fatal. Records are kept in source order.
// Zero valid records in a non-degenerate input is an EmptyDatasetError.
func ParseLog(raw string) (ParseResult, error) {
	result := ParseResult{}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		result.Lines++

		sample, ok := parseLine(line)
		if !ok {
			// Header line, not a malformed record
			if i == 0 {
				result.Lines--
				continue
			}
			result.Skipped++
			continue
		}

		result.Series = append(result.Series, sample)
	}

	if len(result.Series) == 0 {
		return result, &EmptyDatasetError{Lines: result.Lines, Skipped: result.Skipped}
	}

	return result, nil
}

func parseLine(line string) (Sample, bool) {
	dateField, tempField, found := strings.Cut(line, ",")
	if !found {
		return Sample{}, false
	}

	timestamp, ok := parseTimestamp(strings.TrimSpace(dateField))
	if !ok {
		return Sample{}, false
	}

	// A sensor label like "Core 0:" carries its own digits; only the part
	// after the last colon holds the reading.
	if idx := strings.LastIndex(tempField, ":"); idx >= 0 {
		tempField = tempField[idx+1:]
	}

	match := numberPattern.FindString(tempField)
	if match == "" {
		return Sample{}, false
	}

	temperature, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return Sample{}, false
	}

	return NewSample(timestamp, temperature), true
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
