package controlnum

import (
	"fmt"
	"strconv"
	"strings"
)

// sequenceWidth is the zero-padded width of the numeric part of a control
// number, e.g. DV-000001.
const sequenceWidth = 6

// Format renders a control number from a prefix code and sequence number.
func Format(prefixCode string, sequence int64) string {
	return fmt.Sprintf("%s-%0*d", prefixCode, sequenceWidth, sequence)
}

// Parse splits a control number into its prefix code and sequence number.
func Parse(controlNumber string) (string, int64, error) {
	idx := strings.LastIndex(controlNumber, "-")
	if idx <= 0 || idx == len(controlNumber)-1 {
		return "", 0, fmt.Errorf("malformed control number %q", controlNumber)
	}
	sequence, err := strconv.ParseInt(controlNumber[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed control number %q: %w", controlNumber, err)
	}
	return controlNumber[:idx], sequence, nil
}

// Next returns the sequence number following the highest allocated one.
// Sequences start at 1 when nothing has been allocated yet.
func Next(highest int64) int64 {
	if highest < 0 {
		return 1
	}
	return highest + 1
}
