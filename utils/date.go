package utils

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// NormalizeDate parses a client-supplied date and truncates it to day
// granularity. Events, matches, and slot keys all carry dates in this form;
// time of day lives in the separate time label.
func NormalizeDate(value string) (string, error) {
	for _, layout := range []string{dayLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(dayLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", value)
}
