// Package report renders estimates, database listings and statistics as
// text for people or as CSV and JSON for machines.
package report

import "fmt"

// Format selects a report encoding.
type Format string

const (
	Text Format = "text"
	CSV  Format = "csv"
	JSON Format = "json"
)

// ParseFormat maps a format name to its Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Text, CSV, JSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown report format %q, want text, csv or json", s)
}
