// Package utils holds small helpers shared by the command and HTTP layers.
package utils

import "strings"

// SplitList splits a comma-separated query or flag value such as "arima,hw"
// into trimmed, non-empty items. Returns nil when nothing remains.
func SplitList(s string) []string {
	var result []string
	for _, v := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
