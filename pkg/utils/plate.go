package utils

import (
	"regexp"
	"strings"
)

var plateSeparators = regexp.MustCompile(`[\s\-_.]+`)

// NormalizePlate upper-cases a licence plate and collapses separators into a single dash
func NormalizePlate(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = plateSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
