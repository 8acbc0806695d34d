// internal/triage/temperature.go
package triage

import (
	"regexp"
	"strconv"
	"strings"
)

// temperaturePatterns are tried in order; the first match wins.
var temperaturePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\.?\d*)\s*°?f`),
	regexp.MustCompile(`(\d+\.?\d*)\s*degree`),
	regexp.MustCompile(`temperature\s+(?:is\s+)?(\d+\.?\d*)`),
	regexp.MustCompile(`fever\s+(?:of\s+)?(\d+\.?\d*)`),
	regexp.MustCompile(`(?:above|over|more than)\s+(\d+\.?\d*)`),
}

// ExtractTemperature returns the first temperature mentioned in text, in
// Fahrenheit. Values strictly between 35 and 50 are read as Celsius.
func ExtractTemperature(text string) (float64, bool) {
	lower := strings.ToLower(text)
	for _, re := range temperaturePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		if value > 35 && value < 50 {
			value = value*9/5 + 32
		}
		return value, true
	}
	return 0, false
}
