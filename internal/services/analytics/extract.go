package analytics

import (
	"regexp"
	"strconv"
	"strings"
)

// Tried in order; the first pattern that matches anywhere wins.
var volatilityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)VIX\s*[:\s]+(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)VIX\s+(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)volatility\s+index\s*[:\s]+(\d+\.?\d*)`),
}

// ParseVolatilityIndex pulls a VIX level out of free text.
func ParseVolatilityIndex(text string) (float64, bool) {
	for _, re := range volatilityPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

// ExtractHeadlines returns the first n non-empty trimmed lines of text.
func ExtractHeadlines(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == n {
			break
		}
	}
	return out
}
