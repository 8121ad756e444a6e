package tableio

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/ClemoAcevedo/vaxseries/schema"
)

// domainPattern matches the D3 scale domain call of the downstream chart,
// e.g. `.domain([0, 100])`.
var domainPattern = regexp.MustCompile(`\.domain\(\[\s*(\d+)\s*,\s*(\d+)\s*\]\)`)

// CheckChart scans the downstream chart configuration for the percentage
// axis domain. A lower bound above zero means the chart itself introduces
// the apparent 15% starting point, independent of the data.
func CheckChart(path string) (schema.ChartCheck, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return schema.ChartCheck{}, err
	}

	check := schema.ChartCheck{Path: path}
	for _, match := range domainPattern.FindAllSubmatch(content, -1) {
		low, err := strconv.Atoi(string(match[1]))
		if err != nil {
			continue
		}
		high, err := strconv.Atoi(string(match[2]))
		if err != nil {
			continue
		}
		// The percentage axis is the 0..100 (or offset..100) scale; other
		// domain calls configure unrelated axes.
		if high != 100 {
			continue
		}
		check.AxisFound = true
		check.DomainLow = low
		check.DomainHigh = high
		check.Hardcoded = low != 0
		return check, nil
	}

	return check, fmt.Errorf("%s: no percentage axis domain found", path)
}
