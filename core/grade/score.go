package grade

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/trezcool/darasa/core"
)

// ParseScore reads a raw score typed in a gradebook cell.
// An empty input means "clear the cell" and returns (nil, nil).
func ParseScore(raw string, totalPoints float64) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, core.NewValidationError(nil, core.FieldError{
			Field: "score",
			Error: "score must be a number",
		})
	}
	if v < 0 || v > totalPoints {
		return nil, core.NewValidationError(nil, core.FieldError{
			Field: "score",
			Error: fmt.Sprintf("score must be between 0 and %s", FormatScore(totalPoints)),
		})
	}
	return &v, nil
}

// FormatScore prints a score without trailing zeros.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
