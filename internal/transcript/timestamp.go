package transcript

import (
	"fmt"
	"math"
)

// FormatTimestamp renders seconds as HH:MM:SS, truncating fractions. Hours are
// not wrapped and negative input clamps to zero.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(seconds)
	minutes, secs := total/60, total%60
	hours, minutes := minutes/60, minutes%60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
