package chat

import (
	"fmt"
	"math"
)

// FormatDuration renders a recording length as M:SS. Seconds are rounded
// and a rounded 60 carries into the minutes.
func FormatDuration(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	minutes := millis / 60000
	seconds := int64(math.Round(float64(millis%60000) / 1000))
	if seconds == 60 {
		minutes++
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
