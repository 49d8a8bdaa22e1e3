package timer

import "fmt"

// FormatSeconds renders a count of seconds as "m:ss" (125 -> "2:05").
// Minutes are not wrapped into hours.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
