// pkg/dumptool/helpers.go

package dumptool

import "strings"

// lastLine returns the final non-empty line of tool output, which for the
// database tools is the completion summary.
func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
