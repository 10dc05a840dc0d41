// pkg/execute/helpers.go

package execute

import "strings"

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func buildCommandString(command string, args ...string) string {
	return command + " " + strings.Join(args, " ")
}
