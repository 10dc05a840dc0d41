// pkg/interaction/helpers.go

package interaction

import (
	"strconv"

	cerr "github.com/cockroachdb/errors"
)

func parseIndex(input string, count int) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > count {
		return 0, cerr.Newf("selection %d out of range 1-%d", n, count)
	}
	return n - 1, nil
}
