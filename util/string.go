package util

import (
	"fmt"
	"strings"
)

// JoinString renders each element with its String method and joins them with sep.
func JoinString[A fmt.Stringer](elems []A, sep string) string {
	parts := make([]string, len(elems))
	for i, elem := range elems {
		parts[i] = elem.String()
	}
	return strings.Join(parts, sep)
}
