// Package intval reads integers the way the host's form handling does: an
// optionally signed decimal prefix is honored and anything else reads as 0.
package intval

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads an optionally signed decimal prefix after leading whitespace.
// Input without digits reads as 0; out of range values saturate.
func Parse(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return n
		}
		return 0
	}
	return n
}
