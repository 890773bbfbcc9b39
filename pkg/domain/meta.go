package domain

import (
	"math"
	"strings"
)

// MetaEntry is a single post metadata value
type MetaEntry struct {
	PostID int64
	Key    string
	Value  string
}

// ParseCount converts a stored meta value to a non-negative counter.
// Leading integer prefix is used, so "12abc" is 12; anything else, or a negative number, is 0.
func ParseCount(value string) int64 {
	s := strings.TrimSpace(value)
	if s != "" && s[0] == '-' {
		return 0
	}
	s = strings.TrimPrefix(s, "+")

	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		d := int64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			return math.MaxInt64
		}
		n = n*10 + d
	}
	return n
}
