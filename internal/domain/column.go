package domain

import (
	"strconv"
	"strings"
)

const columnPrefix = "column-"

// BoardColumn identifies a kitchen-display column, e.g. "column-2".
// The empty value means the order is not on a board.
type BoardColumn string

func Column(n int) BoardColumn {
	return BoardColumn(columnPrefix + strconv.Itoa(n))
}

// Index returns the 1-based column number if c has the form "column-N",
// N >= 1 without leading zeros.
func (c BoardColumn) Index() (int, bool) {
	s := string(c)
	if !strings.HasPrefix(s, columnPrefix) {
		return 0, false
	}
	digits := s[len(columnPrefix):]
	if digits == "" || digits[0] == '0' {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c BoardColumn) String() string { return string(c) }
