// Parses page range strings such as "1, 2-, -3, 4-5, -".
// This is a self-contained utility with no coupling to the
// compositing packages.
package pagerange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Entry is one resolved page interval, zero-based and inclusive
// on both ends.
type Entry struct {
	First, Last int
}

// whitespace is allowed around numbers and dashes, never inside them
var (
	singlePage     = regexp.MustCompile(`^\s*(\d+)\s*$`)
	rightOpenRange = regexp.MustCompile(`^\s*(\d+)\s*-\s*$`)
	leftOpenRange  = regexp.MustCompile(`^\s*-\s*(\d+)\s*$`)
	fullRange      = regexp.MustCompile(`^\s*(\d+)\s*-\s*(\d+)\s*$`)
	bothOpenRange  = regexp.MustCompile(`^\s*-\s*$`)
)

// Parse reads a list of page ranges separated by `,`, `;` or `:`.
// A range is one of `n`, `n-`, `-m`, `n-m` or the bare `-` meaning
// the entire document; whitespace is ignored. Page numbers are
// 1-based in the input, at most pageCount, and returned 0-based.
func Parse(s string, pageCount int) ([]Entry, error) {
	if pageCount <= 0 {
		return nil, errors.New("pagerange: page count must be positive")
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ':'
	})
	entries := make([]Entry, 0, len(tokens))
	for _, token := range tokens {
		entry, err := parseEntry(token, pageCount)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseEntry(token string, pageCount int) (Entry, error) {
	var entry Entry
	switch {
	case bothOpenRange.MatchString(token):
		entry.First, entry.Last = 1, pageCount
	case singlePage.MatchString(token):
		n, err := strconv.Atoi(singlePage.FindStringSubmatch(token)[1])
		if err != nil {
			return entry, fmt.Errorf("pagerange: invalid page number %q", token)
		}
		entry.First, entry.Last = n, n
	case rightOpenRange.MatchString(token):
		n, err := strconv.Atoi(rightOpenRange.FindStringSubmatch(token)[1])
		if err != nil {
			return entry, fmt.Errorf("pagerange: invalid page number in %q", token)
		}
		entry.First, entry.Last = n, pageCount
	case leftOpenRange.MatchString(token):
		n, err := strconv.Atoi(leftOpenRange.FindStringSubmatch(token)[1])
		if err != nil {
			return entry, fmt.Errorf("pagerange: invalid page number in %q", token)
		}
		entry.First, entry.Last = 1, n
	case fullRange.MatchString(token):
		m := fullRange.FindStringSubmatch(token)
		first, errF := strconv.Atoi(m[1])
		last, errL := strconv.Atoi(m[2])
		if errF != nil || errL != nil {
			return entry, fmt.Errorf("pagerange: invalid page number in %q", token)
		}
		entry.First, entry.Last = first, last
	default:
		return entry, fmt.Errorf("pagerange: invalid page range %q", token)
	}

	if entry.First > pageCount || entry.Last > pageCount {
		return entry, fmt.Errorf("pagerange: page number in %q is larger than the page count %d", token, pageCount)
	}
	if entry.Last < entry.First {
		return entry, fmt.Errorf("pagerange: interval bounds in %q must be increasing", token)
	}
	if entry.First == 0 { // Last cannot be 0 unless First is
		return entry, fmt.Errorf("pagerange: page numbers start at 1 (in %q)", token)
	}

	// page numbers are 1-based in the input, 0-based in the result
	entry.First--
	entry.Last--
	return entry, nil
}
