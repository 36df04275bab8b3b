// Package pagination computes page windows and page metadata for listings.
package pagination

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultLimit is used when no positive limit is requested
const DefaultLimit = 5

// Info describes a page of a listing. Skip and Limit are the window the
// caller has to query; the remaining fields are returned to clients.
type Info struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalArticles int64 `json:"totalArticles"`
	HasNextPage   bool  `json:"hasNextPage"`
	HasPrevPage   bool  `json:"hasPrevPage"`

	Skip  int `json:"-"`
	Limit int `json:"-"`
}

// Paginate normalizes page and limit and computes the window and metadata for
// a listing of totalCount items. A page past the last one is valid; it
// yields an empty window with hasNextPage false. Skip saturates at
// math.MaxInt for windows that start beyond any addressable offset.
func Paginate(totalCount int64, page, limit int) Info {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if totalCount < 0 {
		totalCount = 0
	}
	totalPages := int(totalCount / int64(limit))
	if totalCount%int64(limit) != 0 {
		totalPages++
	}
	skip := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		skip = (page - 1) * limit
	}
	return Info{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalArticles: totalCount,
		HasNextPage:   page < totalPages,
		HasPrevPage:   page > 1,
		Skip:          skip,
		Limit:         limit,
	}
}

// ParseParams parses raw page and limit query values. Like a lenient
// parseInt, leading whitespace and an optional sign are accepted and parsing
// stops at the first non-digit ("3abc" is 3). Values without leading digits
// are treated as absent; normalization happens in Paginate.
func ParseParams(page, limit string) (int, int) {
	return parseInt(page), parseInt(limit)
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	// out of range values come back saturated
	i, err := strconv.ParseInt(s[:end], 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return int(i)
}
