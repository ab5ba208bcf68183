package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

const MaxPageSize = 100

var ErrInvalidPage = errors.New("invalid pagination")

// Page is a zero-based page request: page 0 is the first page.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	return p.Number * p.Limit
}

// ParsePage reads the required page and limit query values.
func ParsePage(pageStr, limitStr string) (Page, error) {
	if pageStr == "" {
		return Page{}, fmt.Errorf("%w: page is required", ErrInvalidPage)
	}
	if limitStr == "" {
		return Page{}, fmt.Errorf("%w: limit is required", ErrInvalidPage)
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		return Page{}, fmt.Errorf("%w: page must be a non-negative integer", ErrInvalidPage)
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > MaxPageSize {
		return Page{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidPage, MaxPageSize)
	}

	if page > math.MaxInt32/limit {
		return Page{}, fmt.Errorf("%w: page out of range", ErrInvalidPage)
	}

	return Page{Number: page, Limit: limit}, nil
}
