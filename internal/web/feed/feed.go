// Package feed slices the recency-ordered article feed into fixed pages.
package feed

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the fixed number of articles per feed page.
const PageSize = 5

// Page describes one window of the feed plus its pagination metadata.
type Page struct {
	// Number is the clamped 1-based page number.
	Number int
	// Total is the number of pages; at least 1 even for an empty feed.
	Total int
	// Offset and Limit describe the item window for this page.
	Offset int
	Limit  int
	// HasPrev and HasNext report whether neighboring pages exist.
	HasPrev bool
	HasNext bool
}

// Paginate computes the page window for a requested page number over a feed
// of totalItems articles. Out-of-range page numbers clamp to the nearest
// valid page rather than erroring.
func Paginate(totalItems int, page int) Page {
	if totalItems < 0 {
		totalItems = 0
	}

	total := (totalItems + PageSize - 1) / PageSize
	if total < 1 {
		total = 1
	}

	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	offset := (page - 1) * PageSize
	limit := PageSize
	if remaining := totalItems - offset; remaining < limit {
		limit = remaining
	}
	if limit < 0 {
		limit = 0
	}

	return Page{
		Number:  page,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
		HasPrev: page > 1,
		HasNext: page < total,
	}
}

// PageNumber parses the "page" query parameter. Missing or malformed values
// count as page 1; clamping to valid bounds happens in Paginate.
func PageNumber(query url.Values) int {
	raw := strings.TrimSpace(query.Get("page"))
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
