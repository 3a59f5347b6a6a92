package schema

import (
	"net/url"
	"strconv"
)

// Paging defaults and bounds.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page selects a window of records: skip the first Skip, return at most Limit.
type Page struct {
	Skip  int
	Limit int
}

// DefaultPage returns the first page with the default limit.
func DefaultPage() Page {
	return Page{Skip: 0, Limit: DefaultLimit}
}

// Normalize clamps the page into its valid bounds.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// SearchCriteria filters books. Nil fields are not filtered on.
type SearchCriteria struct {
	Title  *string
	Author *string
	Year   *int
}

// IsEmpty reports whether no criterion was supplied.
func (c SearchCriteria) IsEmpty() bool {
	return c.Title == nil && c.Author == nil && c.Year == nil
}

// ParsePage reads skip and limit from query values. Missing values take
// their defaults; out-of-range values are rejected.
func ParsePage(q url.Values) (Page, error) {
	page := DefaultPage()
	ve := &ValidationError{}

	if raw := q.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			ve.add(LocationQuery, "skip", "must be an integer")
		case skip < 0:
			ve.add(LocationQuery, "skip", "must be greater than or equal to 0")
		default:
			page.Skip = skip
		}
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			ve.add(LocationQuery, "limit", "must be an integer")
		case limit < 1:
			ve.add(LocationQuery, "limit", "must be greater than or equal to 1")
		case limit > MaxLimit:
			ve.add(LocationQuery, "limit", "must be less than or equal to "+strconv.Itoa(MaxLimit))
		default:
			page.Limit = limit
		}
	}

	if err := ve.errOrNil(); err != nil {
		return Page{}, err
	}
	return page, nil
}

// ParseSearch reads the search criteria and page from query values. Empty
// title or author values are treated as absent. Any supplied integer year,
// zero included, becomes a criterion.
func ParseSearch(q url.Values) (SearchCriteria, Page, error) {
	var criteria SearchCriteria
	ve := &ValidationError{}

	if title := q.Get("title"); title != "" {
		criteria.Title = &title
	}
	if author := q.Get("author"); author != "" {
		criteria.Author = &author
	}
	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			ve.add(LocationQuery, "year", "must be an integer")
		} else {
			criteria.Year = &year
		}
	}

	page, err := ParsePage(q)
	if err != nil {
		pageErr := err.(*ValidationError)
		ve.Errors = append(ve.Errors, pageErr.Errors...)
	}

	if err := ve.errOrNil(); err != nil {
		return SearchCriteria{}, Page{}, err
	}
	return criteria, page, nil
}

// ParseID parses a book id path parameter.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, newValidationError(LocationPath, "id", "must be a non-negative integer")
	}
	return uint(id), nil
}
