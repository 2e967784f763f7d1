package listing

import (
	"net/url"
	"strconv"

	"laxin/internal/domain"
)

// DefaultPerPage is the paginator's own fallback page size. List endpoints
// built on Pipeline use PipelinePerPage instead.
const DefaultPerPage = 10

// Window is one computed page of a collection.
type Window struct {
	Page    int
	PerPage int
	Total   int
	Pages   int
	Offset  int
	HasNext bool
	HasPrev bool
}

// Paginate computes the page window. Pages under 1 resolve to the first
// page; pages past the end resolve to the last page, never an error.
func Paginate(total, page, perPage int) Window {
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	return Window{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		Offset:  (page - 1) * perPage,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// PaginateStrict is Paginate, except a page past the end is a NotFound
// failure instead of clamping to the last page.
func PaginateStrict(total, page, perPage int) (Window, error) {
	w := Paginate(total, page, perPage)
	if page > w.Pages {
		return Window{}, domain.NotFoundError{Resource: "page"}
	}
	return w, nil
}

// PageLinks builds the next/previous URLs for w by substituting the adjacent
// page number into the request URL, preserving every other query parameter.
// An absent neighbour is false, matching the wire contract.
func PageLinks(requestURL *url.URL, w Window) (next, previous any) {
	next, previous = false, false
	if requestURL == nil {
		return next, previous
	}
	if w.HasNext {
		next = pageURL(requestURL, w.Page+1)
	}
	if w.HasPrev {
		previous = pageURL(requestURL, w.Page-1)
	}
	return next, previous
}

func pageURL(base *url.URL, page int) string {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
