package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// Sort is one ordering step: a field name plus direction.
type Sort struct {
	Field string
	Desc  bool
}

// Params are the pagination/ordering inputs read from the query string.
type Params struct {
	Page    int
	PerPage int
	Order   []Sort
}

// ParseParams reads page, page_size and order_by from query values.
// A missing or malformed page resolves to 1, never an error. perPage and
// order fall back to the supplied defaults.
func ParseParams(query url.Values, defaultPerPage int, defaultOrder []Sort) Params {
	p := Params{
		Page:    positiveInt(query.Get("page"), 1),
		PerPage: positiveInt(query.Get("page_size"), defaultPerPage),
		Order:   ParseOrder(query.Get("order_by")),
	}
	if len(p.Order) == 0 {
		p.Order = defaultOrder
	}
	return p
}

// ParseOrder splits a comma-separated order_by value. A "-" prefix means
// descending. Empty entries are skipped.
func ParseOrder(raw string) []Sort {
	var order []Sort
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		if field == "" {
			continue
		}
		order = append(order, Sort{Field: field, Desc: desc})
	}
	return order
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
