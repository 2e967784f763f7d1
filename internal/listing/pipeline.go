package listing

import (
	"net/http"
	"sort"

	"laxin/internal/domain"
)

// PipelinePerPage is the default page size for Pipeline-backed endpoints.
const PipelinePerPage = 30

// Filter narrows a collection by one raw query value. It may fail, e.g.
// when the value references a record that does not exist; the failure
// terminates the list with its message.
type Filter[T any] func(value string, col Collection[T]) (Collection[T], error)

// Pipeline is one endpoint's list configuration. A Pipeline value is built
// per request (Scope closes over the caller's identity) and discarded after
// Run.
type Pipeline[T any] struct {
	// Scope yields the base collection the caller may see. This is the
	// authorization boundary: filters only ever narrow it.
	Scope func() (Collection[T], error)

	// Filters maps recognized query parameters to filter funcs. Parameters
	// outside this map are ignored.
	Filters map[string]Filter[T]

	// Validators is the opt-in schema for filter values. Checked before any
	// filter runs; the first failure terminates the list.
	Validators map[string]func(value string) error

	// Serialize maps one record to its response shape. It must drop
	// sensitive fields itself; the pipeline sends its output verbatim.
	Serialize func(T) any

	Order      []Sort // default ordering, [-id] when nil
	PerPage    int    // default PipelinePerPage
	StrictPage bool   // out-of-range page is NotFound instead of clamping
}

// Result is the composed page payload.
type Result struct {
	Count    int   `json:"count"`
	Next     any   `json:"next"`
	Previous any   `json:"previous"`
	Results  []any `json:"results"`
}

// Run executes the list flow for req: scope, validate, filter, order,
// count, paginate, serialize. Failures come back as domain errors for the
// handler boundary to map onto envelopes.
func (p Pipeline[T]) Run(req *http.Request) (Result, error) {
	ctx := req.Context()
	query := req.URL.Query()

	perPage := p.PerPage
	if perPage < 1 {
		perPage = PipelinePerPage
	}
	order := p.Order
	if len(order) == 0 {
		order = []Sort{{Field: "id", Desc: true}}
	}
	params := ParseParams(query, perPage, order)

	col, err := p.Scope()
	if err != nil {
		return Result{}, err
	}

	if len(p.Validators) > 0 {
		// deterministic fail-fast order
		fields := make([]string, 0, len(p.Validators))
		for field := range p.Validators {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			value := query.Get(field)
			if value == "" {
				continue
			}
			if err := p.Validators[field](value); err != nil {
				return Result{}, domain.ValidationError{Field: field, Msg: err.Error()}
			}
		}
	}

	for field, filter := range p.Filters {
		value := query.Get(field)
		if value == "" {
			continue
		}
		col, err = filter(value, col)
		if err != nil {
			return Result{}, err
		}
	}

	for _, s := range params.Order {
		col = col.OrderBy(s.Field, s.Desc)
	}

	total, err := col.Count(ctx)
	if err != nil {
		return Result{}, err
	}

	var window Window
	if p.StrictPage {
		window, err = PaginateStrict(total, params.Page, params.PerPage)
		if err != nil {
			return Result{}, err
		}
	} else {
		window = Paginate(total, params.Page, params.PerPage)
	}

	records, err := col.Slice(ctx, window.Offset, window.PerPage)
	if err != nil {
		return Result{}, err
	}

	results := make([]any, 0, len(records))
	for _, record := range records {
		results = append(results, p.Serialize(record))
	}

	next, previous := PageLinks(req.URL, window)
	return Result{
		Count:    total,
		Next:     next,
		Previous: previous,
		Results:  results,
	}, nil
}
