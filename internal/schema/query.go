package schema

import (
	"net/url"
	"strconv"

	"compass/internal/page"
	"compass/internal/problem"
	"compass/internal/store"
)

// ListQuery carries the normalized list parameters shared by every
// collection endpoint. Where holds endpoint-specific exact-match filters
// keyed by field name.
type ListQuery struct {
	Cursor string
	Take   int
	Filter store.Filter
}

// ParseListQuery normalizes cursor, take, free-text and date-range
// parameters. An out-of-range or non-numeric take is a validation error
// rather than a silent clamp.
func ParseListQuery(values url.Values) (ListQuery, error) {
	q := ListQuery{
		Cursor: values.Get("cursor"),
		Take:   page.DefaultTake,
	}
	if raw := values.Get("take"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > page.MaxTake {
			return q, problem.Validation("Validation failed", problem.Issue{
				Path:    "take",
				Message: "take must be an integer between 1 and 100",
			})
		}
		q.Take = n
	}
	q.Filter.Q = values.Get("q")
	q.Filter.IncludeDeprecated = values.Get("includeDeprecated") == "true"
	if raw := values.Get("from"); raw != "" {
		t, err := ParseDate(raw)
		if err != nil {
			return q, problem.Validation("Validation failed", problem.Issue{
				Path:    "from",
				Message: "from must be an ISO-8601 date",
			})
		}
		q.Filter.From = &t
	}
	if raw := values.Get("to"); raw != "" {
		t, err := ParseDate(raw)
		if err != nil {
			return q, problem.Validation("Validation failed", problem.Issue{
				Path:    "to",
				Message: "to must be an ISO-8601 date",
			})
		}
		q.Filter.To = &t
	}
	return q, nil
}

// Status narrows a node listing to one lifecycle status. An explicit
// status filter supersedes the deprecated-exclusion default.
func (q *ListQuery) Status(values url.Values) error {
	raw := values.Get("status")
	if raw == "" {
		return nil
	}
	if raw != "active" && raw != "deprecated" {
		return problem.Validation("Validation failed", problem.Issue{
			Path:    "status",
			Message: "status must be one of: active, deprecated",
		})
	}
	q.Filter.Status = raw
	return nil
}

// Enum copies a query parameter into the exact-match filter set after
// checking it against the permitted values.
func (q *ListQuery) Enum(values url.Values, name string, allowed ...string) error {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	for _, a := range allowed {
		if raw == a {
			if q.Filter.Where == nil {
				q.Filter.Where = map[string]string{}
			}
			q.Filter.Where[name] = raw
			return nil
		}
	}
	return problem.Validation("Validation failed", problem.Issue{
		Path:    name,
		Message: name + " has an unsupported value",
	})
}

// Where records an exact-match filter without value restrictions, for id
// parameters such as experimentId or hypothesisId.
func (q *ListQuery) Where(values url.Values, name string) {
	raw := values.Get(name)
	if raw == "" {
		return
	}
	if q.Filter.Where == nil {
		q.Filter.Where = map[string]string{}
	}
	q.Filter.Where[name] = raw
}
