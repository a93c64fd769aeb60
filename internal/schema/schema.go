// Package schema turns raw external input into validated, normalized
// payloads. Unknown fields are rejected (not dropped), enum and range
// constraints are enforced via struct tags, and the polymorphic target
// alignment check reports a single path-tagged issue.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"compass/internal/problem"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report issues by json field name, not Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func decode(r io.Reader, v any) *problem.Problem {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return problem.Validation("Invalid request body", decodeIssue(err))
	}
	return nil
}

func decodeIssue(err error) problem.Issue {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return problem.Issue{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("must be a %s", typeErr.Type),
		}
	}
	msg := err.Error()
	if i := strings.Index(msg, "unknown field "); i >= 0 {
		field := strings.Trim(msg[i+len("unknown field "):], `"`)
		return problem.Issue{Path: field, Message: "unknown field"}
	}
	return problem.Issue{Path: "body", Message: msg}
}

func check(v any) *problem.Problem {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return problem.Internal(err)
	}
	issues := make([]problem.Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, problem.Issue{Path: issuePath(fe), Message: issueMessage(fe)})
	}
	return problem.Validation("Validation failed", issues...)
}

func issuePath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		return "must have at least " + fe.Param() + " items"
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must have at most " + fe.Param() + " items"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	default:
		return "is invalid"
	}
}

// Date coerces incoming date-like strings to a canonical UTC instant.
// Accepted forms: RFC 3339 (with or without fractional seconds, Z or
// numeric offset) and a plain calendar date.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
