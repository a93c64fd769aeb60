// Package page implements cursor-based forward pagination shared by every
// list operation: fetch take+1 records past the cursor, and if the extra
// record came back its id becomes the next cursor.
package page

const (
	DefaultTake = 25
	MaxTake     = 100
)

type Meta struct {
	NextCursor *string `json:"nextCursor"`
	Count      int     `json:"count"`
}

type Result[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// Normalize resolves the effective page size. Values above MaxTake are
// rejected earlier by query validation; this only fills in the default.
func Normalize(take int) int {
	if take <= 0 {
		return DefaultTake
	}
	return take
}

// Window folds an over-fetched slice (up to take+1 items) into a page.
// The extra item, when present, is dropped and its id returned as the
// cursor for the next page.
func Window[T any](items []T, take int, id func(T) string) Result[T] {
	res := Result[T]{Data: items}
	if len(items) > take {
		next := id(items[take])
		res.Data = items[:take]
		res.Meta.NextCursor = &next
	}
	if res.Data == nil {
		res.Data = []T{}
	}
	res.Meta.Count = len(res.Data)
	return res
}
