package response

// Page wraps a cursor-paginated listing. Next is the opaque cursor for the
// following page, absent on the last one.
type Page[T any] struct {
	Items []T     `json:"items"`
	Next  *string `json:"next,omitempty"`
}

func NewPage[T any](items []T, next *string) Page[T] {
	return Page[T]{Items: items, Next: next}
}
