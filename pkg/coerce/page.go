package coerce

import "encoding/json"

// Page is a normalized paginated collection.
type Page[T any] struct {
	Records []T    `json:"records"`
	Total   int    `json:"total"`
	Size    int    `json:"size"`
	Current int    `json:"current"`
	Pages   int    `json:"pages"`
	Extra   Object `json:"-"`
}

// PageOf normalizes v into a Page. A bare array becomes a single page holding
// every element; an object keeps its extra fields and its counters default to
// the record count (total, size) or 1 (current, pages) when missing.
func PageOf[T any](v any, item func(any) T) Page[T] {
	raw := Array(v)
	records := make([]T, 0, len(raw))
	for _, r := range raw {
		records = append(records, item(r))
	}

	obj, isObject := v.(Object)
	if !isObject {
		return Page[T]{Records: records, Total: len(records), Size: len(records), Current: 1, Pages: 1}
	}
	return Page[T]{
		Records: records,
		Total:   IntAt(obj, "total", len(records)),
		Size:    IntAt(obj, "size", len(records)),
		Current: IntAt(obj, "current", 1),
		Pages:   IntAt(obj, "pages", 1),
		Extra:   obj,
	}
}

// Identity is the item mapper for pages whose records pass through untouched.
func Identity(v any) any { return v }

// pageFields drops Page's methods so the canonical fields encode plainly.
type pageFields[T any] Page[T]

func (p Page[T]) MarshalJSON() ([]byte, error) {
	return Merge(pageFields[T](p), p.Extra)
}

// UnmarshalJSON reads the canonical fields only.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var out pageFields[T]
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*p = Page[T](out)
	return nil
}
