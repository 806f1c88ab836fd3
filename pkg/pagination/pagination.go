package pagination

const (
	// DefaultPageSize is the catalog page size when none is configured.
	DefaultPageSize = 6
	// MaxPageSize caps how many cards a single page step may reveal.
	MaxPageSize = 100
)

// Cursor tracks how many fixed-size pages of a sequence are visible.
// Page 0 means nothing has been shown yet.
type Cursor struct {
	Page int
	Size int
}

// NewCursor builds a cursor at the given page with a normalized size.
func NewCursor(page, size int) Cursor {
	if page < 0 {
		page = 0
	}
	return Cursor{Page: page, Size: NormalizeSize(size)}
}

// NormalizeSize enforces the default and maximum page sizes.
func NormalizeSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Next returns the cursor advanced by one page.
func (c Cursor) Next() Cursor {
	return Cursor{Page: c.Page + 1, Size: NormalizeSize(c.Size)}
}

// End returns the exclusive end of the visible window over total items.
// When all is set the window is unbounded.
func (c Cursor) End(total int, all bool) int {
	if total < 0 {
		total = 0
	}
	if all {
		return total
	}
	end := c.Page * NormalizeSize(c.Size)
	if end > total {
		return total
	}
	if end < 0 {
		return 0
	}
	return end
}

// HasMore reports whether items remain beyond the visible window.
func (c Cursor) HasMore(total int, all bool) bool {
	return c.End(total, all) < total
}
