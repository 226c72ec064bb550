package shared

// Filter carries the paging options shared by list queries.
type Filter struct {
	Page     int
	PageSize int
}

// DefaultFilter returns the first page at the standard page size.
func DefaultFilter() Filter {
	return Filter{Page: 1, PageSize: 20}
}

// Offset converts the page number to a row offset.
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
