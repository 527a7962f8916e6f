package domain

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed. A zero Limit means "no limit": listing endpoints return the
// whole collection when the client sends no paging params, which is what the
// frontend's listing grid expects.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return; 0 disables paging.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to page=1, limit=0 (unpaged). A supplied limit is
// capped at 100 to prevent runaway queries.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset returns the zero-based document offset for a skip clause.
func (p PaginationParams) Offset() int {
	if p.Limit == 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
