package kernel

// PaginationOptions is the requested page (1-based) and page size
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Offset returns the number of rows to skip
func (p PaginationOptions) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Page describes the returned page
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// NewPage computes the page count for total rows
func NewPage(opts PaginationOptions, total int) Page {
	pages := 0
	if opts.PageSize > 0 {
		pages = (total + opts.PageSize - 1) / opts.PageSize
	}
	return Page{
		Number: opts.Page,
		Size:   opts.PageSize,
		Total:  total,
		Pages:  pages,
	}
}

type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}
