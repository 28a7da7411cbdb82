package views

const defaultPageSize = 10

// Paginator tracks the cursor of a list pane. The visible page is always
// the one holding the cursor.
type Paginator struct {
	size   int
	cursor int
	total  int
}

func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Paginator{size: pageSize}
}

// SetPageSize follows the terminal height; the cursor keeps its row
func (p *Paginator) SetPageSize(size int) {
	if size > 0 {
		p.size = size
	}
}

// Reset points the cursor at the first of total rows
func (p *Paginator) Reset(total int) {
	p.total = max(total, 0)
	p.cursor = 0
}

// SetTotal changes the row count, clamping the cursor
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.SetCursor(p.cursor)
}

func (p *Paginator) Cursor() int {
	return p.cursor
}

func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(min(pos, p.total-1), 0)
}

func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	return true
}

func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.cursor++
	return true
}

// PageOffset is the index of the first visible row
func (p *Paginator) PageOffset() int {
	return p.cursor / p.size * p.size
}

// VisibleRange returns the half-open row range of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.PageOffset()
	return start, min(start+p.size, p.total)
}

func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.size - 1) / p.size
}

// CurrentPage is 1-based
func (p *Paginator) CurrentPage() int {
	return p.PageOffset()/p.size + 1
}

// NextPage moves the cursor to the first row of the next page
func (p *Paginator) NextPage() bool {
	next := p.PageOffset() + p.size
	if next >= p.total {
		return false
	}
	p.cursor = next
	return true
}

// PrevPage moves the cursor to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	offset := p.PageOffset()
	if offset == 0 {
		return false
	}
	p.cursor = offset - p.size
	return true
}
