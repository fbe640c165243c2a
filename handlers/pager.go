package handlers

import "strconv"

var pageSizes = []int{5, 10, 25}

const defaultPageSize = 10

type Pager struct {
	Page  int
	Size  int
	Total int
	Pages int
	Sizes []int
}

func (p Pager) HasPrev() bool { return p.Page > 1 }
func (p Pager) HasNext() bool { return p.Page < p.Pages }
func (p Pager) Prev() int     { return p.Page - 1 }
func (p Pager) Next() int     { return p.Page + 1 }

// From and To are the 1-based bounds of the rows on this page.
func (p Pager) From() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Page-1)*p.Size + 1
}

func (p Pager) To() int {
	return min(p.Page*p.Size, p.Total)
}

func parsePaging(pageParam, sizeParam string) (page, size int) {
	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		page = 1
	}
	size = defaultPageSize
	if s, err := strconv.Atoi(sizeParam); err == nil {
		for _, allowed := range pageSizes {
			if s == allowed {
				size = s
			}
		}
	}
	return page, size
}

func paginate[T any](items []T, page, size int) ([]T, Pager) {
	p := Pager{Size: size, Total: len(items), Sizes: pageSizes}
	p.Pages = max(1, (len(items)+size-1)/size)
	p.Page = min(max(page, 1), p.Pages)

	start := (p.Page - 1) * size
	end := min(start+size, len(items))
	return items[start:end], p
}
