package repository

// PageRequest — параметры постраничной выборки, нумерация страниц с нуля.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Limit() int {
	if p.Size <= 0 {
		return 10
	}
	return p.Size
}

func (p PageRequest) Offset() int {
	if p.Page < 0 {
		return 0
	}
	return p.Page * p.Limit()
}
