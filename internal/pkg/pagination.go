package pkg

import "errors"

var (
	ErrInvalidPage  = errors.New("page must be >= 1")
	ErrInvalidLimit = errors.New("limit must be >= 1")
)

// Pagination 统一的分页结果：List 保持查询顺序，长度不超过 Limit
type Pagination[T any] struct {
	List    []T   `json:"list"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// Window 校验页码参数并换算偏移量。page 从 1 开始计
func Window(page, limit int) (offset int, err error) {
	if page < 1 {
		return 0, ErrInvalidPage
	}
	if limit < 1 {
		return 0, ErrInvalidLimit
	}
	return (page - 1) * limit, nil
}

// NewPagination 组装分页结果。超出末尾的页码得到空 List，不算错误
func NewPagination[T any](list []T, page, limit int, total int64) Pagination[T] {
	if list == nil {
		list = []T{}
	}
	return Pagination[T]{
		List:    list,
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasNext: int64(page)*int64(limit) < total,
		HasPrev: page > 1 && total > 0,
	}
}
