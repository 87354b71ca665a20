package types

// 分页参数约定
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// PageSizeAll size 取该值时不分页，返回全部记录
	PageSizeAll = -1
)

// PageRequest 分页参数
type PageRequest struct {
	Page int `query:"page" json:"page"`
	Size int `query:"size" json:"size"`
}

// All 是否请求全部记录
func (p *PageRequest) All() bool {
	return p.Size == PageSizeAll
}

// Normalize 规范化分页参数：size=-1 时 page 固定为 1
func (p *PageRequest) Normalize() {
	if p.All() {
		p.Page = 1
		return
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
}

// Offset 偏移量
func (p *PageRequest) Offset() int {
	if p.All() {
		return 0
	}
	return (p.Page - 1) * p.Size
}

// PageResult 分页结果
type PageResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

// NewPageResult 组装分页结果；不分页时 size 等于总数
func NewPageResult[T any](req *PageRequest, items []T, total int64) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	size := req.Size
	if req.All() {
		size = int(total)
	}
	return &PageResult[T]{
		Items: items,
		Total: total,
		Page:  req.Page,
		Size:  size,
	}
}
