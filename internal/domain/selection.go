package domain

// Selection 是一次选图调用的完整结果。
//
// Image 与 Mask 的 H/W 必须一致；Mask 在无 alpha 时为全 1。
type Selection struct {
	// ID 用于把同一次调用的日志/报告串起来（xid）。
	ID string

	File       Candidate
	Index      int
	Candidates int

	Format   string // "png" / "jpeg" / ...
	HasAlpha bool

	Image Tensor
	Mask  Tensor
}

// Size 返回 (height, width)。
func (s Selection) Size() (h, w int) {
	if len(s.Mask.Shape) != 3 {
		return 0, 0
	}
	return s.Mask.Shape[1], s.Mask.Shape[2]
}
