package domain

import (
	"encoding/json"
	"time"
)

const (
	StatusSelected = "selected"
	StatusFailed   = "failed"
)

// SelectReport 是对外稳定输出（stdout JSON）的结构。
// 不包含 tensor 数据本身，只描述选中了什么、形状如何。
type SelectReport struct {
	ID         string   `json:"id"`
	Folder     string   `json:"folder"`
	Extensions []string `json:"extensions"`
	Index      int      `json:"index"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`

	File       string    `json:"file"`
	ModTime    time.Time `json:"mod_time"`
	Candidates int       `json:"candidates"`

	Format     string  `json:"format"`
	HasAlpha   bool    `json:"has_alpha"`
	ImageShape []int   `json:"image_shape"`
	MaskShape  []int   `json:"mask_shape"`
	MaskMean   float64 `json:"mask_mean"`
}

// Apply 把 Selection 的摘要写入报告，并标记为 selected。
func (r *SelectReport) Apply(sel Selection) {
	r.ID = sel.ID
	r.Status = StatusSelected
	r.ErrorCode = ""
	r.ErrorMsg = ""
	r.File = sel.File.AbsPath
	r.ModTime = sel.File.ModTime
	r.Candidates = sel.Candidates
	r.Format = sel.Format
	r.HasAlpha = sel.HasAlpha
	r.ImageShape = append([]int(nil), sel.Image.Shape...)
	r.MaskShape = append([]int(nil), sel.Mask.Shape...)
	r.MaskMean = sel.Mask.Mean()
}

// Fail 把报告标记为 failed（不保留部分结果）。
func (r *SelectReport) Fail(code, msg string) {
	r.Status = StatusFailed
	r.ErrorCode = code
	r.ErrorMsg = msg
	r.File = ""
	r.ModTime = time.Time{}
	r.Format = ""
	r.HasAlpha = false
	r.ImageShape = nil
	r.MaskShape = nil
	r.MaskMean = 0
}

// Finalize 做两件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) nil 切片统一为空切片（JSON 输出 [] 而不是 null）
func (r *SelectReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()
	r.ModTime = r.ModTime.UTC()

	if r.Extensions == nil {
		r.Extensions = []string{}
	}
	if r.ImageShape == nil {
		r.ImageShape = []int{}
	}
	if r.MaskShape == nil {
		r.MaskShape = []int{}
	}
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
func (r SelectReport) MarshalJSON() ([]byte, error) {
	type Alias SelectReport
	return json.Marshal(Alias(r))
}
