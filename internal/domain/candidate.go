package domain

import "time"

// Candidate 描述一次扫描得到的图片文件（只做 stat，不读内容）。
//
// 不变量（实现必须遵守）：
// - AbsPath 必须是 clean + absolute
// - Ext 已小写且不带前导 '.'
// - 只在单次调用内存活，不跨调用复用
type Candidate struct {
	AbsPath string
	Name    string
	Ext     string // "png"
	Size    int64
	ModTime time.Time
}

// ModSeconds 返回带小数的 Unix 秒（保留文件系统提供的亚秒精度）。
func (c Candidate) ModSeconds() float64 {
	return float64(c.ModTime.UnixNano()) / 1e9
}
