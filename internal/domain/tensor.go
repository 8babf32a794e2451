package domain

import "fmt"

// Tensor 是行优先（row-major）的 float32 多维数组。
//
// 约定：
// - image：Shape = [1, H, W, 3]
// - mask ：Shape = [1, H, W]
// - 数值范围统一为 0.0–1.0
type Tensor struct {
	Shape []int
	Data  []float32
}

// NewTensor 按 shape 分配一个全零 Tensor。
func NewTensor(shape ...int) Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return Tensor{
		Shape: append([]int(nil), shape...),
		Data:  make([]float32, n),
	}
}

// Len 返回元素总数。
func (t Tensor) Len() int { return len(t.Data) }

// Offset 把多维下标换算为 Data 中的偏移；维数或越界不符时 panic（属于调用方 bug）。
func (t Tensor) Offset(idx ...int) int {
	if len(idx) != len(t.Shape) {
		panic(fmt.Sprintf("tensor: 期望 %d 维下标，实际 %d", len(t.Shape), len(idx)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= t.Shape[i] {
			panic(fmt.Sprintf("tensor: 第 %d 维下标 %d 越界（size=%d）", i, v, t.Shape[i]))
		}
		off = off*t.Shape[i] + v
	}
	return off
}

// At 读取指定下标的元素。
func (t Tensor) At(idx ...int) float32 { return t.Data[t.Offset(idx...)] }

// Set 写入指定下标的元素。
func (t Tensor) Set(v float32, idx ...int) { t.Data[t.Offset(idx...)] = v }

// Mean 返回所有元素的平均值；空 Tensor 返回 0。
func (t Tensor) Mean() float64 {
	if len(t.Data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range t.Data {
		sum += float64(v)
	}
	return sum / float64(len(t.Data))
}
