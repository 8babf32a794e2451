package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/John-Robertt/recentimg/internal/domain"
)

// DefaultExtensions 是未指定扩展名时接受的图片类型。
var DefaultExtensions = []string{"jpg", "jpeg", "png", "bmp", "tiff", "tif", "webp", "gif"}

// ExtSet 是规范化后的扩展名集合（小写、不带前导 '.'）。
type ExtSet map[string]struct{}

// ParseExtensions 解析逗号分隔的扩展名列表。
//
// 规则：
// - 大小写不敏感；允许带或不带前导 '.'（".PNG" 与 "png" 等价）
// - 空白项忽略；结果为空时回退到 DefaultExtensions
func ParseExtensions(s string) ExtSet {
	return NewExtSet(strings.Split(s, ",")...)
}

// NewExtSet 用若干扩展名构造 ExtSet，规则同 ParseExtensions。
func NewExtSet(exts ...string) ExtSet {
	set := make(ExtSet, len(exts))
	for _, e := range exts {
		if e = normalizeExt(e); e != "" {
			set[e] = struct{}{}
		}
	}
	if len(set) == 0 {
		for _, e := range DefaultExtensions {
			set[e] = struct{}{}
		}
	}
	return set
}

// Has 判断扩展名是否被接受（输入同样会被规范化）。
func (s ExtSet) Has(ext string) bool {
	_, ok := s[normalizeExt(ext)]
	return ok
}

// Sorted 返回排序后的扩展名列表（用于报告与错误信息，保证输出稳定）。
func (s ExtSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

func normalizeExt(e string) string {
	e = strings.ToLower(strings.TrimSpace(e))
	return strings.TrimLeft(e, ".")
}

// ScanImages 列出 folder（不递归）下扩展名被接受的普通文件。
//
// 约束：
// - 只做 stat，不读文件内容
// - 子目录、无法读取元数据的条目、非普通文件一律静默跳过
// - 以 "." 开头的文件（隐藏文件、._xxx AppleDouble 旁路文件）不算候选
// - 符号链接跟随到目标再判断（与按路径 stat 的语义一致）
// - 输出按文件名稳定排序；排名由 Rank 负责
func ScanImages(folder string, exts ExtSet) ([]domain.Candidate, error) {
	folder = filepath.Clean(folder)
	if abs, err := filepath.Abs(folder); err == nil {
		folder = abs
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	files := make([]domain.Candidate, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		ext := normalizeExt(filepath.Ext(name))
		if ext == "" || !exts.Has(ext) {
			continue
		}

		path := filepath.Join(folder, name)
		info, err := statEntry(path, e)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		files = append(files, domain.Candidate{
			AbsPath: path,
			Name:    name,
			Ext:     ext,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func statEntry(path string, e os.DirEntry) (os.FileInfo, error) {
	if e.Type()&os.ModeSymlink != 0 {
		return os.Stat(path)
	}
	return e.Info()
}

// Rank 按修改时间降序原地排序：下标 0 永远是最近修改的文件。
//
// 修改时间相同的候选按文件名字典序，再按绝对路径，保证结果确定。
func Rank(files []domain.Candidate) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.AbsPath < b.AbsPath
	})
}
